// Package parkanizer is a minimal client for the Parkanizer
// (share.parkanizer.com) marketplace API. It owns the authenticated
// session state: the bearer token and the refresh cookie, persisted
// across invocations through a secrets store.
package parkanizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/phuslu/log"

	"github.com/example/parkctl/internal/secrets"
)

const defaultBaseURL = "https://share.parkanizer.com/api"

const (
	zonesPath          = "/marketplace/get-parking-spot-zones"
	spotsPath          = "/marketplace/get-spots"
	spotsMapPath       = "/marketplace/get-marketplace-parking-spot-zone-map"
	takeSpotPath       = "/employee-reservations/take-spot-from-marketplace"
	releaseSpotPath    = "/employee-reservations/resign"
	myReservationsPath = "/employee-reservations/get-employee-reservations"
	employeesPath      = "/employee-reservations/get-employees"

	refreshTokenPath    = "/auth0/try-refresh-token"
	credentialLoginPath = "/auth0/login-with-credentials"
)

const refreshCookieName = "refresh_token"

// ErrAuth marks a fatal authentication failure: neither the stored session
// nor the configured credentials produced a usable token.
var ErrAuth = errors.New("authentication failed")

// Credentials is the Parkanizer account login.
type Credentials struct {
	Username string
	Password string
}

// Config configures a Client.
type Config struct {
	// BaseURL overrides the production API root, mainly for tests.
	BaseURL string

	// Store persists session secrets between invocations. Optional;
	// without it every Login is a credential login.
	Store *secrets.Store

	Timeout time.Duration
	Logger  *log.Logger
}

// Client is an authenticated Parkanizer session. It is not safe for
// concurrent use; one command invocation owns one client.
type Client struct {
	hc    *http.Client
	base  string
	store *secrets.Store
	log   *log.Logger

	bearer        string
	refreshCookie string
}

func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &Client{
		hc:    &http.Client{Timeout: timeout},
		base:  base,
		store: cfg.Store,
		log:   logger,
	}
}

// Login establishes the session. It first tries the persisted secrets with
// a token refresh; on any failure there it falls back to a credential
// login. Either success path rewrites the secrets store, so the next
// invocation starts from the freshest pair.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	if c.store != nil {
		sec, err := c.store.Load()
		if err == nil {
			c.setSecrets(sec)
			if err := c.tryRefreshToken(ctx); err == nil {
				c.log.Info().Msg("authenticated with stored secrets")
				c.persistSecrets()
				return nil
			}
			c.log.Info().Msg("stored secrets rejected, falling back to credential login")
		} else {
			c.log.Debug().Err(err).Msg("no stored secrets")
		}
	}

	sec, err := c.credentialLogin(ctx, creds)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	c.setSecrets(sec)
	c.log.Info().Str("user", creds.Username).Msg("authenticated with credentials")
	c.persistSecrets()
	return nil
}

func (c *Client) setSecrets(sec secrets.Secrets) {
	c.bearer = sec.BearerToken
	c.refreshCookie = sec.RefreshCookie
}

func (c *Client) persistSecrets() {
	if c.store == nil {
		return
	}
	sec := secrets.Secrets{BearerToken: c.bearer, RefreshCookie: c.refreshCookie}
	if err := c.store.Save(sec); err != nil {
		// Losing the cache only costs a credential login next time.
		c.log.Warn().Err(err).Msg("could not persist session secrets")
	}
}

// tryRefreshToken exchanges the current refresh cookie for a new bearer
// token and refresh cookie.
func (c *Client) tryRefreshToken(ctx context.Context) error {
	resp, body, err := c.roundTrip(ctx, http.MethodPost, refreshTokenPath, struct{}{})
	if err != nil {
		return err
	}
	var parsed struct {
		NewTokenOrNull *struct {
			AccessToken string `json:"accessToken"`
		} `json:"newTokenOrNull"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("parse refresh response: %w", err)
	}
	if parsed.NewTokenOrNull == nil || parsed.NewTokenOrNull.AccessToken == "" {
		return errors.New("refresh rejected: no new token")
	}
	cookie, ok := responseCookie(resp, refreshCookieName)
	if !ok {
		return errors.New("refresh response missing refresh cookie")
	}
	c.bearer = parsed.NewTokenOrNull.AccessToken
	c.refreshCookie = cookie
	return nil
}

func (c *Client) credentialLogin(ctx context.Context, creds Credentials) (secrets.Secrets, error) {
	if creds.Username == "" || creds.Password == "" {
		return secrets.Secrets{}, errors.New("username and password required")
	}
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: creds.Username, Password: creds.Password}

	resp, body, err := c.roundTrip(ctx, http.MethodPost, credentialLoginPath, payload)
	if err != nil {
		return secrets.Secrets{}, err
	}
	var parsed struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return secrets.Secrets{}, fmt.Errorf("parse login response: %w", err)
	}
	if parsed.AccessToken == "" {
		return secrets.Secrets{}, errors.New("login response missing access token")
	}
	cookie, ok := responseCookie(resp, refreshCookieName)
	if !ok {
		return secrets.Secrets{}, errors.New("login response missing refresh cookie")
	}
	return secrets.Secrets{BearerToken: parsed.AccessToken, RefreshCookie: cookie}, nil
}

// post sends payload and decodes the response into out. An empty response
// body is valid and leaves out untouched.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	_, body, err := c.roundTrip(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if len(body) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

// postRaw sends payload and returns the raw response body.
func (c *Client) postRaw(ctx context.Context, path string, payload any) ([]byte, error) {
	_, body, err := c.roundTrip(ctx, http.MethodPost, path, payload)
	return body, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	_, body, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if len(body) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	if c.refreshCookie != "" {
		req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: c.refreshCookie})
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode >= 400 {
		return resp, body, fmt.Errorf("%s %s: http %d: %s", method, path, resp.StatusCode, snippet(body))
	}
	return resp, body, nil
}

func responseCookie(resp *http.Response, name string) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, c := range resp.Cookies() {
		if c.Name == name && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
