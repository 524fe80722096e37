// Package secrets persists the Parkanizer session tokens between CLI
// invocations so a fresh process can skip the credential login.
package secrets

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/pbkdf2"
)

// Secrets is the persisted session state. Both values come from the auth
// endpoint (or a token refresh) and are rewritten after every successful
// login.
type Secrets struct {
	BearerToken   string `json:"bearer_token"`
	RefreshCookie string `json:"refresh_cookie"`
}

const (
	valueName = "parkctl_session"

	// Stored secrets older than this fail to decode and force a
	// credential login.
	maxAge = 30 * 24 * time.Hour

	kdfIterations = 4096
	kdfSalt       = "parkctl/secrets/v1"
)

// Store reads and writes the secrets file. Values are encoded with
// securecookie (HMAC + AES) so tokens are not plaintext at rest. Concurrent
// writers are unguarded; the later one wins.
type Store struct {
	path string
	sc   *securecookie.SecureCookie
}

// New builds a store with explicit hash/block keys (32 bytes each,
// see the keys command).
func New(path string, hashKey, blockKey []byte) *Store {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(maxAge.Seconds()))
	return &Store{path: path, sc: sc}
}

// NewFromPassword derives the encoding keys from the account password, so
// no extra key material has to be configured.
func NewFromPassword(path, password string) *Store {
	return New(path, DeriveKey(password, "hash"), DeriveKey(password, "block"))
}

// DeriveKey stretches the password into a 32-byte key. The scope label
// keeps the hash and block keys distinct.
func DeriveKey(password, scope string) []byte {
	return pbkdf2.Key([]byte(password), []byte(kdfSalt+"/"+scope), kdfIterations, 32, sha256.New)
}

// Load reads and decodes the stored secrets. Any failure (missing file,
// corrupt or expired encoding, wrong key) is returned as an error; callers
// treat that as "no stored session", never as fatal.
func (s *Store) Load() (Secrets, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Secrets{}, fmt.Errorf("read secrets file: %w", err)
	}
	var sec Secrets
	if err := s.sc.Decode(valueName, string(raw), &sec); err != nil {
		return Secrets{}, fmt.Errorf("decode secrets file: %w", err)
	}
	if sec.BearerToken == "" || sec.RefreshCookie == "" {
		return Secrets{}, fmt.Errorf("secrets file incomplete")
	}
	return sec, nil
}

// Save encodes and writes the secrets, overwriting any previous value.
func (s *Store) Save(sec Secrets) error {
	encoded, err := s.sc.Encode(valueName, sec)
	if err != nil {
		return fmt.Errorf("encode secrets: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create secrets dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(encoded), 0o600); err != nil {
		return fmt.Errorf("write secrets file: %w", err)
	}
	return nil
}
