package parkanizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/parkctl/internal/domain/parking"
	"github.com/example/parkctl/internal/secrets"
)

// testServer scripts the API endpoints and records the requests it saw.
type testServer struct {
	*httptest.Server
	mux *http.ServeMux

	loginCalls   int
	refreshCalls int
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{mux: http.NewServeMux()}
	ts.Server = httptest.NewServer(ts.mux)
	t.Cleanup(ts.Close)
	return ts
}

// withAuth wires the two auth endpoints: a refresh that only accepts the
// given cookie, and a credential login that always succeeds.
func (ts *testServer) withAuth(validRefresh string) {
	ts.mux.HandleFunc(refreshTokenPath, func(w http.ResponseWriter, r *http.Request) {
		ts.refreshCalls++
		cookie, err := r.Cookie(refreshCookieName)
		if err != nil || cookie.Value != validRefresh {
			_, _ = w.Write([]byte(`{"newTokenOrNull":null}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: refreshCookieName, Value: "rotated-refresh"})
		_, _ = w.Write([]byte(`{"newTokenOrNull":{"accessToken":"refreshed-bearer"}}`))
	})
	ts.mux.HandleFunc(credentialLoginPath, func(w http.ResponseWriter, r *http.Request) {
		ts.loginCalls++
		http.SetCookie(w, &http.Cookie{Name: refreshCookieName, Value: "fresh-refresh"})
		_, _ = w.Write([]byte(`{"accessToken":"fresh-bearer"}`))
	})
}

func newTestStore(t *testing.T) *secrets.Store {
	t.Helper()
	return secrets.NewFromPassword(filepath.Join(t.TempDir(), "secrets.dat"), "pw")
}

func TestLoginWithStoredSecretsRefreshes(t *testing.T) {
	ts := newTestServer(t)
	ts.withAuth("stored-refresh")

	store := newTestStore(t)
	require.NoError(t, store.Save(secrets.Secrets{BearerToken: "stale", RefreshCookie: "stored-refresh"}))

	client := New(Config{BaseURL: ts.URL, Store: store})
	require.NoError(t, client.Login(context.Background(), Credentials{Username: "me@example.com", Password: "pw"}))

	assert.Equal(t, 1, ts.refreshCalls)
	assert.Zero(t, ts.loginCalls)

	// The rotated pair must be persisted for the next invocation.
	sec, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "refreshed-bearer", sec.BearerToken)
	assert.Equal(t, "rotated-refresh", sec.RefreshCookie)
}

func TestLoginFallsBackToCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.withAuth("some-other-refresh")

	store := newTestStore(t)
	require.NoError(t, store.Save(secrets.Secrets{BearerToken: "stale", RefreshCookie: "rejected-refresh"}))

	client := New(Config{BaseURL: ts.URL, Store: store})
	require.NoError(t, client.Login(context.Background(), Credentials{Username: "me@example.com", Password: "pw"}))

	assert.Equal(t, 1, ts.refreshCalls)
	assert.Equal(t, 1, ts.loginCalls)

	sec, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-bearer", sec.BearerToken)
	assert.Equal(t, "fresh-refresh", sec.RefreshCookie)
}

func TestLoginWithoutStoreGoesStraightToCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.withAuth("whatever")

	client := New(Config{BaseURL: ts.URL})
	require.NoError(t, client.Login(context.Background(), Credentials{Username: "me@example.com", Password: "pw"}))

	assert.Zero(t, ts.refreshCalls)
	assert.Equal(t, 1, ts.loginCalls)
}

func TestLoginWithoutCredentialsFails(t *testing.T) {
	ts := newTestServer(t)
	ts.withAuth("whatever")

	client := New(Config{BaseURL: ts.URL})
	err := client.Login(context.Background(), Credentials{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestTakeSpotOmitsSpotFieldForAnySpot(t *testing.T) {
	ts := newTestServer(t)
	var bodies []map[string]json.RawMessage
	ts.mux.HandleFunc(takeSpotPath, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		_, _ = w.Write([]byte(`{"status":"Reserved","receivedParkingSpotOrNull":{"id":"s1","name":"A1"}}`))
	})

	client := New(Config{BaseURL: ts.URL})
	day, err := parking.ParseDate("2026-09-07")
	require.NoError(t, err)

	res, err := client.TakeSpot(context.Background(), "z1", nil, day)
	require.NoError(t, err)
	assert.True(t, res.Reserved())
	require.NotNil(t, res.Received)
	assert.Equal(t, "A1", res.Received.Name)

	spotID := "s9"
	_, err = client.TakeSpot(context.Background(), "z1", &spotID, day)
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	// An anonymous take must not carry the field at all, not send null.
	_, present := bodies[0]["parkingSpotIdOrNull"]
	assert.False(t, present)
	assert.JSONEq(t, `"s9"`, string(bodies[1]["parkingSpotIdOrNull"]))

	assert.JSONEq(t, `"2026-09-07"`, string(bodies[0]["dayToTake"]))
	assert.JSONEq(t, `{"fromBookingTime":"P0DT00H00M","toBookingTime":"P1DT00H00M"}`, string(bodies[0]["bookingTimeInterval"]))
}

func TestZoneCalendarFlattensWeeks(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc(spotsPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"weeks":[
			{"week":[{"day":"2026-09-07","freeSpots":2,"reservedParkingSpotOrNull":null}]},
			{"week":[{"day":"2026-09-14","freeSpots":0,"reservedParkingSpotOrNull":{"id":"s1","name":"A1"}}]}
		]}`))
	})

	client := New(Config{BaseURL: ts.URL})
	days, err := client.ZoneCalendar(context.Background(), "z1")
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, "2026-09-07", days[0].Day)
	assert.Equal(t, 2, days[0].FreeSpots)
	assert.Nil(t, days[0].Reserved)
	require.NotNil(t, days[1].Reserved)
	assert.Equal(t, "A1", days[1].Reserved.Name)
}

func TestZoneMapRequiresMap(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc(spotsMapPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mapOrNull":null}`))
	})

	client := New(Config{BaseURL: ts.URL})
	_, err := client.ZoneMap(context.Background(), "z1", parking.Date{})
	assert.Error(t, err)
}

func TestReleaseSpotEmptyBody(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]any
	ts.mux.HandleFunc(releaseSpotPath, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	})

	client := New(Config{BaseURL: ts.URL})
	day, err := parking.ParseDate("2026-09-07")
	require.NoError(t, err)

	res, err := client.ReleaseSpot(context.Background(), day)
	require.NoError(t, err)
	assert.True(t, res.Empty)

	assert.Equal(t, []any{"2026-09-07"}, body["daysToShare"])
	v, present := body["receivingEmployeeIdOrNull"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestRequestsCarryBearerAndRefreshCookie(t *testing.T) {
	ts := newTestServer(t)
	ts.withAuth("stored-refresh")
	var gotAuth, gotCookie string
	ts.mux.HandleFunc(zonesPath, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if c, err := r.Cookie(refreshCookieName); err == nil {
			gotCookie = c.Value
		}
		_, _ = w.Write([]byte(`{"parkingSpotZones":[{"id":"z1","name":"Garage"}]}`))
	})

	store := newTestStore(t)
	require.NoError(t, store.Save(secrets.Secrets{BearerToken: "stale", RefreshCookie: "stored-refresh"}))

	client := New(Config{BaseURL: ts.URL, Store: store})
	require.NoError(t, client.Login(context.Background(), Credentials{Username: "me@example.com", Password: "pw"}))

	zones, err := client.Zones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "Bearer refreshed-bearer", gotAuth)
	assert.Equal(t, "rotated-refresh", gotCookie)
}

func TestHTTPErrorSurfacesStatusAndBody(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc(zonesPath, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	})

	client := New(Config{BaseURL: ts.URL})
	_, err := client.Zones(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "token expired")
}

func TestBeneficiariesAsksForTheDayAfter(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]any
	ts.mux.HandleFunc(employeesPath, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"employeesOrNull":[{"id":"e1","name":"Pat"}]}`))
	})

	client := New(Config{BaseURL: ts.URL})
	day, err := parking.ParseDate("2026-09-07")
	require.NoError(t, err)

	employees, err := client.Beneficiaries(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Pat", employees[0].Name)
	assert.Equal(t, []any{"2026-09-08"}, body["daysToShare"])
}
