package airalo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var envCreds = entities.ProviderCredentials{ClientID: "client", ClientSecret: "secret"}

type stubStore struct {
	creds entities.ProviderCredentials
	err   error
}

func (s stubStore) ProviderCredentials(context.Context) (entities.ProviderCredentials, error) {
	return s.creds, s.err
}

func tokenServer(t *testing.T, hits *atomic.Int32, expiresIn int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":{"access_token":"tok-%d","expires_in":%d,"token_type":"Bearer"}}`, n, expiresIn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTokenSource_CachesToken(t *testing.T) {
	var hits atomic.Int32
	srv := tokenServer(t, &hits, 3600)
	src := NewTokenSource(testLogger, srv.URL, time.Second, envCreds, nil, srv.Client())

	first, err := src.Token(context.Background())
	require.NoError(t, err)
	second, err := src.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-1", first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, hits.Load())
}

func TestTokenSource_RefreshesWithinSafetyMargin(t *testing.T) {
	var hits atomic.Int32
	srv := tokenServer(t, &hits, 120)
	src := NewTokenSource(testLogger, srv.URL, time.Second, envCreds, nil, srv.Client())

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	src.now = func() time.Time { return now }

	_, err := src.Token(context.Background())
	require.NoError(t, err)

	now = now.Add(59 * time.Second)
	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	now = now.Add(2 * time.Second)
	tok, err = src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.EqualValues(t, 2, hits.Load())
}

func TestTokenSource_SingleFlight(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		fmt.Fprint(w, `{"data":{"access_token":"shared","expires_in":3600}}`)
	}))
	defer srv.Close()

	src := NewTokenSource(testLogger, srv.URL, 5*time.Second, envCreds, nil, srv.Client())

	const callers = 20
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens[i], errs[i] = src.Token(context.Background())
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", tokens[i])
	}
	assert.EqualValues(t, 1, hits.Load())
}

func TestTokenSource_Credentials(t *testing.T) {
	var hits atomic.Int32
	srv := tokenServer(t, &hits, 3600)

	testCases := []struct {
		name    string
		env     entities.ProviderCredentials
		store   CredentialsStore
		wantErr error
	}{
		{name: "environment first", env: envCreds, store: stubStore{err: errors.New("must not be called")}},
		{name: "admin settings fallback", store: stubStore{creds: envCreds}},
		{name: "no store", wantErr: entities.ErrNotConfigured},
		{name: "store not configured", store: stubStore{err: entities.ErrNotConfigured}, wantErr: entities.ErrNotConfigured},
		{name: "store returns empty secret", store: stubStore{creds: entities.ProviderCredentials{ClientID: "id"}}, wantErr: entities.ErrNotConfigured},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := NewTokenSource(testLogger, srv.URL, time.Second, tc.env, tc.store, srv.Client())
			_, err := src.Token(context.Background())
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTokenSource_Rejected(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"data":{"client_secret":"invalid"}}`)
	}))
	defer srv.Close()

	src := NewTokenSource(testLogger, srv.URL, time.Second, envCreds, nil, srv.Client())
	_, err := src.Token(context.Background())

	var authErr *entities.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnprocessableEntity, authErr.Status)
	assert.Contains(t, authErr.Body, "invalid")
	assert.EqualValues(t, 1, hits.Load())
}

func TestTokenSource_Invalidate(t *testing.T) {
	var hits atomic.Int32
	srv := tokenServer(t, &hits, 3600)
	src := NewTokenSource(testLogger, srv.URL, time.Second, envCreds, nil, srv.Client())

	_, err := src.Token(context.Background())
	require.NoError(t, err)
	src.Invalidate()
	tok, err := src.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-2", tok)
}
