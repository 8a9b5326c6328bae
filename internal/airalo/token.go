package airalo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"golang.org/x/sync/singleflight"
)

// TokenSafetyMargin токен считается протухшим за минуту до реального истечения
const TokenSafetyMargin = 60 * time.Second

const maxBodySize = 1 << 20

// CredentialsStore настройки провайдера из админки
type CredentialsStore interface {
	ProviderCredentials(ctx context.Context) (entities.ProviderCredentials, error)
}

// Token живёт только в памяти процесса
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

type TokenSource struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	envCreds   entities.ProviderCredentials
	store      CredentialsStore
	logger     *slog.Logger

	mu    sync.Mutex
	token Token
	group singleflight.Group
	now   func() time.Time
}

func NewTokenSource(
	logger *slog.Logger,
	baseURL string,
	timeout time.Duration,
	envCreds entities.ProviderCredentials,
	store CredentialsStore,
	httpClient *http.Client,
) *TokenSource {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &TokenSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		timeout:    timeout,
		envCreds:   envCreds,
		store:      store,
		logger:     logger.With(slog.String("client", "airalo_token")),
		now:        time.Now,
	}
}

// Token возвращает действующий bearer токен.
// Параллельные вызовы во время обновления ждут один общий запрос.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if tok, ok := s.cached(); ok {
		return tok, nil
	}

	ch := s.group.DoChan("token", func() (any, error) {
		if tok, ok := s.cached(); ok {
			return tok, nil
		}
		// запрос не должен оборваться из-за отмены первого из ждущих
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.refresh(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate сбрасывает кэш, следующий Token пойдёт за новым токеном
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	s.token = Token{}
	s.mu.Unlock()
}

func (s *TokenSource) cached() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token.AccessToken == "" || !s.now().Add(TokenSafetyMargin).Before(s.token.ExpiresAt) {
		return "", false
	}
	return s.token.AccessToken, true
}

func (s *TokenSource) credentials(ctx context.Context) (entities.ProviderCredentials, error) {
	if !s.envCreds.Empty() {
		return s.envCreds, nil
	}
	if s.store == nil {
		return entities.ProviderCredentials{}, entities.ErrNotConfigured
	}
	creds, err := s.store.ProviderCredentials(ctx)
	if errors.Is(err, entities.ErrNotConfigured) {
		return entities.ProviderCredentials{}, err
	}
	if err != nil {
		return entities.ProviderCredentials{}, fmt.Errorf("failed to load provider credentials: %w", err)
	}
	if creds.Empty() {
		return entities.ProviderCredentials{}, entities.ErrNotConfigured
	}
	return creds, nil
}

func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	creds, err := s.credentials(ctx)
	if err != nil {
		tokenRefreshes.WithLabelValues("not_configured").Inc()
		return "", err
	}

	form := url.Values{}
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	requestedAt := s.now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		tokenRefreshes.WithLabelValues("error").Inc()
		return "", classify(ctx, "token request", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		tokenRefreshes.WithLabelValues("rejected").Inc()
		s.logger.Error("token request rejected", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", &entities.AuthenticationError{Status: resp.StatusCode, Body: string(body)}
	}

	var out tokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		tokenRefreshes.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if out.Data.AccessToken == "" {
		tokenRefreshes.WithLabelValues("error").Inc()
		return "", errors.New("token response has empty access_token")
	}

	tok := Token{
		AccessToken: out.Data.AccessToken,
		ExpiresAt:   requestedAt.Add(time.Duration(out.Data.ExpiresIn) * time.Second),
	}
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	tokenRefreshes.WithLabelValues("ok").Inc()
	s.logger.Debug("access token refreshed", slog.Time("expires_at", tok.ExpiresAt))
	return tok.AccessToken, nil
}
