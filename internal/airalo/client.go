package airalo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
)

// DefaultTimeout верхняя граница на один вызов провайдера
const DefaultTimeout = 30 * time.Second

type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// Client клиент Airalo Partner API.
// Таймауты и ошибки провайдера не ретраятся: заказ мог быть создан на той стороне.
type Client struct {
	baseURL    string
	timeout    time.Duration
	tokens     TokenProvider
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration, tokens TokenProvider, httpClient *http.Client) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger.With(slog.String("client", "airalo")),
	}
}

func (c *Client) ProvisionESIM(ctx context.Context, packageSlug string) (entities.ProvisioningResult, error) {
	form := url.Values{}
	form.Set("quantity", "1")
	form.Set("package_id", packageSlug)
	form.Set("type", "sim")
	form.Set("description", "esim order "+packageSlug)

	var out orderResponse
	if err := c.call(ctx, "provision_esim", http.MethodPost, "/v2/orders", form, &out); err != nil {
		return entities.ProvisioningResult{}, err
	}
	res := out.toResult()
	if res.ICCID == "" {
		return entities.ProvisioningResult{}, &entities.UpstreamError{Status: http.StatusOK, Body: "order response has no sims"}
	}
	return res, nil
}

func (c *Client) ProvisionTopup(ctx context.Context, iccid, packageSlug string) (entities.ProvisioningResult, error) {
	form := url.Values{}
	form.Set("package_id", packageSlug)
	form.Set("iccid", iccid)
	form.Set("description", "topup "+packageSlug+" for "+iccid)

	var out orderResponse
	if err := c.call(ctx, "provision_topup", http.MethodPost, "/v2/orders/topups", form, &out); err != nil {
		return entities.ProvisioningResult{}, err
	}
	return out.toResult(), nil
}

func (c *Client) Usage(ctx context.Context, iccid string) (entities.Usage, error) {
	var out usageResponse
	path := "/v2/sims/" + url.PathEscape(iccid) + "/usage"
	if err := c.call(ctx, "usage", http.MethodGet, path, nil, &out); err != nil {
		return entities.Usage{}, err
	}
	return out.toUsage(iccid), nil
}

func (c *Client) call(ctx context.Context, op, method, path string, form url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.send(ctx, op, method, path, form, out)

	// 401 приходит до выполнения запроса, повторить с новым токеном безопасно
	var upErr *entities.UpstreamError
	if errors.As(err, &upErr) && upErr.Status == http.StatusUnauthorized {
		c.logger.Warn("token rejected, retrying with fresh token", slog.String("operation", op))
		c.tokens.Invalidate()
		err = c.send(ctx, op, method, path, form, out)
	}

	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(op, outcome(err)).Inc()
	return err
}

func (c *Client) send(ctx context.Context, op, method, path string, form url.Values, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return classify(ctx, op, err)
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(ctx, op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return classify(ctx, op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("upstream request failed",
			slog.String("operation", op),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return &entities.UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

// classify приводит истечение дедлайна к ErrUpstreamTimeout
func classify(ctx context.Context, op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w", op, entities.ErrUpstreamTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return entities.ErrorKind(err)
}
