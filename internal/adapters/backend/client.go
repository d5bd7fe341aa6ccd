// Package backend wraps the booking platform's REST API.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"booking_web/internal/adapters/observability"
	"booking_web/internal/domain"
)

const maxBody = 4 << 20

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int, timeout time.Duration) *Client {
	if rps <= 0 {
		rps = 50
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// call performs one request and decodes envelope.result into out.
// endpoint is the route pattern used as metrics label. There are no retries:
// every recovery is left to the user.
func (c *Client) call(ctx context.Context, method, endpoint, path string, q url.Values, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s, ok := domain.SessionFrom(ctx); ok && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveBackend(endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Str("endpoint", endpoint).Msg("backend unreachable")
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveBackend(endpoint, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}
	ok2xx := resp.StatusCode >= 200 && resp.StatusCode < 300

	if len(bytes.TrimSpace(raw)) == 0 {
		if ok2xx {
			return nil
		}
		return statusErr(method, endpoint, resp.StatusCode, "")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || (!env.Success && env.Code == 0 && env.Message == "") {
		if ok2xx {
			return fmt.Errorf("decode %s envelope: unexpected body", endpoint)
		}
		return statusErr(method, endpoint, resp.StatusCode, string(raw))
	}

	if !env.Success {
		log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Int("code", env.Code).
			Str("message", env.Message).Msg("backend rejected request")
		return &domain.APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	if out == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", endpoint, err)
	}
	return nil
}

// statusErr covers responses without an envelope (proxies, gateways, crashes).
func statusErr(method, endpoint string, status int, body string) error {
	body = strings.TrimSpace(body)
	if len(body) > 200 {
		body = body[:200]
	}
	var sentinel error
	switch status {
	case http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case http.StatusUnauthorized:
		sentinel = domain.ErrUnauthorized
	case http.StatusForbidden:
		sentinel = domain.ErrForbidden
	}
	if sentinel != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, sentinel)
	}
	return fmt.Errorf("%s %s: bad status %d: %s", method, endpoint, status, body)
}

func pageParams(pageNumber, pageSize int, sortBy string) url.Values {
	q := url.Values{}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageNumber < 0 {
		pageNumber = 0
	}
	q.Set("pageNumber", fmt.Sprint(pageNumber))
	q.Set("pageSize", fmt.Sprint(pageSize))
	if sortBy != "" {
		q.Set("sortBy", sortBy)
	}
	return q
}
