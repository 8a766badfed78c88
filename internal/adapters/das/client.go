// internal/adapters/das/client.go
package das

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"das_notify/internal/adapters/observability"
	"das_notify/internal/domain"
)

const maxResponseBytes = 1 << 20

// ErrResponseTooLarge is returned when DAS answers with more than 1 MiB.
var ErrResponseTooLarge = errors.New("das: response exceeds 1 MiB")

// Client is the outbound HTTP capability used to reach Digital Advantage.
// It makes exactly one attempt per Post.
type Client struct {
	hc  *http.Client
	key string
	rl  *rate.Limiter
}

func New(key string, timeout time.Duration, rps int) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		hc:  &http.Client{Timeout: timeout},
		key: key,
		rl:  rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) Post(ctx context.Context, url string, header http.Header, body []byte) (domain.Response, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.Response{}, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("User-Agent", "das-notify/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("das", "send_notifications", 0, time.Since(start))
		if ctx.Err() != nil {
			return domain.Response{}, ctx.Err()
		}
		return domain.Response{}, err
	}
	defer resp.Body.Close()

	// one byte past the cap tells an oversized body apart from one that fits exactly
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	observability.ObserveExternal("das", "send_notifications", resp.StatusCode, time.Since(start))
	if err != nil {
		return domain.Response{}, fmt.Errorf("read response body: %w", err)
	}
	if len(b) > maxResponseBytes {
		return domain.Response{}, fmt.Errorf("%w: status %d", ErrResponseTooLarge, resp.StatusCode)
	}
	return domain.Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Body:       b,
	}, nil
}

// statusText strips the code from resp.Status ("400 Bad Request" -> "Bad Request").
func statusText(resp *http.Response) string {
	if s := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode))); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}
