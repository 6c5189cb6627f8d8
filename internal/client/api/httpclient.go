package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/propkeeper/internal/client/session"
	"github.com/dmitrijs2005/propkeeper/internal/common"
	"github.com/dmitrijs2005/propkeeper/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient implements Client over the backend's REST API. Every outbound
// request goes through the do/send pipeline below, which owns token
// attachment, 401 handling and the single replay after renewal.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   session.TokenStore
	refresh *session.Coordinator
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, store session.TokenStore, log logging.Logger) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		log:     log,
	}
	c.refresh = session.NewCoordinator(store, c.renewToken, log)
	return c
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// call describes one outbound request. The attempt counter lives here, per
// call; shared request state is never mutated.
type call struct {
	method   string
	path     string
	jsonBody any        // marshalled when non-nil
	form     url.Values // form-encoded body when non-nil
	noAuth   bool
	attempts int
}

// maxAuthRetries caps how many times a call may be replayed after a token
// renewal. A 401 on the replay is terminal.
const maxAuthRetries = 1

// do runs a call through the pipeline and decodes a 2xx response into out
// (skipped when out is nil). On a 401 it asks the coordinator for a fresh
// token and reissues the identical request exactly once.
func (c *HTTPClient) do(ctx context.Context, cl *call, out any) error {
	token, err := c.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}

	for {
		status, body, err := c.send(ctx, cl, token)
		if err != nil {
			return err
		}

		switch {
		case status >= 200 && status < 300:
			if out == nil || len(body) == 0 {
				return nil
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decoding response: %w", err)
			}
			return nil

		case status == http.StatusUnauthorized:
			if cl.noAuth || cl.attempts >= maxAuthRetries {
				c.log.Warn(ctx, "request unauthorized", "method", cl.method, "path", cl.path, "attempt", cl.attempts)
				return fmt.Errorf("%w: %s", common.ErrUnauthorized, serverError(body))
			}
			cl.attempts++
			fresh, err := c.refresh.EnsureFresh(ctx)
			if err != nil {
				return err
			}
			token = fresh
			// loop around: replay the identical request with the new token

		case status == http.StatusForbidden:
			return fmt.Errorf("%w: %s", common.ErrForbidden, serverError(body))

		case status == http.StatusNotFound:
			return fmt.Errorf("%w: %s", common.ErrorNotFound, serverError(body))

		default:
			return fmt.Errorf("unexpected status %d: %s", status, serverError(body))
		}
	}
}

// send performs a single HTTP exchange. Transport-level failures come back
// wrapping common.ErrUnavailable; they never trigger a token renewal.
func (c *HTTPClient) send(ctx context.Context, cl *call, token string) (int, []byte, error) {
	var reader io.Reader
	contentType := ""
	switch {
	case cl.form != nil:
		reader = strings.NewReader(cl.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case cl.jsonBody != nil:
		b, err := json.Marshal(cl.jsonBody)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !cl.noAuth && token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	c.log.Debug(ctx, "request", "method", cl.method, "path", cl.path, "attempt", cl.attempts, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: reading response: %w", common.ErrUnavailable, err)
	}

	return resp.StatusCode, body, nil
}

// renewToken issues the actual POST /refresh for the session coordinator.
// It deliberately bypasses the retry pipeline: a renewal that fails is
// terminal for the session.
func (c *HTTPClient) renewToken(ctx context.Context) (string, error) {
	token, err := c.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	if token == "" {
		return "", common.ErrUnauthorized
	}

	status, body, err := c.send(ctx, &call{method: http.MethodPost, path: "/refresh"}, token)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("refresh rejected with status %d: %s", status, serverError(body))
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	if payload.Token == "" {
		return "", fmt.Errorf("refresh response contains no token")
	}
	return payload.Token, nil
}

type tokenResponse struct {
	Token string `json:"token"`
}

// serverError extracts a human-readable message from an error response body.
func serverError(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
