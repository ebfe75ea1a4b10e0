package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"dispatch-strategy-service/internal/ports"
)

// HTTPAdvisor implements the Advisor port against an external
// recommendation service. It is strictly best-effort: callers treat any
// error as "no advice", never as a planning failure.
//
// The adapter is safe for concurrent use.
type HTTPAdvisor struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPAdvisor(baseURL, apiKey string) (*HTTPAdvisor, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("advisor base URL is empty")
	}

	return &HTTPAdvisor{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

func (a *HTTPAdvisor) Recommend(ctx context.Context, req ports.AdviceRequest) (*ports.Advice, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("advisor: encode request: %w", err)
	}

	resp, err := a.doWithRetry(ctx, func() (*http.Request, error) {
		return a.newRequest(ctx, http.MethodPost, a.baseURL+"/v1/recommendations", bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("advisor: request recommendation: %w", err)
	}
	defer resp.Body.Close()

	var advice ports.Advice
	if err := json.NewDecoder(resp.Body).Decode(&advice); err != nil {
		return nil, fmt.Errorf("advisor: decode response: %w", err)
	}
	if advice.RecommendedStrategy == "" {
		return nil, errors.New("advisor: response carries no recommendation")
	}
	return &advice, nil
}

func (a *HTTPAdvisor) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (a *HTTPAdvisor) do(req *http.Request) (*http.Response, error) {
	resp, err := a.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (a *HTTPAdvisor) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := a.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
