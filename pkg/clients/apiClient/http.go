package apiClient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxResponseBodySize bounds how much of a platform response is read
const maxResponseBodySize = 10 << 20

// Api issues JSON requests against the platform with a fixed bearer session.
// An Api is replaced, never mutated, when the session is renewed.
type Api struct {
	baseURL     string
	apiKey      string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *zap.Logger
}

func newApi(baseURL, apiKey, accessToken string, httpClient *http.Client, limiter *rate.Limiter, logger *zap.Logger) *Api {
	return &Api{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		accessToken: accessToken,
		httpClient:  httpClient,
		limiter:     limiter,
		logger:      logger,
	}
}

func (a *Api) Get(ctx context.Context, path string, query url.Values, result any) error {
	return a.do(ctx, http.MethodGet, path, query, nil, result)
}

func (a *Api) Post(ctx context.Context, path string, body any, result any) error {
	return a.do(ctx, http.MethodPost, path, nil, body, result)
}

func (a *Api) Put(ctx context.Context, path string, body any, result any) error {
	return a.do(ctx, http.MethodPut, path, nil, body, result)
}

func (a *Api) Delete(ctx context.Context, path string, result any) error {
	return a.do(ctx, http.MethodDelete, path, nil, nil, result)
}

func (a *Api) buildURL(path string, query url.Values) string {
	u := a.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (a *Api) do(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	reqURL := a.buildURL(path, query)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+a.accessToken)

	a.logger.Sugar().Debugw("Platform request", "method", method, "url", reqURL)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	limitedReader := io.LimitReader(resp.Body, maxResponseBodySize)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(limitedReader)
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     method,
			URL:        reqURL,
			Body:       bodyBytes,
		}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(limitedReader).Decode(result); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// HTTPError is a non-2xx platform response
type HTTPError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) > 0 {
		var errResp struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(e.Body, &errResp); err == nil {
			if errResp.Message != "" {
				return fmt.Sprintf("HTTP %d on %s %s: %s", e.StatusCode, e.Method, e.URL, errResp.Message)
			}
			if errResp.Error != "" {
				return fmt.Sprintf("HTTP %d on %s %s: %s", e.StatusCode, e.Method, e.URL, errResp.Error)
			}
		}
		return fmt.Sprintf("HTTP %d on %s %s: %s", e.StatusCode, e.Method, e.URL, string(e.Body))
	}
	return fmt.Sprintf("HTTP %d on %s %s: %s", e.StatusCode, e.Method, e.URL, e.Status)
}

func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err carries a 401 platform response
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.IsUnauthorized()
}
