package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is the shared JSON transport for both gateways.
// Every call is a single request against the external API;
// there is no retry and no backoff, a failed call surfaces
// immediately to the caller.
type Client struct {
	logger     zerolog.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(logger zerolog.Logger, rootURL string, timeout time.Duration) *Client {
	return &Client{
		logger:  logger,
		baseURL: strings.TrimSuffix(rootURL, "/") + "/api/v1",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// do performs one request and decodes the 2xx body into out
// when out is non-nil. A 401 yields ErrUnauthorized, any other
// non-2xx yields *HTTPError with the server's detail text, and
// a transport failure yields *NetworkError.
func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("path", path).
			Msg("failed to reach api")
		return &NetworkError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var errRes errorResponse
		_ = json.NewDecoder(res.Body).Decode(&errRes)
		c.logger.Error().
			Int("status", res.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("detail", errRes.Detail).
			Msg("api request failed")
		return &HTTPError{Status: res.StatusCode, Detail: errRes.Detail}
	}

	if out == nil {
		return nil
	}

	err = json.NewDecoder(res.Body).Decode(out)
	if err != nil {
		return err
	}
	return nil
}
