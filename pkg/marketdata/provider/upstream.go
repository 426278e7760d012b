package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

// maxBodySize caps how much of an upstream response is read.
const maxBodySize = 16 << 20

const userAgent = "Mozilla/5.0 (compatible; argo-insight/1.0)"

// getBody performs a GET and classifies failures into upstream error codes.
func getBody(ctx context.Context, client *http.Client, endpoint string, query url.Values, headers map[string]string) ([]byte, error) {
	target := endpoint
	if len(query) > 0 {
		target = endpoint + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstreamFetchFailed, "failed to build request", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return nil, errors.Newf(errors.ErrCodeUpstreamRateLimited, "upstream returned %d", res.StatusCode)
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return nil, errors.Newf(errors.ErrCodeUpstreamStatus, "upstream returned %d: %s", res.StatusCode, truncate(body, 200))
	}

	return body, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeUpstreamTimeout, "upstream request timed out", err)
	}

	return errors.Wrap(errors.ErrCodeUpstreamFetchFailed, "upstream request failed", err)
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}

	return fmt.Sprintf("%s...", body[:n])
}

func httpClientOrDefault(client *http.Client) *http.Client {
	if client != nil {
		return client
	}

	return &http.Client{}
}
