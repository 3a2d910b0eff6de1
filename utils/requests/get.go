package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Sends a GET request to url, returning the body if the server responded with a 2xx status.
// The request is bound to ctx on top of the client timeout.
func Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building GET request to %s: %w", url, err)
	}

	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error during GET request to %s: %w", url, err)
	}

	body, err := ReadResponseBody(res, url)
	if err != nil {
		return nil, fmt.Errorf("error during GET request to %s: %w", url, err)
	}

	return body, nil
}

// Sends a GET request and since JSON is expected to be returned, the response is unmarshalled into T.
func JsonGet[T any](ctx context.Context, url string) (T, error) {
	var data T

	res, err := Get(ctx, url)
	if err != nil {
		return data, err
	}

	if err := json.Unmarshal(res, &data); err != nil {
		log.WithField("url", url).Debugf("[GET] failed to unmarshal response body: %v", err)
		return data, fmt.Errorf("malformed JSON from %s: %w", url, err)
	}

	return data, nil
}
