package straal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CryptKey is the opaque short-lived key material issued by the merchant
// backend's crypt-key endpoint.
type CryptKey struct {
	Key string `json:"key"`
}

// submissionResponse is what the Straal API reports for an encrypted
// operation: a request id in the body and an optional redirect location in
// the Location header.
type submissionResponse struct {
	RequestID string
	Redirect  *url.URL
}

// fetchCryptKey POSTs the crypt-key payload to the configured backend. The
// configured extra headers are applied to this request only; the backend is
// the merchant's own service.
func fetchCryptKey(ctx context.Context, cfg *Configuration, payload []byte) (CryptKey, error) {
	target := cfg.BackendBaseURL.JoinPath(cfg.CryptKeyPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return CryptKey{}, fmt.Errorf("building crypt key request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return CryptKey{}, fmt.Errorf("%w: crypt key fetch: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return CryptKey{}, fmt.Errorf("%w: crypt key status=%d body=%s",
			ErrUnknownResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var key CryptKey
	if err := json.NewDecoder(resp.Body).Decode(&key); err != nil {
		return CryptKey{}, fmt.Errorf("%w: decoding crypt key: %v", ErrUnknownResponse, err)
	}
	if key.Key == "" {
		return CryptKey{}, fmt.Errorf("%w: empty crypt key", ErrUnknownResponse)
	}
	return key, nil
}

// submitEncrypted POSTs the encrypted body to the Straal API. Any status
// outside 2xx or a body that fails to decode is an unknown-response error;
// ambiguity never becomes a success.
func submitEncrypted(ctx context.Context, cfg *Configuration, encrypted []byte) (submissionResponse, error) {
	target := cfg.APIBaseURL.JoinPath(fmt.Sprintf("/v%d/encrypted", cfg.APIVersion))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(encrypted))
	if err != nil {
		return submissionResponse{}, fmt.Errorf("building encrypted request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("x-straal-api-version", strconv.Itoa(cfg.APIVersion))

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return submissionResponse{}, fmt.Errorf("%w: submit: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return submissionResponse{}, fmt.Errorf("%w: submit status=%d body=%s",
			ErrUnknownResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope struct {
		RequestID string `json:"request_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return submissionResponse{}, fmt.Errorf("%w: decoding submit response: %v", ErrUnknownResponse, err)
	}

	out := submissionResponse{RequestID: envelope.RequestID}
	if loc := resp.Header.Get("Location"); loc != "" {
		redirect, err := url.Parse(loc)
		if err != nil {
			return submissionResponse{}, fmt.Errorf("%w: bad redirect location %q: %v", ErrUnknownResponse, loc, err)
		}
		out.Redirect = redirect
	}
	return out, nil
}
