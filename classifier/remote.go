// SPDX-License-Identifier: GPL-3.0-only

package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"plmobile-server/commons"
	"plmobile-server/recognizer"

	"golang.org/x/time/rate"
)

type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// RequestsPerSecond caps outgoing calls; zero means unlimited.
	RequestsPerSecond float64
}

type Remote struct {
	BaseURL    *url.URL
	APIKey     string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

type recognizeRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type batchRequest struct {
	PhoneNumbers []string `json:"phone_numbers"`
}

type batchResponse struct {
	Results []recognizer.RecognitionResult `json:"results"`
}

func NewRemote(c RemoteConfig) (*Remote, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("remote classifier: base URL is required")
	}
	parsedURL, err := url.Parse(strings.TrimRight(c.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("remote classifier: %w", err)
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if c.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.RequestsPerSecond), 1)
	}
	commons.Logger.Debugf("Remote classifier initialized for %s", parsedURL)
	return &Remote{
		BaseURL:    parsedURL,
		APIKey:     c.APIKey,
		HTTPClient: &http.Client{Timeout: c.Timeout},
		limiter:    limiter,
	}, nil
}

func (r *Remote) Recognize(ctx context.Context, input string) (recognizer.RecognitionResult, error) {
	var result recognizer.RecognitionResult
	if err := r.post(ctx, "v1/recognize", recognizeRequest{PhoneNumber: input}, &result); err != nil {
		return recognizer.RecognitionResult{}, err
	}
	return result, nil
}

func (r *Remote) RecognizeBatch(ctx context.Context, inputs []string) ([]recognizer.RecognitionResult, error) {
	var resp batchResponse
	if err := r.post(ctx, "v1/recognize/batch", batchRequest{PhoneNumbers: inputs}, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (r *Remote) post(ctx context.Context, path string, body, out any) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	u := r.BaseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote classifier: %s %s: %s", req.Method, u.Path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote classifier: decode response: %w", err)
	}
	return nil
}
