package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	checkCodePath  = "/api/check-barcode"
	checkImagePath = "/api/scan-image"

	maxResponseSize = 1 << 20
)

// HTTPClient talks to the lookup service over HTTP/JSON.
type HTTPClient struct {
	http    *http.Client
	baseURL string
}

// NewHTTPClient validates baseURL and returns a client whose requests are
// bounded by timeout (DefaultTimeout when zero or negative).
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	return NewHTTPClientWithTransport(baseURL, timeout, nil)
}

// NewHTTPClientWithTransport allows injecting a RoundTripper (tests, proxies).
func NewHTTPClientWithTransport(baseURL string, timeout time.Duration, tr http.RoundTripper) (*HTTPClient, error) {
	if _, err := url.ParseRequestURI(strings.TrimSpace(baseURL)); err != nil {
		return nil, fmt.Errorf("invalid lookup url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &HTTPClient{
		http:    &http.Client{Timeout: timeout, Transport: tr},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}, nil
}

type checkCodeRequest struct {
	Barcode string `json:"barcode"`
	Animal  string `json:"animal"`
}

type lookupResponse struct {
	Result  string `json:"result"`
	Barcode string `json:"barcode"`
	Safe    *bool  `json:"safe"`
	Error   string `json:"error"`
}

func (c *HTTPClient) CheckCode(ctx context.Context, q CodeQuery) (CodeResult, error) {
	body, err := json.Marshal(checkCodeRequest{Barcode: q.Code, Animal: q.Species.WireName()})
	if err != nil {
		return CodeResult{}, fmt.Errorf("marshal check request: %w", err)
	}

	resp, err := c.post(ctx, checkCodePath, "application/json", body)
	if err != nil {
		return CodeResult{}, err
	}
	return CodeResult{Message: resp.Result, Verdict: verdictOf(resp.Result, resp.Safe)}, nil
}

func (c *HTTPClient) CheckImage(ctx context.Context, q ImageQuery) (ImageResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image", "capture.jpg")
	if err != nil {
		return ImageResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(q.Image); err != nil {
		return ImageResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if err := w.WriteField("animal", q.Species.WireName()); err != nil {
		return ImageResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return ImageResult{}, fmt.Errorf("build multipart body: %w", err)
	}

	resp, err := c.post(ctx, checkImagePath, w.FormDataContentType(), buf.Bytes())
	if err != nil {
		return ImageResult{}, err
	}
	return ImageResult{
		Code:    resp.Barcode,
		Message: resp.Result,
		Verdict: verdictOf(resp.Result, resp.Safe),
	}, nil
}

// Close is a no-op; the underlying transport keeps its idle pool.
func (c *HTTPClient) Close() error {
	return nil
}

// post sends body and decodes the lookup envelope. Failures to reach the
// service or to understand its reply wrap ErrUnavailable; a decodable
// {"error": ...} becomes a *ServiceError.
func (c *HTTPClient) post(ctx context.Context, path, contentType string, body []byte) (*lookupResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	var out lookupResponse
	decodeErr := json.Unmarshal(raw, &out)

	if decodeErr == nil && out.Error != "" {
		return nil, &ServiceError{Message: out.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, decodeErr)
	}
	return &out, nil
}
