package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

// TestContext holds state between test steps.
type TestContext struct {
	BaseURL          string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte

	SchemaID          string
	OfferingID        string
	Challenge         string
	AuthorizationCode string
	AccessToken       string
}

func NewTestContext() *TestContext {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return &TestContext{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// POST makes a POST request and stores the response.
func (tc *TestContext) POST(path string, body any) error {
	return tc.do(http.MethodPost, path, body, nil)
}

// POSTWithHeaders makes a POST request with extra headers.
func (tc *TestContext) POSTWithHeaders(path string, body any, headers map[string]string) error {
	return tc.do(http.MethodPost, path, body, headers)
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil, nil)
}

func (tc *TestContext) DELETE(path string) error {
	return tc.do(http.MethodDelete, path, nil, nil)
}

func (tc *TestContext) do(method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// Field reads a gjson path from the last response body.
func (tc *TestContext) Field(path string) (gjson.Result, error) {
	if !gjson.ValidBytes(tc.LastResponseBody) {
		return gjson.Result{}, fmt.Errorf("response is not JSON: %s", tc.LastResponseBody)
	}
	res := gjson.GetBytes(tc.LastResponseBody, path)
	if !res.Exists() {
		return gjson.Result{}, fmt.Errorf("field %q not found in response: %s", path, tc.LastResponseBody)
	}
	return res, nil
}

// StringField reads a non-empty string at path.
func (tc *TestContext) StringField(path string) (string, error) {
	res, err := tc.Field(path)
	if err != nil {
		return "", err
	}
	if res.String() == "" {
		return "", fmt.Errorf("field %q is empty", path)
	}
	return res.String(), nil
}
