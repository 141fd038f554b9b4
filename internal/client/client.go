// Package client provides an HTTP client for the smart-feedback REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/evcraddock/smart-feedback/internal/feedback"
	"github.com/evcraddock/smart-feedback/internal/report"
)

// Client is an HTTP client for the smart-feedback API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

// SubmitFeedback posts a feedback submission.
func (c *Client) SubmitFeedback(ctx context.Context, in feedback.SubmitInput) (*feedback.Feedback, error) {
	var f feedback.Feedback
	if err := c.post(ctx, "/api/feedback", in, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFeedback returns all feedback, newest first.
func (c *Client) ListFeedback(ctx context.Context) ([]*feedback.Feedback, error) {
	var list []*feedback.Feedback
	if err := c.get(ctx, "/api/feedback", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListFeedbackByStudent returns feedback for a student (case-insensitive).
func (c *Client) ListFeedbackByStudent(ctx context.Context, student string) ([]*feedback.Feedback, error) {
	var list []*feedback.Feedback
	if err := c.get(ctx, "/api/feedback/student/"+url.PathEscape(student), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListFeedbackByFaculty returns feedback for a faculty member.
func (c *Client) ListFeedbackByFaculty(ctx context.Context, faculty string) ([]*feedback.Feedback, error) {
	var list []*feedback.Feedback
	if err := c.get(ctx, "/api/feedback/faculty/"+url.PathEscape(faculty), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GenerateReport asks the server to build a new report for a faculty member.
func (c *Client) GenerateReport(ctx context.Context, faculty string) (*report.Report, error) {
	var resp struct {
		Report *report.Report `json:"report"`
	}
	if err := c.post(ctx, "/api/reports/generate", map[string]string{"facultyName": faculty}, &resp); err != nil {
		return nil, err
	}
	if resp.Report == nil {
		return nil, fmt.Errorf("server returned no report")
	}
	return resp.Report, nil
}

// ListReports returns all reports, newest first.
func (c *Client) ListReports(ctx context.Context) ([]*report.Report, error) {
	var list []*report.Report
	if err := c.get(ctx, "/api/reports", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListReportsByFaculty returns reports for a faculty member, newest first.
func (c *Client) ListReportsByFaculty(ctx context.Context, faculty string) ([]*report.Report, error) {
	var list []*report.Report
	if err := c.get(ctx, "/api/reports/faculty/"+url.PathEscape(faculty), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AnalyzeSentiment classifies a comment without storing anything.
func (c *Client) AnalyzeSentiment(ctx context.Context, comment string) (string, error) {
	var resp struct {
		Sentiment string `json:"sentiment"`
	}
	if err := c.post(ctx, "/api/sentiment/analyze", map[string]string{"comment": comment}, &resp); err != nil {
		return "", err
	}
	return resp.Sentiment, nil
}

// Health checks the unauthenticated liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// do executes an HTTP request with the API key header and handles errors.
func (c *Client) do(req *http.Request, result interface{}) (err error) {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing response body: %w", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Fields = errResp.Fields
		} else {
			apiErr.Message = "server error: " + http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
