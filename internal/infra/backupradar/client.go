// Package backupradar implements the client for the backup-status reporting API.
//
// This package contains:
//   - Client: one GET per page against the backups endpoint
//   - Fetcher: the pagination loop that accumulates every page for one day
package backupradar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vietddude/backupreport/internal/core/domain"
)

// Query describes the filters sent with every page request.
type Query struct {
	Date            string
	Statuses        []string
	PageSize        int
	FilterScheduled bool
}

// Page is one decoded response page.
type Page struct {
	Records    []domain.BackupRecord
	TotalPages int
	// HasTotal is false when the response omitted TotalPages.
	HasTotal bool
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	Page       int
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("page %d: http %d: %s", e.Page, e.StatusCode, e.Body)
}

// Client issues requests against the backups endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type pageResponse struct {
	Results    []recordPayload `json:"Results"`
	TotalPages *int            `json:"TotalPages"`
}

// looseString decodes a JSON string as-is and anything else, null included, as "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = looseString(v)
	return nil
}

type recordPayload struct {
	CompanyName looseString     `json:"companyName"`
	DeviceName  looseString     `json:"deviceName"`
	JobName     looseString     `json:"jobName"`
	MethodName  looseString     `json:"methodName"`
	Status      json.RawMessage `json:"status"`
}

func (p recordPayload) toRecord() domain.BackupRecord {
	return domain.BackupRecord{
		CompanyName: string(p.CompanyName),
		DeviceName:  string(p.DeviceName),
		JobName:     string(p.JobName),
		MethodName:  string(p.MethodName),
		StatusName:  statusName(p.Status),
	}
}

// statusName returns status.name when status is an object carrying a string name.
func statusName(raw json.RawMessage) string {
	var status struct {
		Name looseString `json:"name"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &status) != nil {
		return ""
	}
	return string(status.Name)
}

// FetchPage requests a single 1-based page.
func (c *Client) FetchPage(ctx context.Context, q Query, page int) (*Page, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	params := u.Query()
	params.Set("Page", strconv.Itoa(page))
	params.Set("PageSize", strconv.Itoa(q.PageSize))
	params.Set("date", q.Date)
	for _, s := range q.Statuses {
		params.Add("statuses", s)
	}
	params.Set("FilterScheduled", strconv.FormatBool(q.FilterScheduled))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("ApiKey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get page %d: %w", page, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Page: page, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var decoded pageResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("parse page %d: %w", page, err)
	}

	out := &Page{Records: make([]domain.BackupRecord, 0, len(decoded.Results))}
	for _, r := range decoded.Results {
		out.Records = append(out.Records, r.toRecord())
	}
	if decoded.TotalPages != nil {
		out.TotalPages = *decoded.TotalPages
		out.HasTotal = true
	}
	return out, nil
}

// Close cleans up resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
