// Package airtable lists records from the Airtable REST API v0 on top of
// github.com/mehanizm/airtable, mapping its failures onto service errors.
package airtable

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	at "github.com/mehanizm/airtable"
	"go.uber.org/zap"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
	"github.com/scarevision/casebook/internal/service/common"
)

const (
	// MaxPageSize is the largest page the API serves.
	MaxPageSize = 100

	maxDetailBytes = 4096
)

// Credentials select the account and base a request runs against.
type Credentials struct {
	APIKey string
	BaseID string
}

// Complete reports whether both values are present.
func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.BaseID != ""
}

type ListRequest struct {
	Credentials Credentials
	Table       string
	Fields      []string
	// Formula is sent as filterByFormula.
	Formula    string
	MaxRecords int
	PageSize   int
	Offset     string
}

// Page is one page of list results. An empty Offset marks the last page.
type Page struct {
	Records []record.Record `json:"records"`
	Offset  string          `json:"offset,omitempty"`
}

// Client keeps one API client per key, since the case tables and the case
// index are read with different keys.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu   sync.Mutex
	apis map[string]*at.Client
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	transport := httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	hc := *httpClient
	hc.Transport = requestIDTransport{next: transport}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/v0",
		httpClient: &hc,
		logger:     logger,
		apis:       make(map[string]*at.Client),
	}
}

func (c *Client) api(apiKey string) (*at.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if api, ok := c.apis[apiKey]; ok {
		return api, nil
	}
	api := at.NewClient(apiKey)
	if err := api.SetBaseURL(c.baseURL); err != nil {
		return nil, common.WrapError(common.CodeConfiguration, "airtable base url", err)
	}
	api.SetCustomClient(c.httpClient)
	c.apis[apiKey] = api
	return api, nil
}

// List fetches a single page.
func (c *Client) List(ctx context.Context, req ListRequest) (Page, error) {
	if !req.Credentials.Complete() {
		return Page{}, common.NewError(common.CodeConfiguration, "Server not configured correctly")
	}
	if req.Table == "" {
		return Page{}, common.NewError(common.CodeClientInput, "Missing 'table' query parameter")
	}

	api, err := c.api(req.Credentials.APIKey)
	if err != nil {
		return Page{}, err
	}

	q := api.GetTable(req.Credentials.BaseID, req.Table).GetRecords()
	if len(req.Fields) > 0 {
		q = q.ReturnFields(req.Fields...)
	}
	if req.Formula != "" {
		q = q.WithFilterFormula(req.Formula)
	}
	if req.MaxRecords > 0 {
		q = q.MaxRecords(req.MaxRecords)
	}
	if req.PageSize > 0 {
		q = q.PageSize(min(req.PageSize, MaxPageSize))
	}
	if req.Offset != "" {
		q = q.WithOffset(req.Offset)
	}

	res, err := q.DoContext(ctx)
	if err != nil {
		return Page{}, c.listError(req.Table, err)
	}

	page := Page{Offset: res.Offset, Records: make([]record.Record, 0, len(res.Records))}
	for _, r := range res.Records {
		if r == nil {
			continue
		}
		fields := record.Fields(r.Fields)
		if fields == nil {
			fields = record.Fields{}
		}
		page.Records = append(page.Records, record.Record{ID: r.ID, Fields: fields})
	}
	return page, nil
}

// listError keeps the status of a non-2xx answer; anything else failed in
// transport or decoding.
func (c *Client) listError(table string, err error) error {
	var httpErr *at.HTTPClientError
	if !errors.As(err, &httpErr) {
		return common.WrapError(common.CodeTransport, "airtable request", err)
	}

	detail := ""
	if httpErr.Err != nil {
		detail = strings.TrimSpace(httpErr.Err.Error())
	}
	if len(detail) > maxDetailBytes {
		detail = detail[:maxDetailBytes]
	}
	c.logger.Error("airtable error",
		zap.String("table", table),
		zap.Int("status", httpErr.StatusCode),
		zap.String("detail", detail))
	return common.UpstreamError(httpErr.StatusCode, detail)
}

// ListAll follows offsets until the table is exhausted. Pages are fetched one
// after another; the first failure aborts the walk.
func (c *Client) ListAll(ctx context.Context, req ListRequest) ([]record.Record, error) {
	var all []record.Record
	req.Offset = ""
	for {
		page, err := c.List(ctx, req)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Records...)
		if page.Offset == "" {
			return all, nil
		}
		if page.Offset == req.Offset {
			return nil, common.NewError(common.CodeTransport, "airtable returned a repeating offset")
		}
		req.Offset = page.Offset
	}
}

// EqualsFormula builds a filterByFormula expression matching a numeric field.
func EqualsFormula(field string, value int) string {
	field = strings.NewReplacer("{", "", "}", "").Replace(field)
	return fmt.Sprintf("{%s}=%d", field, value)
}

// requestIDTransport stamps outbound calls with the inbound request id, or a
// fresh one when the call has none.
type requestIDTransport struct {
	next http.RoundTripper
}

func (t requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(middleware.RequestIDHeader) != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set(middleware.RequestIDHeader, requestID(req.Context()))
	return t.next.RoundTrip(r)
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
