// Package remoteapi is the thin HTTP collaborator in front of the remote
// tabular service. It owns request shaping and error classification and
// nothing else; retry and throttling are delegated to the service itself.
package remoteapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/faciam-dev/airtab/pkg/airerr"
	"github.com/faciam-dev/airtab/pkg/metrics"
)

// DefaultBaseURL targets the production API.
const DefaultBaseURL = "https://api.airtable.com/v0"

// Client provides typed access to the remote HTTP API.
type Client interface {
	FetchBaseSchema(ctx context.Context, baseID string) ([]TableSchema, error)
	FindRecord(ctx context.Context, baseID, tableID, recordID string) (*Record, error)
	ListRecords(ctx context.Context, baseID, tableID string, q ListQuery) ([]Record, error)
	CreateRecord(ctx context.Context, baseID, tableID string, fields map[string]any) (*Record, error)
	UpdateRecord(ctx context.Context, baseID, tableID, recordID string, fields map[string]any) (*Record, error)
	DeleteRecord(ctx context.Context, baseID, tableID, recordID string) error
}

type httpClient struct {
	base string
	http *resty.Client
}

// Option customizes the HTTP client.
type Option func(*httpClient)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(base string) Option {
	return func(c *httpClient) {
		c.base = base
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.SetTimeout(d)
	}
}

// New returns a Client authenticated with the given token.
func New(token string, opts ...Option) Client {
	c := &httpClient{base: DefaultBaseURL, http: resty.New()}
	c.http.SetAuthToken(token)
	for _, o := range opts {
		o(c)
	}
	return c
}

type baseSchemaResponse struct {
	Tables []TableSchema `json:"tables"`
}

func (c *httpClient) FetchBaseSchema(ctx context.Context, baseID string) ([]TableSchema, error) {
	if baseID == "" {
		return nil, airerr.InvalidParameter("no base id given")
	}
	var out baseSchemaResponse
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).
		Get(c.base + "/meta/bases/" + baseID + "/tables")
	metrics.SchemaFetches.Inc()
	if err != nil {
		return nil, fmt.Errorf("fetch base schema: %w", err)
	}
	if resp.IsError() {
		e := restyErr(resp)
		if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
			return nil, e.WithSuggestion("Ensure the API token has `schema.bases:read` permission")
		}
		return nil, e
	}
	return out.Tables, nil
}

func (c *httpClient) FindRecord(ctx context.Context, baseID, tableID, recordID string) (*Record, error) {
	if recordID == "" {
		return nil, airerr.InvalidParameter("no record id given")
	}
	var rec Record
	resp, err := c.http.R().SetContext(ctx).SetResult(&rec).
		Get(c.base + "/" + baseID + "/" + tableID + "/" + recordID)
	observe(resp, err, "find")
	if err != nil {
		return nil, fmt.Errorf("find record: %w", err)
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return &rec, nil
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

func (c *httpClient) ListRecords(ctx context.Context, baseID, tableID string, q ListQuery) ([]Record, error) {
	var all []Record
	offset := ""
	for {
		req := c.http.R().SetContext(ctx)
		if len(q.Fields) > 0 {
			v := url.Values{}
			for _, f := range q.Fields {
				v.Add("fields[]", f)
			}
			req.SetQueryParamsFromValues(v)
		}
		if q.FilterByFormula != "" {
			req.SetQueryParam("filterByFormula", q.FilterByFormula)
		}
		for i, s := range q.Sort {
			req.SetQueryParam(fmt.Sprintf("sort[%d][field]", i), s.Field)
			if s.Direction != "" {
				req.SetQueryParam(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
			}
		}
		if q.MaxRecords > 0 {
			req.SetQueryParam("maxRecords", strconv.Itoa(q.MaxRecords))
		}
		if q.View != "" {
			req.SetQueryParam("view", q.View)
		}
		if offset != "" {
			req.SetQueryParam("offset", offset)
		}
		var page listResponse
		resp, err := req.SetResult(&page).Get(c.base + "/" + baseID + "/" + tableID)
		observe(resp, err, "list")
		if err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
		if resp.IsError() {
			return nil, restyErr(resp)
		}
		all = append(all, page.Records...)
		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

func (c *httpClient) CreateRecord(ctx context.Context, baseID, tableID string, fields map[string]any) (*Record, error) {
	var rec Record
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]any{"fields": fields}).SetResult(&rec).
		Post(c.base + "/" + baseID + "/" + tableID)
	observe(resp, err, "create")
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return &rec, nil
}

func (c *httpClient) UpdateRecord(ctx context.Context, baseID, tableID, recordID string, fields map[string]any) (*Record, error) {
	if recordID == "" {
		return nil, airerr.InvalidParameter("no record id given")
	}
	var rec Record
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]any{"fields": fields}).SetResult(&rec).
		Patch(c.base + "/" + baseID + "/" + tableID + "/" + recordID)
	observe(resp, err, "update")
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return &rec, nil
}

func (c *httpClient) DeleteRecord(ctx context.Context, baseID, tableID, recordID string) error {
	if recordID == "" {
		return airerr.InvalidParameter("no record id given")
	}
	resp, err := c.http.R().SetContext(ctx).
		Delete(c.base + "/" + baseID + "/" + tableID + "/" + recordID)
	observe(resp, err, "delete")
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if resp.IsError() {
		return restyErr(resp)
	}
	return nil
}

func observe(resp *resty.Response, err error, op string) {
	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	metrics.APIRequests.WithLabelValues(op, status).Inc()
}

func restyErr(resp *resty.Response) *airerr.Error {
	if resp.StatusCode() == http.StatusNotFound {
		return airerr.NotFound("remote returned 404: %s", resp.String())
	}
	return airerr.API(resp.StatusCode(), "remote API error %s: %s", resp.Status(), resp.String())
}
