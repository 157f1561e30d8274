// Package client talks to the coopcycle REST API, one typed Client per
// resource. Every call is a single request: nothing is retried or cached.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/diewo77/go-coopcycle/httpx"
	"github.com/diewo77/go-coopcycle/internal/identity"
	"github.com/diewo77/go-coopcycle/internal/models"
)

var (
	ErrNotFound    = errors.New("entity not found")
	ErrHasIdentity = errors.New("a new entity cannot already have an id")
	ErrNoIdentity  = errors.New("entity has no id")
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Code       string
	Details    any
}

func (e *StatusError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("coopcycle api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("coopcycle api: status %d: %s", e.StatusCode, e.Code)
}

// Request holds list query parameters. Zero values are not sent.
type Request struct {
	Page int
	Size int
	// Sort entries are "field" or "field,asc|desc".
	Sort []string
	// Filter maps a field to the value it must equal.
	Filter map[string]string
}

func (r Request) query() url.Values {
	q := url.Values{}
	if r.Page > 0 {
		q.Set("page", strconv.Itoa(r.Page))
	}
	if r.Size > 0 {
		q.Set("size", strconv.Itoa(r.Size))
	}
	for _, s := range r.Sort {
		q.Add("sort", s)
	}
	for field, value := range r.Filter {
		q.Set(field+".equals", value)
	}
	return q
}

// Page is one page of a list query.
type Page[E any] struct {
	Items []E
	// Total is the X-Total-Count header, or len(Items) when absent.
	Total int64
}

// Client is the access client of one resource.
type Client[E models.Entity] struct {
	httpclient *http.Client
	api        string
	resource   string
}

// New builds a client for api/<resource> under the base URL api. A nil
// httpclient uses http.DefaultClient.
func New[E models.Entity](httpclient *http.Client, api, resource string) *Client[E] {
	if httpclient == nil {
		httpclient = http.DefaultClient
	}
	return &Client[E]{
		httpclient: httpclient,
		api:        strings.TrimSuffix(api, "/"),
		resource:   resource,
	}
}

func (c *Client[E]) Resource() string { return c.resource }

func (c *Client[E]) apipath(path ...string) string {
	parts := []string{c.api, "api", c.resource}
	for _, p := range path {
		parts = append(parts, url.PathEscape(strings.Trim(p, "/")))
	}
	return strings.Join(parts, "/")
}

// Create posts a new entity and returns it with its assigned id.
func (c *Client[E]) Create(ctx context.Context, e E) (E, error) {
	var none E
	if e == none {
		return none, fmt.Errorf("create %s: nil entity", c.resource)
	}
	if !e.Identity().IsNew() {
		return none, fmt.Errorf("create %s: %w", c.resource, ErrHasIdentity)
	}
	return c.send(ctx, http.MethodPost, c.apipath(), "application/json", e, http.StatusCreated)
}

// Update replaces the entity stored under e's id.
func (c *Client[E]) Update(ctx context.Context, e E) (E, error) {
	id, err := c.identityOf("update", e)
	if err != nil {
		var none E
		return none, err
	}
	return c.send(ctx, http.MethodPut, c.apipath(id.String()), "application/json", e, http.StatusOK)
}

// PartialUpdate sends e as a merge patch: absent fields are left as stored.
func (c *Client[E]) PartialUpdate(ctx context.Context, e E) (E, error) {
	id, err := c.identityOf("patch", e)
	if err != nil {
		var none E
		return none, err
	}
	return c.send(ctx, http.MethodPatch, c.apipath(id.String()), httpx.MergePatchJSON, e, http.StatusOK)
}

// Find fetches one entity. A 404 or an empty body yields ErrNotFound.
func (c *Client[E]) Find(ctx context.Context, id models.ID) (E, error) {
	var none E
	if id.IsNew() {
		return none, fmt.Errorf("find %s: %w", c.resource, ErrNoIdentity)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath(id.String()), nil)
	if err != nil {
		return none, err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return none, fmt.Errorf("find %s %d: %w", c.resource, id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return none, fmt.Errorf("find %s %d: %w", c.resource, id, ErrNotFound)
	}
	var e E
	if err := decodeResponse(resp, http.StatusOK, &e); err != nil {
		return none, fmt.Errorf("find %s %d: %w", c.resource, id, err)
	}
	if e == none {
		return none, fmt.Errorf("find %s %d: %w", c.resource, id, ErrNotFound)
	}
	return e, nil
}

// Query lists entities matching req.
func (c *Client[E]) Query(ctx context.Context, req Request) (*Page[E], error) {
	u := c.apipath()
	if q := req.query(); len(q) > 0 {
		u += "?" + q.Encode()
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpclient.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.resource, err)
	}
	defer resp.Body.Close()

	var items []E
	if err := decodeResponse(resp, http.StatusOK, &items); err != nil {
		return nil, fmt.Errorf("query %s: %w", c.resource, err)
	}
	page := &Page[E]{Items: items, Total: int64(len(items))}
	if h := resp.Header.Get(httpx.TotalCountHeader); h != "" {
		if n, err := strconv.ParseInt(h, 10, 64); err == nil {
			page.Total = n
		}
	}
	return page, nil
}

// Delete removes the entity stored under id.
func (c *Client[E]) Delete(ctx context.Context, id models.ID) error {
	if id.IsNew() {
		return fmt.Errorf("delete %s: %w", c.resource, ErrNoIdentity)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.apipath(id.String()), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", c.resource, id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("delete %s %d: %w", c.resource, id, ErrNotFound)
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("delete %s %d: %w", c.resource, id, statusError(resp))
	}
	return nil
}

// Identifier returns the id of e, zero when e is absent.
func (c *Client[E]) Identifier(e E) models.ID {
	var none E
	if e == none {
		return 0
	}
	return e.Identity()
}

// Compare reports whether a and b are the same entity, by id.
func (c *Client[E]) Compare(a, b E) bool { return identity.Equal[models.ID](a, b) }

// AddToCollectionIfMissing puts the candidates that collection lacks in
// front of it.
func (c *Client[E]) AddToCollectionIfMissing(collection []E, candidates ...E) []E {
	return identity.AddIfMissing[models.ID](collection, candidates...)
}

func (c *Client[E]) identityOf(op string, e E) (models.ID, error) {
	var none E
	if e == none || e.Identity().IsNew() {
		return 0, fmt.Errorf("%s %s: %w", op, c.resource, ErrNoIdentity)
	}
	return e.Identity(), nil
}

func (c *Client[E]) send(ctx context.Context, method, u, contentType string, e E, want int) (E, error) {
	var none E
	b, err := json.Marshal(e)
	if err != nil {
		return none, fmt.Errorf("encode %s: %w", c.resource, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(b))
	if err != nil {
		return none, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return none, fmt.Errorf("%s %s: %w", method, c.resource, err)
	}
	defer resp.Body.Close()

	var out E
	if err := decodeResponse(resp, want, &out); err != nil {
		return none, fmt.Errorf("%s %s: %w", method, c.resource, err)
	}
	return out, nil
}

// decodeResponse checks the status and decodes a JSON body into v. An empty
// 2xx body leaves v untouched.
func decodeResponse[T any](resp *http.Response, want int, v *T) error {
	if resp.StatusCode != want {
		return statusError(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unexpected response body (status code = %d): %w", resp.StatusCode, err)
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return se
	}
	var payload httpx.ErrorResponse
	if json.Unmarshal(body, &payload) == nil {
		se.Code = payload.Error
		se.Details = payload.Details
	}
	return se
}
