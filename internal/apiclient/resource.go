package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/freightdesk/freightdesk/internal/shared"
)

// ListParams are the paging, sorting and filter parameters of a list query.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
	SortDir  string
	// Filters carries resource specific parameters such as type or country_id.
	Filters url.Values
}

// Values encodes p as query parameters.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	for k, vs := range p.Filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
	}
	if p.SortDir != "" {
		q.Set("sort_dir", p.SortDir)
	}
	return q
}

// Resource is the typed endpoint set of one API resource. T is the record
// the server returns and In the payload it accepts.
type Resource[T any, In any] struct {
	client *Client
	path   string
	tag    string
	name   string
}

// NewResource binds a resource at path, e.g. "master/carriers". name is the
// singular display name used in notifications.
func NewResource[T any, In any](c *Client, path, name string) *Resource[T, In] {
	return &Resource[T, In]{client: c, path: path, tag: path, name: name}
}

// Name returns the singular display name.
func (r *Resource[T, In]) Name() string { return r.name }

// List fetches one page. Both the paginated object and a bare array are
// accepted and normalized into a Page.
func (r *Resource[T, In]) List(ctx context.Context, p ListParams) (shared.Page[T], error) {
	q := p.Values()
	key := "list?" + q.Encode()
	if v, ok := r.client.cache.Get(r.tag, key); ok {
		return v.(shared.Page[T]), nil
	}
	data, err := r.client.do(ctx, http.MethodGet, r.path, q, nil)
	if err != nil {
		return shared.Page[T]{}, err
	}
	page, err := shared.DecodePage[T](data)
	if err != nil {
		return shared.Page[T]{}, fmt.Errorf("decode %s list: %w", r.name, err)
	}
	r.client.cache.Set(r.tag, key, page)
	return page, nil
}

// Search queries the lookup endpoint used by dropdowns.
func (r *Resource[T, In]) Search(ctx context.Context, q url.Values) ([]T, error) {
	key := "search?" + q.Encode()
	if v, ok := r.client.cache.Get(r.tag, key); ok {
		return v.([]T), nil
	}
	data, err := r.client.do(ctx, http.MethodGet, r.path+"/search", q, nil)
	if err != nil {
		return nil, err
	}
	page, err := shared.DecodePage[T](data)
	if err != nil {
		return nil, fmt.Errorf("decode %s search: %w", r.name, err)
	}
	r.client.cache.Set(r.tag, key, page.Items)
	return page.Items, nil
}

// Get fetches one record.
func (r *Resource[T, In]) Get(ctx context.Context, id int64) (T, error) {
	if v, ok := r.client.cache.GetID(r.tag, id); ok {
		return v.(T), nil
	}
	var out T
	data, err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", r.name, err)
	}
	r.client.cache.SetID(r.tag, id, out)
	return out, nil
}

// Create posts a new record.
func (r *Resource[T, In]) Create(ctx context.Context, in In) (T, error) {
	return r.write(ctx, MutationNotify(r.name, "create"), http.MethodPost, r.path, in)
}

// Update patches record id.
func (r *Resource[T, In]) Update(ctx context.Context, id int64, in In) (T, error) {
	return r.write(ctx, MutationNotify(r.name, "update"), http.MethodPatch, r.itemPath(id), in)
}

// Delete removes record id.
func (r *Resource[T, In]) Delete(ctx context.Context, id int64) error {
	if _, err := r.client.mutate(ctx, MutationNotify(r.name, "delete"), http.MethodDelete, r.itemPath(id), nil); err != nil {
		return err
	}
	r.client.cache.Invalidate(r.tag)
	return nil
}

// Invalidate drops every cached read of the resource.
func (r *Resource[T, In]) Invalidate() {
	r.client.cache.Invalidate(r.tag)
}

func (r *Resource[T, In]) write(ctx context.Context, n Notify, method, path string, body any) (T, error) {
	var out T
	data, err := r.client.mutate(ctx, n, method, path, body)
	if err != nil {
		return out, err
	}
	r.client.cache.Invalidate(r.tag)
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", r.name, err)
	}
	return out, nil
}

func (r *Resource[T, In]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}
