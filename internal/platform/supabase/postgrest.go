package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Eq builds a PostgREST equality filter expression for a column value.
func Eq(value string) string {
	return "eq." + value
}

// Select reads rows from a table. columns is a PostgREST select list
// ("*" or "role,assigned_to"); filters map column names to operator
// expressions (see Eq); limit 0 means no limit. The raw JSON array is
// returned for the caller to decode into its own row type.
func (c *Client) Select(ctx context.Context, table, columns string, filters map[string]string, limit int) ([]byte, error) {
	q := url.Values{"select": {columns}}
	for col, expr := range filters {
		q.Set(col, expr)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	return c.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/" + table,
		query:  q,
	})
}

// Insert writes one row and returns the JSON array of inserted rows as
// the store represents them (ids and defaults filled in).
func (c *Client) Insert(ctx context.Context, table string, row any) ([]byte, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("marshal %s row: %w", table, err)
	}

	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/rest/v1/" + table,
		body:        body,
		contentType: "application/json",
		headers:     map[string]string{"Prefer": "return=representation"},
	})
}

// Update patches all rows matching filters and returns the updated rows.
func (c *Client) Update(ctx context.Context, table string, values any, filters map[string]string) ([]byte, error) {
	body, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal %s update: %w", table, err)
	}

	q := url.Values{}
	for col, expr := range filters {
		q.Set(col, expr)
	}

	return c.do(ctx, request{
		method:      http.MethodPatch,
		path:        "/rest/v1/" + table,
		query:       q,
		body:        body,
		contentType: "application/json",
		headers:     map[string]string{"Prefer": "return=representation"},
	})
}
