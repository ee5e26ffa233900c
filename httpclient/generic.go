//nolint:ireturn
package httpclient

import (
	"context"
	"net/http"
)

// DoJSON decodes a successful response into T. A 404 returns nil and no error.
func DoJSON[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (*T, error) {
	resp, err := c.Do(ctx, method, path, body, opts...)
	if err != nil {
		return nil, err
	}

	if !resp.Found() {
		return nil, nil //nolint:nilnil
	}

	var result T
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

func GetJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*T, error) {
	return DoJSON[T](ctx, c, http.MethodGet, path, nil, opts...)
}

func PostJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*T, error) {
	return DoJSON[T](ctx, c, http.MethodPost, path, body, opts...)
}

func PutJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*T, error) {
	return DoJSON[T](ctx, c, http.MethodPut, path, body, opts...)
}

func PatchJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*T, error) {
	return DoJSON[T](ctx, c, http.MethodPatch, path, body, opts...)
}

func DeleteJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*T, error) {
	return DoJSON[T](ctx, c, http.MethodDelete, path, nil, opts...)
}
