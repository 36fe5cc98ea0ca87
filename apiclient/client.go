package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"unicode/utf8"

	apitypes "github.com/kbdviz/kbdviz/apitypes"
)

// Client provides a high-level interface to the kbdviz query service,
// handling request formatting, response parsing, and error handling.
type Client struct{ transport *Transport }

// New constructs a high-level API client using the internal low-level Transport.
// The addr parameter specifies the TCP address (host:port) of the query service.
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithPassword constructs a client that authenticates with the given password.
func NewWithPassword(addr, password string) *Client {
	return &Client{transport: NewTransportWithPassword(addr, password)}
}

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport implementation.
// This is primarily useful for testing or when advanced transport configuration is needed.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping returns the version and identity of the server.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

// PingCtx is the context-aware version of Ping.
func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	const path = "ping"
	raw, err := c.transport.DoCtx(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.PingResponse](raw)
}

// Count returns the number of base letters indexed for the served layout.
func (c *Client) Count() (*apitypes.CountResponse, error) {
	return c.CountCtx(context.Background())
}

func (c *Client) CountCtx(ctx context.Context) (*apitypes.CountResponse, error) {
	const path = "index/count"
	raw, err := c.transport.DoCtx(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.CountResponse](raw)
}

// Variants returns every character typeable from letter along with its key
// sequence.
func (c *Client) Variants(letter rune) (*apitypes.VariantsResponse, error) {
	return c.VariantsCtx(context.Background(), letter)
}

func (c *Client) VariantsCtx(ctx context.Context, letter rune) (*apitypes.VariantsResponse, error) {
	if !utf8.ValidRune(letter) {
		return nil, fmt.Errorf("invalid letter %U", letter)
	}
	path := "variants/" + url.PathEscape(string(letter))
	raw, err := c.transport.DoCtx(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.VariantsResponse](raw)
}

// LayoutInfo describes the served layout and its index.
func (c *Client) LayoutInfo() (*apitypes.LayoutInfoResponse, error) {
	return c.LayoutInfoCtx(context.Background())
}

func (c *Client) LayoutInfoCtx(ctx context.Context) (*apitypes.LayoutInfoResponse, error) {
	const path = "layout/info"
	raw, err := c.transport.DoCtx(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.LayoutInfoResponse](raw)
}

// Reload makes the server reload its layout source and rebuild the index.
// A failed rebuild leaves the previous index in service.
func (c *Client) Reload() (*apitypes.LayoutReloadResponse, error) {
	return c.ReloadCtx(context.Background())
}

func (c *Client) ReloadCtx(ctx context.Context) (*apitypes.LayoutReloadResponse, error) {
	const path = "layout/reload"
	raw, err := c.transport.DoCtx(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.LayoutReloadResponse](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem apitypes.ApiError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
