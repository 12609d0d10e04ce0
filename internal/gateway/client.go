// Package gateway is the client for the venue's external integration gateway
// (bookings, customers, calendar, waivers, race control and the chat model).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rp_admin_backend/internal/cache"
	"rp_admin_backend/pkg/utils"
)

const (
	apiKeyHeader   = "x-api-key"
	cacheKeyPrefix = "gateway:"
	maxBodyBytes   = 8 << 20
)

// Client talks to the gateway with a shared static API key.
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCache enables read-through caching of GET responses.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		if c != nil && ttl > 0 {
			cl.cache = c
			cl.cacheTTL = ttl
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) {
		cl.http = h
	}
}

func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		cache:   cache.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bookings lists bookings. Supported query keys: search, source, status,
// date_from, date_to, limit, offset.
func (c *Client) Bookings(ctx context.Context, query url.Values) (*BookingsResponse, error) {
	out := &BookingsResponse{}
	if err := c.getJSON(ctx, "/api/bookings", query, out); err != nil {
		return nil, err
	}
	if out.Bookings == nil {
		out.Bookings = []Booking{}
	}
	return out, nil
}

func (c *Client) Booking(ctx context.Context, id string) (*Booking, error) {
	out := &Booking{}
	if err := c.getJSON(ctx, "/api/bookings/"+url.PathEscape(id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelBooking cancels a booking and drops cached booking and customer reads.
func (c *Client) CancelBooking(ctx context.Context, id string) (Document, error) {
	var out Document
	if err := c.do(ctx, http.MethodPut, "/api/bookings/"+url.PathEscape(id)+"/cancel", nil, nil, &out); err != nil {
		return nil, err
	}
	for _, prefix := range []string{"/api/bookings", "/api/customers"} {
		if err := c.cache.InvalidatePrefix(ctx, cacheKeyPrefix+prefix); err != nil {
			utils.LogWarn(err, "Failed to invalidate gateway cache", map[string]interface{}{"prefix": prefix})
		}
	}
	return out, nil
}

func (c *Client) Customers(ctx context.Context, query url.Values) (*CustomersResponse, error) {
	out := &CustomersResponse{}
	if err := c.getJSON(ctx, "/api/customers", query, out); err != nil {
		return nil, err
	}
	if out.Customers == nil {
		out.Customers = []Customer{}
	}
	return out, nil
}

func (c *Client) Calendar(ctx context.Context, limit int) (Document, error) {
	var out Document
	err := c.getJSON(ctx, "/api/calendar", url.Values{"limit": {strconv.Itoa(limit)}}, &out)
	return out, err
}

// Waivers lists all waivers, or checks one customer when phone or email is set.
func (c *Client) Waivers(ctx context.Context, phone, email string) (Document, error) {
	var out Document
	if phone == "" && email == "" {
		err := c.getJSON(ctx, "/api/waivers", nil, &out)
		return out, err
	}
	query := url.Values{}
	if phone != "" {
		query.Set("phone", phone)
	}
	if email != "" {
		query.Set("email", email)
	}
	err := c.getJSON(ctx, "/api/waivers/check", query, &out)
	return out, err
}

// Health is never cached.
func (c *Client) Health(ctx context.Context) (Document, error) {
	var out Document
	err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, &out)
	return out, err
}

// Drivers returns the race-control leaderboard.
func (c *Client) Drivers(ctx context.Context) (Document, error) {
	var out Document
	err := c.getJSON(ctx, "/api/racecontrol/drivers", nil, &out)
	return out, err
}

func (c *Client) Chat(ctx context.Context, messages []ChatMessage) (*ChatReply, error) {
	out := &ChatReply{}
	if err := c.do(ctx, http.MethodPost, "/api/ollama/chat", nil, chatRequest{Messages: messages}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Complete sends a single user prompt to the chat model.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reply, err := c.Chat(ctx, []ChatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return "", err
	}
	return reply.Reply, nil
}

// getJSON is a cached GET.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	key := cacheKeyPrefix + path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if body, ok, err := c.cache.Get(ctx, key); err != nil {
		utils.LogWarn(err, "Gateway cache read failed", map[string]interface{}{"key": key})
	} else if ok && json.Unmarshal(body, out) == nil {
		return nil
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Message: "invalid gateway response", Err: err}
	}
	if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
		utils.LogWarn(err, "Gateway cache write failed", map[string]interface{}{"key": key})
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding gateway request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &Error{Kind: KindUnavailable, Message: "invalid gateway request", Err: err}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindUnavailable, Message: "gateway unreachable", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: KindUnavailable, Message: "reading gateway response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Kind: KindUpstream, StatusCode: resp.StatusCode, Message: upstreamMessage(respBody, resp.StatusCode)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Kind: KindDecode, StatusCode: resp.StatusCode, Message: "invalid gateway response", Err: err}
	}
	return nil
}

// upstreamMessage prefers the gateway's own message or error field.
func upstreamMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "Gateway error (" + strconv.Itoa(status) + " " + http.StatusText(status) + ")"
}
