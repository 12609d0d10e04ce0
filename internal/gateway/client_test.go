package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) InvalidatePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func TestBookingsSendsKeyAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/api/bookings" || r.URL.Query().Get("source") != "discord" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"bookings": []map[string]interface{}{{"id": 1, "source": "discord", "status": "confirmed"}},
			"total":    1, "limit": 50, "offset": 0,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", time.Second)
	resp, err := c.Bookings(context.Background(), url.Values{"source": {"discord"}})
	if err != nil {
		t.Fatalf("Bookings: %v", err)
	}
	if resp.Total != 1 || len(resp.Bookings) != 1 || resp.Bookings[0].Source != "discord" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestErrorKindsAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/bookings/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Booking not found"}`))
		case "/api/customers":
			w.Write([]byte(`<html>oops</html>`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "k", time.Second)
	ctx := context.Background()

	_, err := c.Booking(ctx, "missing")
	var gwErr *Error
	if !errors.As(err, &gwErr) || gwErr.Kind != KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if StatusOf(err) != http.StatusNotFound || MessageOf(err) != "Booking not found" {
		t.Errorf("status=%d message=%q", StatusOf(err), MessageOf(err))
	}

	_, err = c.Customers(ctx, nil)
	if !errors.As(err, &gwErr) || gwErr.Kind != KindDecode || StatusOf(err) != http.StatusBadGateway {
		t.Errorf("expected decode error with 502, got %v", err)
	}

	_, err = c.Health(ctx)
	if StatusOf(err) != http.StatusInternalServerError {
		t.Errorf("500 upstream should mirror, got %d", StatusOf(err))
	}

	srv.Close()
	_, err = c.Calendar(ctx, 30)
	if !errors.As(err, &gwErr) || gwErr.Kind != KindUnavailable || StatusOf(err) != http.StatusServiceUnavailable {
		t.Errorf("expected unavailable with 503, got %v", err)
	}
}

func TestWaiversPath(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.RequestURI())
		mu.Unlock()
		w.Write([]byte(`{"waivers":[]}`))
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "k", time.Second)

	if _, err := c.Waivers(context.Background(), "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Waivers(context.Background(), "+15550100", ""); err != nil {
		t.Fatal(err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 2 || paths[0] != "/api/waivers" || paths[1] != "/api/waivers/check?phone=%2B15550100" {
		t.Errorf("paths = %v", paths)
	}
}

func TestCacheAndCancelInvalidation(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/bookings/7/cancel":
			w.Write([]byte(`{"ok":true}`))
		case r.URL.Path == "/api/bookings":
			hits.Add(1)
			w.Write([]byte(`{"bookings":[],"total":0}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second, WithCache(newMemoryCache(), time.Minute))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.Bookings(ctx, url.Values{"limit": {"10"}}); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one upstream hit with cache, got %d", hits.Load())
	}

	doc, err := c.CancelBooking(ctx, "7")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if string(doc) != `{"ok":true}` {
		t.Errorf("cancel payload = %s", doc)
	}
	if _, err := c.Bookings(ctx, url.Values{"limit": {"10"}}); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("cancel should invalidate cached bookings, hits = %d", hits.Load())
	}
}

func TestCompleteUsesChatReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("bad chat request: %+v %v", req, err)
		}
		w.Write([]byte(`{"reply":"{\"transactions\":[]}"}`))
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL, "k", time.Second).Complete(context.Background(), "parse this")
	if err != nil || reply != `{"transactions":[]}` {
		t.Errorf("Complete = %q, %v", reply, err)
	}
}
