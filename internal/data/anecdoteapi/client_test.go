package anecdoteapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
)

// fakeServer is a minimal in-memory stand-in for the anecdote service.
type fakeServer struct {
	mu       sync.Mutex
	items    []anecdote.Anecdote
	nextID   int
	requests []*http.Request
	failWith int
	bodies   [][]byte
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r)

	var raw json.RawMessage
	if r.Body != nil && r.ContentLength != 0 {
		_ = json.NewDecoder(r.Body).Decode(&raw)
	}
	f.bodies = append(f.bodies, raw)

	if f.failWith != 0 {
		http.Error(w, "boom", f.failWith)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/anecdotes":
		_ = json.NewEncoder(w).Encode(f.items)
	case r.Method == http.MethodGet:
		for _, a := range f.items {
			if "/anecdotes/"+a.ID.String() == r.URL.Path {
				_ = json.NewEncoder(w).Encode(a)
				return
			}
		}
		http.NotFound(w, r)
	case r.Method == http.MethodPost:
		var a anecdote.Anecdote
		_ = json.Unmarshal(raw, &a)
		f.nextID++
		a.ID = anecdote.ID("id" + string(rune('0'+f.nextID)))
		f.items = append(f.items, a)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(a)
	case r.Method == http.MethodPut:
		var a anecdote.Anecdote
		_ = json.Unmarshal(raw, &a)
		for i := range f.items {
			if "/anecdotes/"+f.items[i].ID.String() == r.URL.Path {
				f.items[i] = a
				_ = json.NewEncoder(w).Encode(a)
				return
			}
		}
		http.NotFound(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestClient(t *testing.T, srv *fakeServer) *Client {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", time.Second, zerolog.Nop())
}

func TestClient_List(t *testing.T) {
	srv := &fakeServer{items: []anecdote.Anecdote{
		{ID: "a1", Content: "If it hurts, do it more often", Votes: 3},
		{ID: "a2", Content: "Adding manpower to a late software project makes it later!", Votes: 0},
	}}
	c := newTestClient(t, srv)

	got, err := c.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, srv.items, got)
	require.Len(t, srv.requests, 1)
	assert.NotEmpty(t, srv.requests[0].Header.Get("X-Request-ID"))
	assert.Equal(t, "application/json", srv.requests[0].Header.Get("Accept"))
}

func TestClient_List_empty_is_not_nil(t *testing.T) {
	c := newTestClient(t, &fakeServer{})

	got, err := c.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_Create_sends_content_and_zero_votes(t *testing.T) {
	srv := &fakeServer{}
	c := newTestClient(t, srv)

	got, err := c.Create(context.Background(), anecdote.New("hello world"))

	require.NoError(t, err)
	assert.Equal(t, anecdote.ID("id1"), got.ID)
	assert.Equal(t, "hello world", got.Content)
	assert.Equal(t, 0, got.Votes)

	require.Len(t, srv.bodies, 1)
	assert.JSONEq(t, `{"content":"hello world","votes":0}`, string(srv.bodies[0]))
	assert.Equal(t, "application/json", srv.requests[0].Header.Get("Content-Type"))
}

func TestClient_Update_puts_full_body(t *testing.T) {
	srv := &fakeServer{items: []anecdote.Anecdote{{ID: "a1", Content: "hello world", Votes: 3}}}
	c := newTestClient(t, srv)

	got, err := c.Update(context.Background(), srv.items[0].Voted())

	require.NoError(t, err)
	assert.Equal(t, 4, got.Votes)
	require.Len(t, srv.requests, 1)
	assert.Equal(t, http.MethodPut, srv.requests[0].Method)
	assert.Equal(t, "/anecdotes/a1", srv.requests[0].URL.Path)
	assert.JSONEq(t, `{"id":"a1","content":"hello world","votes":4}`, string(srv.bodies[0]))
}

func TestClient_Update_requires_id(t *testing.T) {
	srv := &fakeServer{}
	c := newTestClient(t, srv)

	_, err := c.Update(context.Background(), anecdote.Anecdote{Content: "hello world"})

	require.Error(t, err)
	assert.Empty(t, srv.requests)
}

func TestClient_Get(t *testing.T) {
	srv := &fakeServer{items: []anecdote.Anecdote{{ID: "a1", Content: "hello world", Votes: 1}}}
	c := newTestClient(t, srv)

	got, err := c.Get(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, srv.items[0], got)

	_, err = c.Get(context.Background(), "missing")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestClient_non_2xx_is_status_error(t *testing.T) {
	srv := &fakeServer{failWith: http.StatusInternalServerError}
	c := newTestClient(t, srv)

	_, err := c.List(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, http.MethodGet, statusErr.Method)
	assert.Equal(t, "boom", statusErr.Body)
	assert.Contains(t, err.Error(), "list anecdotes")
}

func TestClient_unreachable_service(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(url, time.Second, zerolog.Nop())

	_, err := c.List(context.Background())
	require.Error(t, err)
}

func TestClient_respects_context(t *testing.T) {
	c := newTestClient(t, &fakeServer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_numeric_ids(t *testing.T) {
	var putPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":1,"content":"If it hurts, do it more often","votes":3}]`))
		case http.MethodPut:
			putPath = r.URL.Path
			_, _ = w.Write([]byte(`{"id":1,"content":"If it hurts, do it more often","votes":4}`))
		}
	}))
	t.Cleanup(ts.Close)

	c := New(ts.URL, time.Second, zerolog.Nop())

	items, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, anecdote.ID("1"), items[0].ID)

	got, err := c.Update(context.Background(), items[0].Voted())
	require.NoError(t, err)
	assert.Equal(t, "/anecdotes/1", putPath)
	assert.Equal(t, 4, got.Votes)
}
