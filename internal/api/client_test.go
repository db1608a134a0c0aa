package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Saba3939/oneday-todo/internal/store"
)

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return &Client{
		session:     &Session{ServerURL: srv.URL, Token: "test-token", UserID: "u1"},
		sessionPath: filepath.Join(t.TempDir(), "session.json"),
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestListDaySendsAuthAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/api/v1/tasks" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2024-05-20" {
			t.Errorf("date = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "user_id": "u1", "content": "Buy milk", "is_completed": false,
			 "order_index": 1, "created_at": "2024-05-20T01:00:00+09:00"},
			{"id": 2, "user_id": "u1", "content": "Call dentist", "is_completed": true,
			 "order_index": 2, "created_at": "2024-05-20T02:00:00+09:00"}
		]`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	tasks, err := c.ListDay(context.Background(), "2024-05-20")
	if err != nil {
		t.Fatalf("ListDay: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Content != "Buy milk" || tasks[0].ID != 1 {
		t.Errorf("first task = %+v", tasks[0])
	}
	if tasks[1].Day() != "2024-05-20" {
		t.Errorf("task day = %s, want 2024-05-20", tasks[1].Day())
	}
}

func TestAddMapsQuotaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "daily limit reached", "code": "quota_exceeded", "limit": 10, "count": 10}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := c.Add(context.Background(), "one too many")
	if !store.IsQuota(err) {
		t.Fatalf("Add = %v, want quota error", err)
	}
	var qe *store.QuotaError
	errors.As(err, &qe)
	if qe.Limit != 10 || qe.Count != 10 {
		t.Errorf("quota error = %+v", qe)
	}
}

func TestErrorCodeMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/tasks/99/toggle":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "task not found", "code": "not_found"}`))
		case "/api/v1/tasks":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "content required", "code": "empty_content"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "boom"}`))
		}
	}))
	defer srv.Close()

	c := testClient(t, srv)
	ctx := context.Background()

	if err := c.Toggle(ctx, 99); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Toggle = %v, want ErrNotFound", err)
	}
	if _, err := c.Add(ctx, "  "); !errors.Is(err, store.ErrEmptyContent) {
		t.Errorf("Add = %v, want ErrEmptyContent", err)
	}
	if err := c.Delete(ctx, 1); err == nil {
		t.Error("Delete should surface the server error")
	}
}

func TestLastAccessRoundTrip(t *testing.T) {
	var putDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/profile":
			if putDate == "" {
				w.Write([]byte(`{"id": "u1", "username": "alice", "is_premium": false, "last_access": ""}`))
			} else {
				w.Write([]byte(`{"id": "u1", "username": "alice", "is_premium": false, "last_access": "` + putDate + `"}`))
			}
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/profile/last-access":
			var body struct {
				Date string `json:"date"`
			}
			if err := readJSON(r, &body); err != nil {
				t.Errorf("bad body: %v", err)
			}
			putDate = body.Date
			w.Write([]byte(`{"ok": true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := testClient(t, srv)
	ctx := context.Background()

	if _, ok, err := c.LastAccess(ctx); err != nil || ok {
		t.Errorf("LastAccess before set = ok=%v err=%v, want absent", ok, err)
	}

	if err := c.SetLastAccess(ctx, "2024-05-20"); err != nil {
		t.Fatalf("SetLastAccess: %v", err)
	}
	day, ok, err := c.LastAccess(ctx)
	if err != nil || !ok || day != "2024-05-20" {
		t.Errorf("LastAccess = %s ok=%v err=%v, want 2024-05-20", day, ok, err)
	}
}

func readJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
