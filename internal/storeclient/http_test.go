package storeclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/bio/internal/domain"
)

func TestHTTPFetchNormalizesWireShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/sam/appData" {
			t.Errorf("path = %s, want /users/sam/appData", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		_, _ = io.WriteString(w, `{
			"profile": {"name": "Sam"},
			"linkGroups": {
				"b": {"id": "b", "title": "B", "order": 1, "links": {}},
				"a": {"id": "a", "title": "A", "order": 0, "links": {}}
			}
		}`)
	}))
	defer srv.Close()

	c := NewHTTP(srv.URL+"/", WithToken("tok"))
	doc, err := c.FetchDocument(context.Background(), "sam")
	if err != nil {
		t.Fatalf("FetchDocument() error = %v", err)
	}
	if len(doc.LinkGroups) != 2 || doc.LinkGroups[0].ID != "a" {
		t.Errorf("groups = %+v, want a then b", doc.LinkGroups)
	}
	if doc.PaletteIndex(domain.DefaultPaletteID) < 0 {
		t.Error("fetched document lacks the default palette")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: ErrForbidden},
		{name: "bad request", status: http.StatusBadRequest, want: ErrInvalidDocument},
		{name: "server error", status: http.StatusInternalServerError, want: ErrNetwork},
		{name: "bad gateway", status: http.StatusBadGateway, want: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"message": "nope"}`)
			}))
			defer srv.Close()

			_, err := NewHTTP(srv.URL).FetchDocument(context.Background(), "sam")
			if !errors.Is(err, tt.want) {
				t.Errorf("FetchDocument() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHTTPTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewHTTP(url).PersistDocument(context.Background(), "sam", domain.Document{})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("PersistDocument() error = %v, want ErrNetwork", err)
	}
}

func TestHTTPPersistSendsDocument(t *testing.T) {
	var got domain.Document
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	doc := domain.Document{Profile: domain.Profile{Name: "Sam"}}
	if err := NewHTTP(srv.URL).PersistDocument(context.Background(), "sam", doc); err != nil {
		t.Fatalf("PersistDocument() error = %v", err)
	}
	if got.Profile.Name != "Sam" {
		t.Errorf("server received %+v", got.Profile)
	}
}

func TestHTTPLoginKeepsToken(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			_, _ = io.WriteString(w, `{"token": "fresh", "user": {"id": "1", "username": "sam"}}`)
		default:
			seen = r.Header.Get("Authorization")
			_, _ = io.WriteString(w, `{}`)
		}
	}))
	defer srv.Close()

	c := NewHTTP(srv.URL)
	s, err := c.Login(context.Background(), "sam@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if s.User.Username != "sam" {
		t.Errorf("username = %q, want sam", s.User.Username)
	}
	if _, err := c.ExportDocument(context.Background(), "sam"); err != nil {
		t.Fatalf("ExportDocument() error = %v", err)
	}
	if seen != "Bearer fresh" {
		t.Errorf("Authorization = %q, want the login token", seen)
	}
}
