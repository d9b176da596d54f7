package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bio/internal/normalize"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func TestDocumentRoundTrip(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetDocument(ctx, "sam"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetDocument() error = %v, want ErrNotFound", err)
	}

	w := normalize.Wire{"profile": map[string]any{"name": "Sam"}, "linkGroups": map[string]any{}}
	if err := s.SaveDocument(ctx, "sam", w); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}
	if !mr.Exists(DocumentKey("sam")) {
		t.Fatalf("document not stored under %s", DocumentKey("sam"))
	}

	got, err := s.GetDocument(ctx, "sam")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	profile, _ := got["profile"].(map[string]any)
	if profile["name"] != "Sam" {
		t.Errorf("profile = %v", got["profile"])
	}
}

func TestSeedDocumentKeepsExisting(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := normalize.Wire{"profile": map[string]any{"name": "first"}}
	got, err := s.SeedDocument(ctx, "sam", first)
	if err != nil {
		t.Fatalf("SeedDocument() error = %v", err)
	}
	if got["profile"].(map[string]any)["name"] != "first" {
		t.Errorf("first seed returned %v", got)
	}

	second := normalize.Wire{"profile": map[string]any{"name": "second"}}
	got, err = s.SeedDocument(ctx, "sam", second)
	if err != nil {
		t.Fatalf("SeedDocument() error = %v", err)
	}
	if got["profile"].(map[string]any)["name"] != "first" {
		t.Errorf("second seed overwrote the document: %v", got)
	}
}

func TestCorruptDocument(t *testing.T) {
	s, mr := newTestStore(t)
	if err := mr.Set(DocumentKey("sam"), "[1,2]"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetDocument(context.Background(), "sam"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("GetDocument() error = %v, want decode error", err)
	}
}

func TestCreateUser(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	sam := User{ID: "1", Email: "Sam@Example.com ", Username: "sam", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	if err := s.CreateUser(ctx, sam); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	tests := []struct {
		name string
		user User
		want error
	}{
		{"same email other case", User{Email: "sam@example.com", Username: "other"}, ErrEmailTaken},
		{"same username", User{Email: "new@example.com", Username: "sam"}, ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.CreateUser(ctx, tt.user); !errors.Is(err, tt.want) {
				t.Errorf("CreateUser() error = %v, want %v", err, tt.want)
			}
		})
	}

	if mr.Exists(EmailKey("new@example.com")) {
		t.Error("email claim not released after username conflict")
	}

	got, err := s.GetUserByEmail(ctx, "SAM@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if got.ID != "1" || got.Username != "sam" || got.PasswordHash != "h" {
		t.Errorf("GetUserByEmail() = %+v", got)
	}
	if _, err := s.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByEmail(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestAnalytics(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	clicks := []struct {
		link string
		at   time.Time
	}{
		{"a", base},
		{"b", base.Add(time.Minute)},
		{"b", base.Add(2 * time.Minute)},
		{"c", base},
		{"b", base.Add(time.Second)},
	}
	for _, c := range clicks {
		if err := s.RecordClick(ctx, "sam", c.link, c.at); err != nil {
			t.Fatalf("RecordClick() error = %v", err)
		}
	}

	got, err := s.Analytics(ctx, "sam")
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Analytics() returned %d entries, want 3", len(got))
	}
	order := []string{got[0].LinkID, got[1].LinkID, got[2].LinkID}
	if order[0] != "b" || order[1] != "a" || order[2] != "c" {
		t.Errorf("order = %v, want [b a c]", order)
	}
	if got[0].Clicks != 3 {
		t.Errorf("clicks of b = %d, want 3", got[0].Clicks)
	}
	if got[0].LatestClickTimestamp == nil || !got[0].LatestClickTimestamp.Equal(base.Add(2*time.Minute)) {
		t.Errorf("latest click of b = %v, want the newest click", got[0].LatestClickTimestamp)
	}

	data, _ := json.Marshal(got[1])
	var wire map[string]any
	_ = json.Unmarshal(data, &wire)
	if wire["linkId"] != "a" || wire["clicks"] != float64(1) || wire["latestClickTimestamp"] != "2026-03-01T12:00:00Z" {
		t.Errorf("json = %s", data)
	}
}

func TestAnalyticsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	got, err := s.Analytics(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Analytics() = %#v, want empty non-nil slice", got)
	}
}
