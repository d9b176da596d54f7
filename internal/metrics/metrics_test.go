package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestCollectorsAreExposed(t *testing.T) {
	m := New()
	m.DocumentWrites.WithLabelValues("save", Outcome(nil)).Inc()
	m.DocumentWrites.WithLabelValues("save", Outcome(errors.New("x"))).Inc()
	m.Clicks.Add(2)

	body := scrape(t, m)
	for _, want := range []string{
		`bio_document_writes_total{source="save",status="ok"} 1`,
		`bio_document_writes_total{source="save",status="error"} 1`,
		"bio_link_clicks_total 2",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition lacks %q", want)
		}
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Registrations.Inc()
	if body := scrape(t, b); !strings.Contains(body, "bio_registrations_total 0") {
		t.Error("second instance saw registrations of the first")
	}
}

func TestRegisterReturnsExisting(t *testing.T) {
	m := New()
	opts := prometheus.CounterOpts{Name: "bio_extra_total", Help: "extra"}
	first := m.Register(prometheus.NewCounter(opts))
	second := m.Register(prometheus.NewCounter(opts))
	if first != second {
		t.Error("Register() did not return the already registered collector")
	}
}
