package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/bio/internal/domain"
)

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()

	if len(c.Palettes) != 3 {
		t.Fatalf("Builtin() palettes = %d, want 3", len(c.Palettes))
	}
	for _, p := range c.Palettes {
		if missing := p.Light.Missing(); len(missing) > 0 {
			t.Errorf("palette %s light is missing %v", p.ID, missing)
		}
		if missing := p.Dark.Missing(); len(missing) > 0 {
			t.Errorf("palette %s dark is missing %v", p.ID, missing)
		}
	}
	if len(c.Fonts) == 0 || len(c.Animations) == 0 || len(c.Platforms) == 0 {
		t.Errorf("Builtin() has empty sections: fonts=%d animations=%d platforms=%d",
			len(c.Fonts), len(c.Animations), len(c.Platforms))
	}
}

func TestDefaultPaletteIsACopy(t *testing.T) {
	p := DefaultPalette()
	if p.ID != domain.DefaultPaletteID {
		t.Fatalf("DefaultPalette().ID = %q, want %q", p.ID, domain.DefaultPaletteID)
	}

	p.Light["--background-color"] = "#000000"
	if DefaultPalette().Light["--background-color"] == "#000000" {
		t.Error("mutating the returned palette changed the catalog")
	}
}

func TestPlaceholderExpandsCountdown(t *testing.T) {
	now := time.Date(2025, 8, 11, 18, 42, 0, 0, time.UTC)
	doc := Placeholder(now)

	if len(doc.LinkGroups) != 2 {
		t.Fatalf("placeholder groups = %d, want 2", len(doc.LinkGroups))
	}
	if len(doc.Palettes) != 3 {
		t.Errorf("placeholder palettes = %d, want the 3 built-in ones", len(doc.Palettes))
	}
	if doc.Customization.CustomColors.Light == nil || doc.Customization.CustomColors.Dark == nil {
		t.Error("placeholder custom colors must be allocated")
	}

	gi, li := doc.LinkIndex("5")
	if gi < 0 {
		t.Fatal("placeholder has no countdown link")
	}
	cd, ok := doc.LinkGroups[gi].Links[li].ActiveCountdown(now)
	if !ok {
		t.Fatal("placeholder countdown should be active")
	}
	if want := now.Add(5 * time.Minute); !cd.EndsAt.Equal(want) {
		t.Errorf("countdown ends at %v, want %v", cd.EndsAt, want)
	}
}

func TestLoadPlaceholderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placeholder.yaml")
	content := `profile:
  name: Sam
  handle: "@sam"
linkGroups:
  - id: g1
    title: Only
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write placeholder: %v", err)
	}

	doc, err := LoadPlaceholder(path, time.Now())
	if err != nil {
		t.Fatalf("LoadPlaceholder() error = %v", err)
	}
	if doc.Profile.Name != "Sam" {
		t.Errorf("profile name = %q, want Sam", doc.Profile.Name)
	}
	if doc.LinkGroups[0].Links == nil {
		t.Error("group links must be allocated")
	}
	if doc.Socials == nil {
		t.Error("socials must be allocated")
	}
}

func TestLoadPlaceholderFileNotFound(t *testing.T) {
	if _, err := LoadPlaceholder("/nonexistent/placeholder.yaml", time.Now()); err == nil {
		t.Error("LoadPlaceholder() with missing file should return error")
	}
}

func TestExpandTimeVariables(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bare now", input: "at: {{NOW}}", expected: "at: 2025-01-01T00:00:00Z"},
		{name: "offset", input: "at: {{NOW+1h}}", expected: "at: 2025-01-01T01:00:00Z"},
		{name: "no variables", input: "plain text", expected: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(expandTimeVariables([]byte(tt.input), now))
			if got != tt.expected {
				t.Errorf("expandTimeVariables() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewUserDocument(t *testing.T) {
	n := 0
	newID := func() string {
		n++
		return string(rune('a' + n - 1))
	}

	doc := NewUserDocument("sam", newID)
	if doc.Profile.Handle != "@sam" {
		t.Errorf("handle = %q, want @sam", doc.Profile.Handle)
	}
	if len(doc.LinkGroups) != 1 || len(doc.LinkGroups[0].Links) != 1 {
		t.Fatalf("want one group with one link, got %+v", doc.LinkGroups)
	}
	if len(doc.Socials) != 1 {
		t.Errorf("socials = %d, want 1", len(doc.Socials))
	}
	if doc.PaletteIndex(domain.DefaultPaletteID) < 0 {
		t.Error("seed document must carry the default palette")
	}
	if n != 3 {
		t.Errorf("newID called %d times, want 3", n)
	}
}

func TestPresetLookups(t *testing.T) {
	c := Builtin()

	tests := []struct {
		name string
		ok   func() bool
		want bool
	}{
		{name: "known font", ok: func() bool { _, ok := c.Font("font-lora"); return ok }, want: true},
		{name: "unknown font", ok: func() bool { _, ok := c.Font("comic-sans"); return ok }, want: false},
		{name: "known animation", ok: func() bool { _, ok := c.Animation("pulse"); return ok }, want: true},
		{name: "unknown animation", ok: func() bool { _, ok := c.Animation("spin"); return ok }, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ok(); got != tt.want {
				t.Errorf("found = %v, want %v", got, tt.want)
			}
		})
	}

	if ids := c.FontIDs(); len(ids) != len(c.Fonts) || ids[0] != "font-sans" {
		t.Errorf("FontIDs() = %v", ids)
	}
	if ids := c.AnimationIDs(); len(ids) != len(c.Animations) || ids[0] != "none" {
		t.Errorf("AnimationIDs() = %v", ids)
	}
}
