package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/bio/internal/domain"
)

//go:embed data/*.yaml
var files embed.FS

// Font is a selectable page font.
type Font struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	ClassName string `yaml:"className" json:"className"`
}

// Animation is a selectable link-hover animation.
type Animation struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	ClassName string `yaml:"className" json:"className"`
}

// Catalog is the built-in set of appearance presets.
type Catalog struct {
	Palettes   []domain.Palette
	Fonts      []Font
	Animations []Animation
	Platforms  []string
}

// catalogFile mirrors catalog.yaml. Palettes go through JSON so they pick up
// the domain encoding (CSS variable keys, extra attributes).
type catalogFile struct {
	Palettes   []map[string]any `yaml:"palettes"`
	Fonts      []Font           `yaml:"fonts"`
	Animations []Animation      `yaml:"animations"`
	Platforms  []string         `yaml:"platforms"`
}

var (
	builtinOnce sync.Once
	builtin     *Catalog
	builtinErr  error
)

// Builtin returns the embedded catalog. It panics if the embedded data is
// malformed, which can only happen at build time.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		data, err := files.ReadFile("data/catalog.yaml")
		if err != nil {
			builtinErr = err
			return
		}
		builtin, builtinErr = Parse(data)
	})
	if builtinErr != nil {
		panic(fmt.Sprintf("catalog: embedded data is invalid: %v", builtinErr))
	}
	return builtin
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	palettes := make([]domain.Palette, 0, len(file.Palettes))
	for i, raw := range file.Palettes {
		var p domain.Palette
		if err := viaJSON(raw, &p); err != nil {
			return nil, fmt.Errorf("palette %d: %w", i, err)
		}
		if p.ID == "" {
			return nil, fmt.Errorf("palette %d has no id", i)
		}
		palettes = append(palettes, p)
	}

	return &Catalog{
		Palettes:   palettes,
		Fonts:      file.Fonts,
		Animations: file.Animations,
		Platforms:  file.Platforms,
	}, nil
}

// Font returns the font with the given id.
func (c *Catalog) Font(id string) (Font, bool) {
	for _, f := range c.Fonts {
		if f.ID == id {
			return f, true
		}
	}
	return Font{}, false
}

// Animation returns the link animation with the given id.
func (c *Catalog) Animation(id string) (Animation, bool) {
	for _, a := range c.Animations {
		if a.ID == id {
			return a, true
		}
	}
	return Animation{}, false
}

// FontIDs lists the font ids in catalog order.
func (c *Catalog) FontIDs() []string {
	ids := make([]string, len(c.Fonts))
	for i, f := range c.Fonts {
		ids[i] = f.ID
	}
	return ids
}

// AnimationIDs lists the animation ids in catalog order.
func (c *Catalog) AnimationIDs() []string {
	ids := make([]string, len(c.Animations))
	for i, a := range c.Animations {
		ids[i] = a.ID
	}
	return ids
}

// DefaultPalette returns a copy of the built-in palette with the reserved
// default id.
func DefaultPalette() domain.Palette {
	for _, p := range Builtin().Palettes {
		if p.ID == domain.DefaultPaletteID {
			return p.Clone()
		}
	}
	panic("catalog: embedded data has no default palette")
}

// Palettes returns copies of every built-in palette.
func Palettes() []domain.Palette {
	src := Builtin().Palettes
	out := make([]domain.Palette, len(src))
	for i, p := range src {
		out[i] = p.Clone()
	}
	return out
}

// Placeholder returns the built-in placeholder document with relative
// timestamps expanded against now.
func Placeholder(now time.Time) domain.Document {
	data, err := files.ReadFile("data/placeholder.yaml")
	if err != nil {
		panic(fmt.Sprintf("catalog: missing placeholder: %v", err))
	}
	doc, err := ParsePlaceholder(data, now)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded placeholder is invalid: %v", err))
	}
	return doc
}

// LoadPlaceholder reads a placeholder document from a YAML file.
func LoadPlaceholder(path string, now time.Time) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to read placeholder file: %w", err)
	}
	return ParsePlaceholder(data, now)
}

// ParsePlaceholder decodes a YAML document. Missing palettes are filled
// with the built-in ones and custom colors are always allocated.
func ParsePlaceholder(data []byte, now time.Time) (domain.Document, error) {
	data = expandTimeVariables(data, now)

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Document{}, fmt.Errorf("failed to parse placeholder yaml: %w", err)
	}

	var doc domain.Document
	if err := viaJSON(raw, &doc); err != nil {
		return domain.Document{}, err
	}
	if len(doc.Palettes) == 0 {
		doc.Palettes = Palettes()
	}
	if doc.LinkGroups == nil {
		doc.LinkGroups = []domain.LinkGroup{}
	}
	for i := range doc.LinkGroups {
		if doc.LinkGroups[i].Links == nil {
			doc.LinkGroups[i].Links = []domain.Link{}
		}
	}
	if doc.Socials == nil {
		doc.Socials = []domain.SocialLink{}
	}
	doc.Customization.CustomColors = doc.Customization.CustomColors.Ensure()
	return doc, nil
}

var timeVariable = regexp.MustCompile(`\{\{\s*NOW(?:\+([0-9a-z.]+))?\s*\}\}`)

// expandTimeVariables replaces {{NOW}} and {{NOW+<duration>}} with RFC 3339
// instants. Unparseable durations expand to now.
// Example: {{NOW+5m}} -> 2025-08-11T18:47:00Z
func expandTimeVariables(data []byte, now time.Time) []byte {
	return timeVariable.ReplaceAllFunc(data, func(match []byte) []byte {
		at := now
		if sub := timeVariable.FindSubmatch(match); len(sub) > 1 && len(sub[1]) > 0 {
			if d, err := time.ParseDuration(string(sub[1])); err == nil {
				at = now.Add(d)
			}
		}
		return []byte(at.UTC().Format(time.RFC3339))
	})
}

func viaJSON(src any, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode yaml value: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode yaml value: %w", err)
	}
	return nil
}
