// Package normalize converts documents between the wire shape used at rest
// (collections keyed by entity id, each entry carrying an "order" number)
// and the client shape of package domain (ordered slices).
//
// Optional link and customization attributes (style, countdown fields,
// background image, link animation) are omitted from the output when they
// hold their zero value. An explicit false or "" therefore does not
// survive a round trip, but decodes to the same document as an absent one.
package normalize

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/MrSnakeDoc/bio/internal/catalog"
	"github.com/MrSnakeDoc/bio/internal/domain"
)

var (
	// ErrMissingID is returned by ToWire when an entity of an ordered
	// collection has no id to key it by.
	ErrMissingID = errors.New("entity has no id")
	// ErrDuplicateID is returned by ToWire when two entities of the same
	// collection share an id.
	ErrDuplicateID = errors.New("duplicate entity id")
	// ErrNotObject is returned when a document is not a JSON object.
	ErrNotObject = errors.New("document is not a JSON object")
)

const orderKey = "order"

// Top-level ordered collections, and the nested one inside each group.
var collections = []string{"linkGroups", "socials", "palettes"}

const linksKey = "links"

// Wire is a document in wire shape, as a generic JSON tree.
type Wire map[string]any

// Decode parses a JSON object into a generic tree. Numbers are kept as
// json.Number so unknown attributes survive unchanged.
func Decode(data []byte) (Wire, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Wire(m), nil
}

// DecodeDocument parses a document in either shape into the client shape.
func DecodeDocument(data []byte) (domain.Document, error) {
	w, err := Decode(data)
	if err != nil {
		return domain.Document{}, err
	}
	return ToClient(w)
}

// ToClient converts a wire document into the client shape.
//
// Map-shaped collections become slices sorted by their "order" attribute
// (missing order counts as 0, ties are broken by id). Slice-shaped
// collections pass through in their given order. Absent collections become
// empty slices. The "order" attribute is stripped everywhere. The result
// always carries both custom color maps and a default palette.
func ToClient(w Wire) (domain.Document, error) {
	tree := make(map[string]any, len(w))
	for k, v := range w {
		tree[k] = v
	}

	for _, key := range collections {
		items := toSlice(tree[key])
		if key == "linkGroups" {
			for _, item := range items {
				if group, ok := item.(map[string]any); ok {
					group[linksKey] = toSlice(group[linksKey])
				}
			}
		}
		tree[key] = items
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to encode client document: %w", err)
	}
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("failed to decode client document: %w", err)
	}

	complete(&doc)
	return doc, nil
}

// ToWire converts a client document into the wire shape. Each entity of an
// ordered collection is keyed by its id and given an "order" equal to its
// position.
func ToWire(doc domain.Document) (Wire, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	w, err := Decode(data)
	if err != nil {
		return nil, err
	}

	for _, key := range collections {
		items, _ := w[key].([]any)
		if key == "linkGroups" {
			for i, item := range items {
				group, ok := item.(map[string]any)
				if !ok {
					continue
				}
				links, _ := group[linksKey].([]any)
				keyed, err := toMap(links)
				if err != nil {
					return nil, fmt.Errorf("linkGroups[%d].links: %w", i, err)
				}
				group[linksKey] = keyed
			}
		}
		keyed, err := toMap(items)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		w[key] = keyed
	}
	return w, nil
}

// EnsureDefaultPalette returns palettes with the built-in default palette
// appended when none carries the reserved default id.
func EnsureDefaultPalette(palettes []domain.Palette) []domain.Palette {
	for _, p := range palettes {
		if p.ID == domain.DefaultPaletteID {
			return palettes
		}
	}
	return append(palettes, catalog.DefaultPalette())
}

func complete(doc *domain.Document) {
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
	doc.Palettes = EnsureDefaultPalette(doc.Palettes)
	doc.Customization.CustomColors = doc.Customization.CustomColors.Ensure()
}

type entry struct {
	key   string
	order float64
	value any
}

// toSlice turns a collection in either shape into a slice with the order
// attribute removed from every entry.
func toSlice(v any) []any {
	switch c := v.(type) {
	case []any:
		out := make([]any, len(c))
		for i, item := range c {
			out[i] = stripOrder(item)
		}
		return out
	case map[string]any:
		entries := make([]entry, 0, len(c))
		for k, item := range c {
			entries = append(entries, entry{key: k, order: orderOf(item), value: item})
		}
		slices.SortFunc(entries, func(a, b entry) int {
			if n := cmp.Compare(a.order, b.order); n != 0 {
				return n
			}
			return cmp.Compare(a.key, b.key)
		})
		out := make([]any, len(entries))
		for i, e := range entries {
			out[i] = withID(stripOrder(e.value), e.key)
		}
		return out
	default:
		return []any{}
	}
}

// toMap keys a slice of entities by id, recording positions as order.
func toMap(items []any) (map[string]any, error) {
	out := make(map[string]any, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNotObject)
		}
		id, _ := obj["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrMissingID)
		}
		if _, dup := out[id]; dup {
			return nil, fmt.Errorf("entry %d (%s): %w", i, id, ErrDuplicateID)
		}
		obj[orderKey] = json.Number(strconv.Itoa(i))
		out[id] = obj
	}
	return out, nil
}

// stripOrder returns a shallow copy of an entity without its order.
func stripOrder(item any) any {
	obj, ok := item.(map[string]any)
	if !ok {
		return item
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if k != orderKey {
			out[k] = v
		}
	}
	return out
}

// withID fills in the id from the map key for entries stored without one.
func withID(item any, key string) any {
	obj, ok := item.(map[string]any)
	if !ok {
		return item
	}
	if id, _ := obj["id"].(string); id == "" {
		obj["id"] = key
	}
	return obj
}

func orderOf(item any) float64 {
	obj, ok := item.(map[string]any)
	if !ok {
		return 0
	}
	switch o := obj[orderKey].(type) {
	case json.Number:
		f, err := o.Float64()
		if err != nil {
			return 0
		}
		return f
	case float64:
		if math.IsNaN(o) {
			return 0
		}
		return o
	case int:
		return float64(o)
	case int64:
		return float64(o)
	default:
		return 0
	}
}
