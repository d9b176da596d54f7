package normalize

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/MrSnakeDoc/bio/internal/catalog"
	"github.com/MrSnakeDoc/bio/internal/domain"
)

func mustDecode(t *testing.T, raw string) Wire {
	t.Helper()
	w, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return w
}

func groupIDs(doc domain.Document) []string {
	ids := make([]string, len(doc.LinkGroups))
	for i, g := range doc.LinkGroups {
		ids[i] = g.ID
	}
	return ids
}

func linkIDs(g domain.LinkGroup) []string {
	ids := make([]string, len(g.Links))
	for i, l := range g.Links {
		ids[i] = l.ID
	}
	return ids
}

func TestToClientSortsByOrder(t *testing.T) {
	w := mustDecode(t, `{
		"profile": {"name": "Sam"},
		"linkGroups": {
			"g2": {"id": "g2", "title": "Second", "order": 1, "links": {}},
			"g1": {"id": "g1", "title": "First", "order": 0, "links": {
				"b": {"id": "b", "title": "B", "url": "#", "order": 1},
				"a": {"id": "a", "title": "A", "url": "#", "order": 0}
			}}
		},
		"socials": {
			"s2": {"id": "s2", "platform": "X", "url": "#", "order": 2},
			"s1": {"id": "s1", "platform": "Y", "url": "#", "order": 1}
		}
	}`)

	doc, err := ToClient(w)
	if err != nil {
		t.Fatalf("ToClient() error = %v", err)
	}

	if got := groupIDs(doc); !reflect.DeepEqual(got, []string{"g1", "g2"}) {
		t.Errorf("group order = %v, want [g1 g2]", got)
	}
	if got := linkIDs(doc.LinkGroups[0]); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("link order = %v, want [a b]", got)
	}
	if doc.LinkGroups[1].Links == nil {
		t.Error("empty group links must be an empty slice, not nil")
	}
	if doc.Socials[0].ID != "s1" || doc.Socials[1].ID != "s2" {
		t.Errorf("socials order = %v", doc.Socials)
	}
	if _, has := doc.LinkGroups[0].Extra["order"]; has {
		t.Error("order must be stripped from client shape")
	}
}

func TestToClientTieBreaksByID(t *testing.T) {
	w := mustDecode(t, `{
		"socials": {
			"c": {"id": "c", "platform": "C"},
			"a": {"id": "a", "platform": "A"},
			"b": {"id": "b", "platform": "B", "order": 0}
		}
	}`)

	for i := 0; i < 10; i++ {
		doc, err := ToClient(w)
		if err != nil {
			t.Fatalf("ToClient() error = %v", err)
		}
		got := []string{doc.Socials[0].ID, doc.Socials[1].ID, doc.Socials[2].ID}
		if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
			t.Fatalf("tie order = %v, want [a b c]", got)
		}
	}
}

func TestToClientArraysPassThrough(t *testing.T) {
	w := mustDecode(t, `{
		"linkGroups": [
			{"id": "z", "title": "Z", "links": [{"id": "2"}, {"id": "1"}]},
			{"id": "a", "title": "A"}
		]
	}`)

	doc, err := ToClient(w)
	if err != nil {
		t.Fatalf("ToClient() error = %v", err)
	}
	if got := groupIDs(doc); !reflect.DeepEqual(got, []string{"z", "a"}) {
		t.Errorf("group order = %v, want [z a]", got)
	}
	if got := linkIDs(doc.LinkGroups[0]); !reflect.DeepEqual(got, []string{"2", "1"}) {
		t.Errorf("link order = %v, want [2 1]", got)
	}
}

func TestToClientFillsMissingSections(t *testing.T) {
	doc, err := ToClient(mustDecode(t, `{"profile": {"name": "Sam"}}`))
	if err != nil {
		t.Fatalf("ToClient() error = %v", err)
	}

	if doc.LinkGroups == nil || doc.Socials == nil {
		t.Error("absent collections must become empty slices")
	}
	if doc.Customization.CustomColors.Light == nil || doc.Customization.CustomColors.Dark == nil {
		t.Error("custom colors must always be allocated")
	}
}

func TestDefaultPaletteInvariance(t *testing.T) {
	w := mustDecode(t, `{
		"palettes": {
			"mine": {"id": "mine", "name": "Mine", "light": {}, "dark": {}, "order": 0}
		}
	}`)

	doc, err := ToClient(w)
	if err != nil {
		t.Fatalf("ToClient() error = %v", err)
	}
	i := doc.PaletteIndex(domain.DefaultPaletteID)
	if i < 0 {
		t.Fatal("normalized palettes lack the default entry")
	}
	if want := catalog.DefaultPalette(); !reflect.DeepEqual(doc.Palettes[i], want) {
		t.Errorf("default palette = %+v, want built-in %+v", doc.Palettes[i], want)
	}
	if doc.Palettes[0].ID != "mine" {
		t.Errorf("existing palette moved: %v", doc.Palettes[0].ID)
	}
}

func TestEnsureDefaultPaletteKeepsExisting(t *testing.T) {
	in := []domain.Palette{{ID: domain.DefaultPaletteID, Name: "Mine"}}
	out := EnsureDefaultPalette(in)
	if len(out) != 1 || out[0].Name != "Mine" {
		t.Errorf("EnsureDefaultPalette() = %+v, want the input unchanged", out)
	}
}

func TestToWireKeysByIDWithOrder(t *testing.T) {
	doc := domain.Document{
		LinkGroups: []domain.LinkGroup{
			{ID: "g1", Title: "One", Links: []domain.Link{{ID: "a"}, {ID: "b"}}},
			{ID: "g2", Title: "Two"},
		},
		Socials: []domain.SocialLink{{ID: "s1"}},
	}

	w, err := ToWire(doc)
	if err != nil {
		t.Fatalf("ToWire() error = %v", err)
	}

	groups, ok := w["linkGroups"].(map[string]any)
	if !ok {
		t.Fatalf("linkGroups is %T, want map", w["linkGroups"])
	}
	g2 := groups["g2"].(map[string]any)
	if g2["order"] != json.Number("1") {
		t.Errorf("g2 order = %v, want 1", g2["order"])
	}
	links := groups["g1"].(map[string]any)["links"].(map[string]any)
	if links["b"].(map[string]any)["order"] != json.Number("1") {
		t.Errorf("link b order = %v, want 1", links["b"])
	}
	if _, ok := w["palettes"].(map[string]any); !ok {
		t.Errorf("palettes is %T, want map", w["palettes"])
	}
}

func TestToWireErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  domain.Document
		want error
	}{
		{
			name: "missing group id",
			doc:  domain.Document{LinkGroups: []domain.LinkGroup{{Title: "x"}}},
			want: ErrMissingID,
		},
		{
			name: "missing link id",
			doc: domain.Document{LinkGroups: []domain.LinkGroup{
				{ID: "g", Links: []domain.Link{{Title: "x"}}},
			}},
			want: ErrMissingID,
		},
		{
			name: "duplicate social id",
			doc:  domain.Document{Socials: []domain.SocialLink{{ID: "s"}, {ID: "s"}}},
			want: ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToWire(tt.doc)
			if !errors.Is(err, tt.want) {
				t.Errorf("ToWire() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	doc := catalog.Placeholder(time.Date(2025, 8, 11, 18, 0, 0, 0, time.UTC))
	doc.LinkGroups[0].Links[1].Extra = domain.Extra{"clicks": json.RawMessage(`42`)}
	doc.Profile.Extra = domain.Extra{"pronouns": json.RawMessage(`"they/them"`)}
	doc.Extra = domain.Extra{"version": json.RawMessage(`2`)}

	w, err := ToWire(doc)
	if err != nil {
		t.Fatalf("ToWire() error = %v", err)
	}
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	got, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}

	want, _ := json.Marshal(doc)
	have, _ := json.Marshal(got)
	if string(want) != string(have) {
		t.Errorf("round trip changed the document\nwant %s\ngot  %s", want, have)
	}
}

func TestRoundTripWireIsStable(t *testing.T) {
	w := mustDecode(t, `{
		"profile": {"name": "Sam", "handle": "@sam", "avatarUrl": "", "bio": ""},
		"linkGroups": {
			"g1": {"id": "g1", "title": "One", "order": 0, "links": {
				"a": {"id": "a", "title": "A", "url": "#", "style": "fill", "order": 0}
			}}
		},
		"socials": {},
		"palettes": {},
		"customization": {"theme": "dark", "paletteId": "default", "customPaletteName": "Custom",
			"fontId": "font-sans", "customColors": {"light": {}, "dark": {"--accent-color": "#fff"}}}
	}`)

	doc, err := ToClient(w)
	if err != nil {
		t.Fatalf("ToClient() error = %v", err)
	}
	again, err := ToWire(doc)
	if err != nil {
		t.Fatalf("ToWire() error = %v", err)
	}

	link := again["linkGroups"].(map[string]any)["g1"].(map[string]any)["links"].(map[string]any)["a"]
	if !reflect.DeepEqual(link, w["linkGroups"].(map[string]any)["g1"].(map[string]any)["links"].(map[string]any)["a"]) {
		t.Errorf("link changed across round trip: %v", link)
	}
	dark := again["customization"].(map[string]any)["customColors"].(map[string]any)["dark"]
	if !reflect.DeepEqual(dark, map[string]any{"--accent-color": "#fff"}) {
		t.Errorf("custom colors changed across round trip: %v", dark)
	}
}

func TestZeroOptionalFieldsMatchAbsentOnes(t *testing.T) {
	explicit := `{
		"linkGroups": {"g1": {"id": "g1", "title": "One", "order": 0, "links": {
			"l1": {"id": "l1", "title": "t", "url": "u", "order": 0, "style": "",
				"isCountdownEnabled": false, "countdownTitle": "", "countdownEndDate": ""}
		}}},
		"customization": {"theme": "light", "paletteId": "default", "backgroundImageUrl": "", "linkAnimation": ""}
	}`
	absent := `{
		"linkGroups": {"g1": {"id": "g1", "title": "One", "order": 0, "links": {
			"l1": {"id": "l1", "title": "t", "url": "u", "order": 0}
		}}},
		"customization": {"theme": "light", "paletteId": "default"}
	}`

	a, err := DecodeDocument([]byte(explicit))
	if err != nil {
		t.Fatalf("DecodeDocument(explicit) error = %v", err)
	}
	b, err := DecodeDocument([]byte(absent))
	if err != nil {
		t.Fatalf("DecodeDocument(absent) error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("explicit zero values decode differently\nexplicit %+v\nabsent   %+v", a, b)
	}

	w, err := ToWire(a)
	if err != nil {
		t.Fatalf("ToWire() error = %v", err)
	}
	link := w["linkGroups"].(map[string]any)["g1"].(map[string]any)["links"].(map[string]any)["l1"].(map[string]any)
	for _, key := range []string{"style", "isCountdownEnabled", "countdownTitle", "countdownEndDate"} {
		if _, ok := link[key]; ok {
			t.Errorf("zero %s was written back", key)
		}
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	if _, err := Decode([]byte(`[1, 2]`)); !errors.Is(err, ErrNotObject) {
		t.Errorf("Decode() error = %v, want ErrNotObject", err)
	}
}
