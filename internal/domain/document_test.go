package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleDocument() Document {
	return Document{
		Profile: Profile{Name: "Ada", Handle: "@ada"},
		LinkGroups: []LinkGroup{
			{ID: "g1", Title: "Main", Links: []Link{
				{ID: "l1", Title: "Site", URL: "https://ada.dev"},
				{ID: "l2", Title: "Blog", URL: "https://ada.dev/blog", Style: LinkStyleOutline},
			}},
			{ID: "g2", Title: "Other", Links: []Link{{ID: "l3", Title: "Shop", URL: "https://shop.example"}}},
		},
		Socials: []SocialLink{{ID: "s1", Platform: "GitHub", URL: "https://github.com/ada"}},
		Palettes: []Palette{
			{ID: DefaultPaletteID, Name: "Default",
				Light: ColorSet{"--background-color": "#fff", "--text-primary": "#111"},
				Dark:  ColorSet{"--background-color": "#000", "--text-primary": "#eee"}},
			{ID: "ocean", Name: "Ocean",
				Light: ColorSet{"--background-color": "#e0f7fa"},
				Dark:  ColorSet{"--background-color": "#003344"}},
		},
		Customization: Customization{
			Theme:     ThemeLight,
			PaletteID: DefaultPaletteID,
			CustomColors: CustomColors{
				Light: ColorSet{"--text-primary": "#ff0000"},
				Dark:  ColorSet{},
			},
		},
	}
}

func TestLookups(t *testing.T) {
	doc := sampleDocument()

	if got := doc.GroupIndex("g2"); got != 1 {
		t.Errorf("GroupIndex(g2) = %d", got)
	}
	if got := doc.GroupIndex("nope"); got != -1 {
		t.Errorf("GroupIndex(nope) = %d", got)
	}
	if g, l := doc.LinkIndex("l3"); g != 1 || l != 0 {
		t.Errorf("LinkIndex(l3) = %d, %d", g, l)
	}
	if g, l := doc.LinkIndex("nope"); g != -1 || l != -1 {
		t.Errorf("LinkIndex(nope) = %d, %d", g, l)
	}
	if got := doc.SocialIndex("s1"); got != 0 {
		t.Errorf("SocialIndex(s1) = %d", got)
	}
	if got := doc.PaletteIndex("ocean"); got != 1 {
		t.Errorf("PaletteIndex(ocean) = %d", got)
	}

	var ids []string
	for _, l := range doc.AllLinks() {
		ids = append(ids, l.ID)
	}
	if strings.Join(ids, ",") != "l1,l2,l3" {
		t.Errorf("AllLinks order = %v", ids)
	}
}

func TestActiveColors(t *testing.T) {
	tests := []struct {
		name      string
		theme     ThemeMode
		paletteID string
		wantBg    string
		wantText  string
	}{
		{name: "default light", theme: ThemeLight, paletteID: DefaultPaletteID, wantBg: "#fff", wantText: "#111"},
		{name: "default dark", theme: ThemeDark, paletteID: DefaultPaletteID, wantBg: "#000", wantText: "#eee"},
		{name: "palette layered over default", theme: ThemeLight, paletteID: "ocean", wantBg: "#e0f7fa", wantText: "#111"},
		{name: "custom overrides", theme: ThemeLight, paletteID: CustomPaletteID, wantBg: "#fff", wantText: "#ff0000"},
		{name: "empty custom mode falls back", theme: ThemeDark, paletteID: CustomPaletteID, wantBg: "#000", wantText: "#eee"},
		{name: "unknown palette falls back", theme: ThemeLight, paletteID: "gone", wantBg: "#fff", wantText: "#111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			doc.Customization.Theme = tt.theme
			doc.Customization.PaletteID = tt.paletteID

			got := doc.ActiveColors()
			if got["--background-color"] != tt.wantBg || got["--text-primary"] != tt.wantText {
				t.Errorf("ActiveColors() = %v", got)
			}
		})
	}
}

func TestActiveColorsDoesNotAlias(t *testing.T) {
	doc := sampleDocument()
	colors := doc.ActiveColors()
	colors["--background-color"] = "changed"
	if doc.Palettes[0].Light["--background-color"] != "#fff" {
		t.Error("mutating the resolved colors changed the palette")
	}
}

func TestActiveCountdown(t *testing.T) {
	now := time.Date(2025, 8, 11, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour).Format(time.RFC3339)
	past := now.Add(-time.Hour).Format(time.RFC3339)

	tests := []struct {
		name string
		link Link
		want bool
	}{
		{name: "enabled future", link: Link{IsCountdownEnabled: true, CountdownTitle: "Launch", CountdownEndDate: future}, want: true},
		{name: "disabled", link: Link{CountdownTitle: "Launch", CountdownEndDate: future}},
		{name: "expired", link: Link{IsCountdownEnabled: true, CountdownEndDate: past}},
		{name: "unparsable", link: Link{IsCountdownEnabled: true, CountdownEndDate: "next week"}},
		{name: "no end date", link: Link{IsCountdownEnabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd, ok := tt.link.ActiveCountdown(now)
			if ok != tt.want {
				t.Fatalf("ActiveCountdown() ok = %v, want %v", ok, tt.want)
			}
			if ok && (cd.Title != "Launch" || !cd.EndsAt.After(now)) {
				t.Errorf("countdown = %+v", cd)
			}
		})
	}
}

func TestEffectiveStyle(t *testing.T) {
	if got := (Link{}).EffectiveStyle(); got != LinkStyleFill {
		t.Errorf("empty style = %q", got)
	}
	if got := (Link{Style: LinkStyleOutline}).EffectiveStyle(); got != LinkStyleOutline {
		t.Errorf("outline style = %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := sampleDocument()
	doc.LinkGroups[0].Links[0].Extra = Extra{"pinned": json.RawMessage(`true`)}

	cp := doc.Clone()
	cp.Profile.Name = "Changed"
	cp.LinkGroups[0].Title = "Changed"
	cp.LinkGroups[0].Links[0].Title = "Changed"
	cp.LinkGroups[0].Links[0].Extra["pinned"][0] = 'X'
	cp.Socials[0].URL = "Changed"
	cp.Palettes[0].Light["--background-color"] = "Changed"
	cp.Customization.CustomColors.Light["--text-primary"] = "Changed"

	switch {
	case doc.Profile.Name != "Ada":
		t.Error("profile shared")
	case doc.LinkGroups[0].Title != "Main":
		t.Error("group shared")
	case doc.LinkGroups[0].Links[0].Title != "Site":
		t.Error("link shared")
	case string(doc.LinkGroups[0].Links[0].Extra["pinned"]) != "true":
		t.Error("extra shared")
	case doc.Socials[0].URL != "https://github.com/ada":
		t.Error("social shared")
	case doc.Palettes[0].Light["--background-color"] != "#fff":
		t.Error("palette colors shared")
	case doc.Customization.CustomColors.Light["--text-primary"] != "#ff0000":
		t.Error("custom colors shared")
	}
}

func TestPatches(t *testing.T) {
	p := Profile{Name: "Ada", Handle: "@ada", Bio: "hi"}
	ProfilePatch{Bio: Ptr("")}.Apply(&p)
	if p.Bio != "" || p.Name != "Ada" {
		t.Errorf("profile = %+v", p)
	}

	l := Link{ID: "l1", Title: "Site", URL: "https://a"}
	LinkPatch{URL: Ptr("https://b"), IsCountdownEnabled: Ptr(true)}.Apply(&l)
	if l.ID != "l1" || l.Title != "Site" || l.URL != "https://b" || !l.IsCountdownEnabled {
		t.Errorf("link = %+v", l)
	}

	c := Customization{Theme: ThemeLight, PaletteID: "default"}
	cp := CustomizationPatch{Theme: Ptr(ThemeDark)}
	if !cp.ThemeOnly() {
		t.Error("theme patch not reported as theme only")
	}
	cp.Apply(&c)
	if c.Theme != ThemeDark || c.PaletteID != "default" {
		t.Errorf("customization = %+v", c)
	}
	if (CustomizationPatch{Theme: Ptr(ThemeDark), FontID: Ptr("mono")}).ThemeOnly() {
		t.Error("font change reported as theme only")
	}

	pal := Palette{ID: "x", Name: "X", Light: ColorSet{"a": "1"}, Dark: ColorSet{"a": "2"}}
	light := ColorSet{"a": "3"}
	PalettePatch{Light: light}.Apply(&pal)
	light["a"] = "mutated"
	if pal.Light["a"] != "3" || pal.Dark["a"] != "2" || pal.Name != "X" {
		t.Errorf("palette = %+v", pal)
	}

	g := LinkGroup{ID: "g", Title: "Old"}
	GroupPatch{Title: Ptr("New")}.Apply(&g)
	if g.Title != "New" {
		t.Errorf("group = %+v", g)
	}
}

func TestLinkDraftWithID(t *testing.T) {
	l := LinkDraft{Title: "T", URL: "https://t"}.WithID("id-1")
	if l.ID != "id-1" || l.Style != LinkStyleFill || l.Title != "T" {
		t.Errorf("link = %+v", l)
	}
}

func TestSocialField(t *testing.T) {
	s := SocialLink{ID: "s", Platform: "X", URL: "u"}
	SocialPlatform.Set(&s, "GitHub")
	SocialURL.Set(&s, "https://github.com")
	if s.Platform != "GitHub" || s.URL != "https://github.com" || s.ID != "s" {
		t.Errorf("social = %+v", s)
	}
	if SocialField("id").Valid() {
		t.Error("id must not be a settable social field")
	}
}

func TestDirection(t *testing.T) {
	if Up.Offset() != -1 || Down.Offset() != 1 {
		t.Errorf("offsets = %d, %d", Up.Offset(), Down.Offset())
	}
	if Direction("left").Valid() {
		t.Error("left accepted as a direction")
	}
}

func TestColorSetMergeAndMissing(t *testing.T) {
	base := ColorSet{"--background-color": "#fff", "--text-primary": "#000"}
	merged := base.Merge(ColorSet{"--text-primary": "#f00", "--background-color": ""})
	if merged["--text-primary"] != "#f00" || merged["--background-color"] != "#fff" {
		t.Errorf("merged = %v", merged)
	}
	if base["--text-primary"] != "#000" {
		t.Error("Merge mutated the receiver")
	}

	missing := base.Missing()
	if len(missing) != len(ColorKeys)-2 {
		t.Errorf("missing = %v", missing)
	}
}

func TestJSONPreservesUnknownAttributes(t *testing.T) {
	in := `{
		"profile": {"name": "Ada", "handle": "@ada", "avatarUrl": "", "bio": "", "pronouns": "she/her"},
		"linkGroups": [{"id": "g1", "title": "Main", "collapsed": true,
			"links": [{"id": "l1", "title": "Site", "url": "https://ada.dev", "pinned": true}]}],
		"socials": [],
		"palettes": [],
		"customization": {"theme": "dark", "paletteId": "default", "customPaletteName": "", "fontId": "", "customColors": {"light": {}, "dark": {}}, "radius": 8},
		"version": 3
	}`

	var doc Document
	if err := json.Unmarshal([]byte(in), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Customization.Theme != ThemeDark || doc.LinkGroups[0].Links[0].URL != "https://ada.dev" {
		t.Fatalf("known fields lost: %+v", doc)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if back["version"] != float64(3) {
		t.Errorf("document extra lost: %v", back["version"])
	}
	if back["profile"].(map[string]any)["pronouns"] != "she/her" {
		t.Error("profile extra lost")
	}
	group := back["linkGroups"].([]any)[0].(map[string]any)
	if group["collapsed"] != true {
		t.Error("group extra lost")
	}
	if group["links"].([]any)[0].(map[string]any)["pinned"] != true {
		t.Error("link extra lost")
	}
	if back["customization"].(map[string]any)["radius"] != float64(8) {
		t.Error("customization extra lost")
	}
}

func TestJSONKnownFieldsWinOverExtra(t *testing.T) {
	l := Link{ID: "l1", Title: "Real", Extra: Extra{"title": json.RawMessage(`"Shadow"`)}}
	out, err := json.Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"title":"Real"`) || strings.Contains(string(out), "Shadow") {
		t.Errorf("json = %s", out)
	}
}

func TestJSONEmptyCollections(t *testing.T) {
	out, err := json.Marshal(Document{})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"linkGroups":[]`, `"socials":[]`, `"palettes":[]`, `"customColors":{"light":{},"dark":{}}`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("json %s missing %s", out, want)
		}
	}
}

func TestExportFileName(t *testing.T) {
	if got := ExportFileName("ada"); got != "bio_backup_ada.json" {
		t.Errorf("ExportFileName = %q", got)
	}
}
