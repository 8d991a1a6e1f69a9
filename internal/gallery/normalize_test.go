package gallery

import (
	"encoding/json"
	"testing"
)

// decode mimics the boundary: responses arrive as decoded JSON.
func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestNormalize_TopLevelArray(t *testing.T) {
	got := Normalize(decode(t, `[{"id":"a","url":"u1"},{"id":"b","url":"u2"}]`))
	if len(got) != 2 || got[0].ID != "a" || got[1].URL != "u2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestNormalize_WrapperShapes(t *testing.T) {
	fixtures := []string{
		`{"items":[{"id":"a","url":"u1"}]}`,
		`{"data":[{"id":"a","url":"u1"}]}`,
		`{"result":[{"id":"a","url":"u1"}]}`,
		`{"data":{"items":[{"id":"a","url":"u1"}]}}`,
	}
	for _, f := range fixtures {
		got := Normalize(decode(t, f))
		if len(got) != 1 || got[0].ID != "a" || got[0].URL != "u1" {
			t.Fatalf("fixture %s: unexpected result %+v", f, got)
		}
	}
}

func TestNormalize_SingleObjectWrapped(t *testing.T) {
	got := Normalize(decode(t, `{"asset_id":"a7","publicUrl":"http://cdn/a7.jpg"}`))
	if len(got) != 1 || got[0].ID != "a7" || got[0].URL != "http://cdn/a7.jpg" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestNormalize_KeyAliases(t *testing.T) {
	got := Normalize(decode(t, `[
		{"file_id":"f1","cdn_url":"c1","original_name":"house.jpg"},
		{"assetId":"f2","public_url":"c2","filename":"plan.png"}
	]`))
	if len(got) != 2 {
		t.Fatalf("unexpected count: %+v", got)
	}
	if got[0].ID != "f1" || got[0].URL != "c1" || got[0].Name != "house.jpg" {
		t.Fatalf("alias extraction failed: %+v", got[0])
	}
	if got[1].ID != "f2" || got[1].URL != "c2" || got[1].Name != "plan.png" {
		t.Fatalf("alias extraction failed: %+v", got[1])
	}
}

func TestNormalize_DeduplicatesByIdentity(t *testing.T) {
	got := Normalize(decode(t, `{"items":[{"id":"a","url":"u1"},{"asset_id":"a","publicUrl":"u1"}]}`))
	if len(got) != 1 {
		t.Fatalf("expected one deduplicated entry, got %+v", got)
	}
	if got[0].ID != "a" || got[0].URL != "u1" {
		t.Fatalf("unexpected entry: %+v", got[0])
	}
}

func TestNormalize_PartialEntries(t *testing.T) {
	got := Normalize(decode(t, `[{"url":"u-only"},{"id":"id-only"}]`))
	if len(got) != 2 {
		t.Fatalf("partial entries must survive: %+v", got)
	}
	if got[0].ID != "" || got[0].URL != "u-only" {
		t.Fatalf("unexpected url-only entry: %+v", got[0])
	}
	if got[1].ID != "id-only" || got[1].URL != "" {
		t.Fatalf("unexpected id-only entry: %+v", got[1])
	}
}

func TestNormalize_FlattensOneLevelAndDropsJunk(t *testing.T) {
	got := Normalize(decode(t, `[[{"id":"a","url":"u1"}],null,{},"noise",42,{"id":"b","url":"u2"}]`))
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestNormalize_NumericIDs(t *testing.T) {
	got := Normalize(decode(t, `[{"id":7,"url":"u"}]`))
	if len(got) != 1 || got[0].ID != "7" {
		t.Fatalf("numeric id not rendered: %+v", got)
	}
}

func TestNormalize_MalformedNeverPanics(t *testing.T) {
	for _, raw := range []any{nil, "garbage", 12.5, true, []any{nil, nil}, map[string]any{"items": "nope"}} {
		if got := Normalize(raw); len(got) != 0 {
			t.Fatalf("input %v: expected empty result, got %+v", raw, got)
		}
	}
}

func TestAltFromName(t *testing.T) {
	cases := map[string]string{
		"living-room.jpg": "living-room",
		"photo.final.png": "photo.final",
		".hidden":         ".hidden",
		"noext":           "noext",
		"  padded.gif ":   "padded",
		"":                "",
	}
	for in, want := range cases {
		if got := AltFromName(in); got != want {
			t.Fatalf("AltFromName(%q) = %q, want %q", in, got, want)
		}
	}
}
