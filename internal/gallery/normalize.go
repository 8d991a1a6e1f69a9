package gallery

import (
	"strconv"
	"strings"
)

// Upload is the canonical form of one upload-service result. Empty ID or URL
// means the service did not report it; callers handle partial results.
type Upload struct {
	ID   string
	URL  string
	Name string
}

/********** alias registries (single source of truth) **********/

var uploadAliases = map[string][]string{
	"id":   {"id", "asset_id", "assetId", "file_id"},
	"url":  {"url", "publicUrl", "public_url", "cdn_url"},
	"name": {"name", "file_name", "filename", "original_name"},
}

// Normalize turns an arbitrary upload-service response into a deduplicated
// list of Uploads. It never fails on malformed input; the worst case is an
// empty or partial list.
//
// Accepted shapes, tried in order: a top-level array; the array under
// "items"; the array nested one level under "data" or "result" (directly or
// under their own "items"); a single bare object, wrapped.
func Normalize(raw any) []Upload {
	entries := extractEntries(raw)

	out := make([]Upload, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok || len(m) == 0 {
			continue
		}
		u := Upload{
			ID:   firstAlias(m, "id"),
			URL:  firstAlias(m, "url"),
			Name: firstAlias(m, "name"),
		}
		if u.ID == "" && u.URL == "" {
			continue
		}
		key := u.ID + "|" + u.URL
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, u)
	}
	return out
}

// extractEntries applies the ordered extractor list; first match wins.
func extractEntries(raw any) []any {
	if arr, ok := raw.([]any); ok {
		return flattenOnce(arr)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range []string{"items", "data", "result"} {
		v, present := m[key]
		if !present {
			continue
		}
		if arr, ok := v.([]any); ok {
			return flattenOnce(arr)
		}
		if inner, ok := v.(map[string]any); ok {
			if arr, ok := inner["items"].([]any); ok {
				return flattenOnce(arr)
			}
			return []any{inner}
		}
	}
	// single bare object
	return []any{m}
}

// flattenOnce flattens one level of nested arrays and drops nil entries.
func flattenOnce(in []any) []any {
	out := make([]any, 0, len(in))
	for _, v := range in {
		switch t := v.(type) {
		case nil:
			continue
		case []any:
			for _, inner := range t {
				if inner != nil {
					out = append(out, inner)
				}
			}
		default:
			out = append(out, v)
		}
	}
	return out
}

// firstAlias: first non-empty string-ish value for a named alias set.
// Numeric ids from JSON arrive as float64 and are rendered back.
func firstAlias(m map[string]any, key string) string {
	for _, k := range uploadAliases[key] {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10)
			}
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// AltFromName strips the extension off an upload filename for use as default
// alt text. Empty in, empty out.
func AltFromName(name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		return ""
	}
	if i := strings.LastIndexByte(n, '.'); i > 0 {
		n = n[:i]
	}
	return n
}
