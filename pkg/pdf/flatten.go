package pdf

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FlatSection turns a decoded JSON value into one section of key/value lines.
// Object keys are sorted so identical documents always produce identical
// layout; nested values are re-encoded compactly on a single line.
func FlatSection(doc any) Section {
	switch v := doc.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %s", k, formatValue(v[k])))
		}
		return Section{Lines: lines}
	case []any:
		lines := make([]string, 0, len(v))
		for i, item := range v {
			lines = append(lines, fmt.Sprintf("%d: %s", i, formatValue(item)))
		}
		return Section{Lines: lines}
	default:
		return Section{Lines: []string{formatValue(doc)}}
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	case map[string]any, []any:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", val)
	}
}
