package signals

import (
	"encoding/json"
	"strings"
)

// collectJSONLDTypes walks one JSON-LD script payload and collects every
// schema.org @type value: top-level objects, top-level arrays and @graph
// nodes. Malformed JSON is swallowed silently so one broken block never
// spoils structured-data detection for the rest of the page.
func collectJSONLDTypes(payload string, seen map[string]struct{}, types *[]string) {
	var data any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return
	}
	collectTypesFromValue(data, seen, types)
}

func collectTypesFromValue(v any, seen map[string]struct{}, types *[]string) {
	switch node := v.(type) {
	case []any:
		for _, entry := range node {
			collectTypesFromValue(entry, seen, types)
		}
	case map[string]any:
		appendTypeField(node["@type"], seen, types)
		appendTypeField(node["type"], seen, types)
		if graph, ok := node["@graph"].([]any); ok {
			for _, entry := range graph {
				collectTypesFromValue(entry, seen, types)
			}
		}
	}
}

// appendTypeField handles both scalar and array @type values.
func appendTypeField(v any, seen map[string]struct{}, types *[]string) {
	switch t := v.(type) {
	case string:
		addType(t, seen, types)
	case []any:
		for _, entry := range t {
			if s, ok := entry.(string); ok {
				addType(s, seen, types)
			}
		}
	}
}

func addType(t string, seen map[string]struct{}, types *[]string) {
	t = strings.TrimSpace(t)
	if t == "" {
		return
	}
	if _, ok := seen[t]; ok {
		return
	}
	seen[t] = struct{}{}
	*types = append(*types, t)
}
