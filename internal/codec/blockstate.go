// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"sort"
	"strings"
)

// parseBlockState splits "minecraft:oak_stairs[facing=north,half=bottom]"
// into its block name and properties. A state without brackets has no
// properties.
func parseBlockState(s string) (string, map[string]string, error) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		return s, nil, nil
	}
	if !strings.HasSuffix(s, "]") || open == 0 {
		return "", nil, malformed("block state %q", s)
	}
	name := s[:open]
	body := s[open+1 : len(s)-1]
	if body == "" {
		return name, nil, nil
	}
	props := make(map[string]string)
	for _, kv := range strings.Split(body, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return "", nil, malformed("block state %q: property %q", s, kv)
		}
		props[k] = v
	}
	return name, props, nil
}

// formatBlockState is the inverse of parseBlockState. Properties are written
// in key order so equal states always produce equal strings.
func formatBlockState(name string, props map[string]string) string {
	if len(props) == 0 {
		return name
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(props[k])
	}
	b.WriteByte(']')
	return b.String()
}
