package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ImageList is an ordered list of image URIs; the first entry is the primary image.
//
// Older clients sent the list as a single string ("[a.png, b.png]" or
// "a.png,b.png"). Those values are migrated to a proper list while decoding so
// nothing downstream ever sees the string form.
type ImageList []string

func (l *ImageList) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	switch trimmed[0] {
	case '[':
		var urls []string
		if err := json.Unmarshal(trimmed, &urls); err != nil {
			return err
		}
		*l = NormalizeImages(urls)
		return nil
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*l = ParseLegacyImages(raw)
		return nil
	default:
		return errors.New("images must be a list of URLs")
	}
}

// Primary returns the first image or an empty string.
func (l ImageList) Primary() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// ParseLegacyImages splits a string-encoded image list.
func ParseLegacyImages(raw string) ImageList {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if strings.TrimSpace(raw) == "" {
		return ImageList{}
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(p), `"'`)
	}
	return NormalizeImages(parts)
}

// NormalizeImages trims entries and drops blanks, keeping order and duplicates out.
func NormalizeImages(urls []string) ImageList {
	return ImageList(NormalizeSet(urls))
}

// NormalizeSet trims values, drops blanks and removes duplicates while keeping
// first-seen order. A nil input yields an empty, non-nil slice.
func NormalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
