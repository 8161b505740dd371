package normalize

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"

	"streamflixtv/models"
)

// SearchKey reduces s to folded ASCII so "Phim Bộ" and "phim bo" compare equal.
func SearchKey(s string) string {
	ascii := unidecode.Unidecode(strings.TrimSpace(s))
	return strings.Join(strings.Fields(cases.Fold().String(ascii)), " ")
}

// SearchKeys returns the keys a movie can be matched by: its display title,
// name, original titles and slug.
func SearchKeys(m models.Movie) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, v := range []string{DisplayTitle(m), m.Name, m.OriginName, m.OriginalTitle, strings.ReplaceAll(m.Slug, "-", " ")} {
		k := SearchKey(v)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
