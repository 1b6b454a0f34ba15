package validate

import (
	"strings"

	"github.com/scriptmeta/scriptmeta"
)

// CheckRequiredSections reports, for each required name, whether any parsed
// section carries that title. Comparison is case-insensitive on trimmed
// titles; duplicate section titles and the order of required names do not
// matter. The result map is keyed by the required names as given.
func CheckRequiredSections(sections []scriptmeta.Section, required []string) map[string]bool {
	present := make(map[string]bool, len(required))
	for _, name := range required {
		present[name] = findSection(sections, name) != nil
	}
	return present
}

// findSection returns the first section whose trimmed title matches name
// case-insensitively, or nil.
func findSection(sections []scriptmeta.Section, name string) *scriptmeta.Section {
	key := normalizeTitle(name)
	for i := range sections {
		if normalizeTitle(sections[i].Title) == key {
			return &sections[i]
		}
	}
	return nil
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
