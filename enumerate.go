// File: confstack/enumerate.go
package confstack

import (
	"sort"
	"strings"
)

// resourceSuffix is the fixed trailing segment of every default logical name.
const resourceSuffix = "configuration"

// Entry is one enumerated resource: a (profile, variant, extension) triple
// plus the logical name computed from the path template. The empty string is
// the null profile / null variant.
type Entry struct {
	Profile   string
	Variant   string
	Extension string
	Name      string
}

// PathTemplate computes a logical resource name from its coordinates.
type PathTemplate func(prefix, profile, variant, extension string) string

// DefaultPathTemplate joins the non-empty segments of
// (prefix, profile, variant, "configuration") with "-" and appends the
// extension: "app-web-local-configuration.yaml".
func DefaultPathTemplate(prefix, profile, variant, extension string) string {
	segments := make([]string, 0, 4)
	for _, s := range []string{prefix, profile, variant, resourceSuffix} {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, "-") + "." + extension
}

// Enumerate computes the ordered resource sequence for an assembly run.
// Profiles iterate in caller order with the null profile always last,
// regardless of where the caller placed it;
// variants iterate in caller order with the null variant prepended first
// (the base layer precedes overlays); a nil/empty variant list defaults to
// ["", "local"]. One entry is produced per (profile, variant, extension)
// regardless of whether a matching resource exists.
//
// Extensions are iterated in sorted order. The contract only promises an
// unordered-but-complete extension sweep per (profile, variant); sorting is
// the deterministic choice within that freedom, callers must not rely on two
// extensions of the same logical name layering in any particular order.
func Enumerate(prefix string, profiles, variants, extensions []string, tmpl PathTemplate) []Entry {
	if tmpl == nil {
		tmpl = DefaultPathTemplate
	}

	profiles = appendLast(profiles, "")
	if len(variants) == 0 {
		variants = []string{"", "local"}
	} else {
		variants = prependAbsent(variants, "")
	}

	exts := make([]string, len(extensions))
	copy(exts, extensions)
	sort.Strings(exts)

	entries := make([]Entry, 0, len(profiles)*len(variants)*len(exts))
	for _, profile := range profiles {
		for _, variant := range variants {
			for _, ext := range exts {
				entries = append(entries, Entry{
					Profile:   profile,
					Variant:   variant,
					Extension: ext,
					Name:      tmpl(prefix, profile, variant, ext),
				})
			}
		}
	}
	return entries
}

// appendLast returns list with every occurrence of item removed and a single
// occurrence appended at the end.
func appendLast(list []string, item string) []string {
	out := make([]string, 0, len(list)+1)
	for _, v := range list {
		if v != item {
			out = append(out, v)
		}
	}
	return append(out, item)
}

func prependAbsent(list []string, item string) []string {
	for _, v := range list {
		if v == item {
			out := make([]string, len(list))
			copy(out, list)
			return out
		}
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}
