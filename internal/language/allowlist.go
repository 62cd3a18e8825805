package language

import "strings"

// DefaultAllowed lists the language tags kept when the user supplies none:
// English and Portuguese variants, plus unknown/undefined tracks.
var DefaultAllowed = []string{"eng", "en", "por", "pt", "english", "portuguese", "unknown", "und"}

// AllowList is a set of lowercase language tags a stream must carry to
// survive filtering. Unknown and "und" members match streams whose tag
// normalized to Unknown.
type AllowList map[string]struct{}

// NewAllowList builds an AllowList from the provided tags, falling back to
// DefaultAllowed when the list is empty. Tags are trimmed and lowercased;
// blanks are dropped.
func NewAllowList(tags []string) AllowList {
	if len(tags) == 0 {
		tags = DefaultAllowed
	}
	list := make(AllowList, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		list[tag] = struct{}{}
	}
	return list
}

// ParseList splits a comma-separated flag value into an AllowList, or the
// defaults when the value is blank.
func ParseList(value string) AllowList {
	value = strings.TrimSpace(value)
	if value == "" {
		return NewAllowList(nil)
	}
	return NewAllowList(strings.Split(value, ","))
}

// Contains reports whether the normalized tag is in the allow-list.
func (a AllowList) Contains(tag string) bool {
	if len(a) == 0 {
		return false
	}
	tag = Normalize(tag)
	if _, ok := a[tag]; ok {
		return true
	}
	// A normalized Unknown also matches an allow-list that spelled it "und".
	if tag == Unknown {
		_, ok := a["und"]
		return ok
	}
	return false
}

// Known returns the subset of the allow-list that names real languages,
// excluding unknown/und. Stream filtering is skipped entirely when no
// stream matches a known desired language.
func (a AllowList) Known() AllowList {
	known := make(AllowList, len(a))
	for tag := range a {
		if tag == Unknown || tag == "und" {
			continue
		}
		known[tag] = struct{}{}
	}
	return known
}

// Values returns the member tags in unspecified order, for logging.
func (a AllowList) Values() []string {
	out := make([]string, 0, len(a))
	for tag := range a {
		out = append(out, tag)
	}
	return out
}
