package reference

import (
	"strings"

	"github.com/scribehub/scribe/internal/thai"
)

// Name is an author string split into given names and family name.
type Name struct {
	Given  []string // Given/middle names in order
	Family string   // Family name, or the whole string for Thai and single-token names
	Thai   bool     // Thai names are never inverted or abbreviated
}

// ParseName splits an author string. Both "Given Family" and the already
// inverted "Family, Given" forms are accepted. Thai names are kept whole.
func ParseName(s string) Name {
	s = strings.TrimSpace(s)
	if thai.IsThai(s) {
		return Name{Family: s, Thai: true}
	}

	if family, given, ok := strings.Cut(s, ","); ok {
		return Name{
			Given:  strings.Fields(given),
			Family: strings.TrimSpace(family),
		}
	}

	parts := strings.Fields(s)
	switch len(parts) {
	case 0:
		return Name{}
	case 1:
		return Name{Family: parts[0]}
	default:
		return Name{Given: parts[:len(parts)-1], Family: parts[len(parts)-1]}
	}
}

// Surname returns the family name used in in-text citations and keys.
func Surname(s string) string {
	return ParseName(s).Family
}

// Inverted formats the name as "Family, Given Middle".
func (n Name) Inverted() string {
	if n.Thai || len(n.Given) == 0 {
		return n.Family
	}
	return n.Family + ", " + strings.Join(n.Given, " ")
}

// Natural formats the name as "Given Middle Family".
func (n Name) Natural() string {
	if n.Thai || len(n.Given) == 0 {
		return n.Family
	}
	return strings.Join(n.Given, " ") + " " + n.Family
}

// Initials returns the given names abbreviated, e.g. "F. M.". Hyphenated
// names keep the hyphen: "Jean-Paul" becomes "J.-P.".
func (n Name) Initials() string {
	var out []string
	for _, g := range n.Given {
		var parts []string
		for _, piece := range strings.Split(g, "-") {
			r := []rune(strings.Trim(piece, "."))
			if len(r) == 0 {
				continue
			}
			parts = append(parts, string(r[0])+".")
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, "-"))
		}
	}
	return strings.Join(out, " ")
}
