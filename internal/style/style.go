// Package style enumerates the supported citation styles.
package style

import "strings"

// Style identifies a citation formatting convention.
type Style string

const (
	APA7    Style = "apa7"
	MLA9    Style = "mla9"
	Chicago Style = "chicago"
	IEEE    Style = "ieee"
	Harvard Style = "harvard"
	ThaiCU  Style = "thai-cu"
	ThaiTU  Style = "thai-tu"
	ThaiMU  Style = "thai-mu"
)

// Default is used for empty and unknown identifiers.
const Default = APA7

type entry struct {
	style Style
	name  string
}

// registry is ordered for listing; lookups go through byID.
var registry = [...]entry{
	{APA7, "APA 7th Edition"},
	{MLA9, "MLA 9th Edition"},
	{Chicago, "Chicago 17th Edition"},
	{IEEE, "IEEE"},
	{Harvard, "Harvard"},
	{ThaiCU, "Thai (Chulalongkorn University)"},
	{ThaiTU, "Thai (Thammasat University)"},
	{ThaiMU, "Thai (Mahidol University)"},
}

var byID = func() map[Style]string {
	m := make(map[Style]string, len(registry))
	for _, e := range registry {
		m[e.style] = e.name
	}
	return m
}()

// All returns every supported style in registry order.
func All() []Style {
	out := make([]Style, len(registry))
	for i, e := range registry {
		out[i] = e.style
	}
	return out
}

// Lookup resolves an identifier, reporting whether it is supported.
func Lookup(id string) (Style, bool) {
	s := Style(strings.ToLower(strings.TrimSpace(id)))
	_, ok := byID[s]
	return s, ok
}

// Parse resolves an identifier, falling back to APA 7 for unknown values.
func Parse(id string) Style {
	if s, ok := Lookup(id); ok {
		return s
	}
	return Default
}

// Valid reports whether s is a supported style.
func (s Style) Valid() bool {
	_, ok := byID[s]
	return ok
}

// DisplayName returns the human-readable name; unknown styles report the
// name of the fallback style.
func (s Style) DisplayName() string {
	if name, ok := byID[s]; ok {
		return name
	}
	return byID[Default]
}

// IsThai reports whether s is one of the Thai-university styles.
func (s Style) IsThai() bool {
	return s == ThaiCU || s == ThaiTU || s == ThaiMU
}

// Institution returns the university label for Thai styles.
func (s Style) Institution() string {
	switch s {
	case ThaiCU:
		return "Chulalongkorn University"
	case ThaiTU:
		return "Thammasat University"
	case ThaiMU:
		return "Mahidol University"
	default:
		return ""
	}
}

func (s Style) String() string {
	return string(s)
}
