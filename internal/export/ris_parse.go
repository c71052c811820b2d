package export

import (
	"bufio"
	"regexp"
	"strings"
)

// RISRecord holds the tag values of one RIS record in file order.
type RISRecord map[string][]string

// Get returns the first value of a tag.
func (r RISRecord) Get(tag string) string {
	if v := r[tag]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// First returns the first non-empty value among the given tags.
func (r RISRecord) First(tags ...string) string {
	for _, t := range tags {
		if v := r.Get(t); v != "" {
			return v
		}
	}
	return ""
}

var risLineRegex = regexp.MustCompile(`^([A-Z][A-Z0-9])  -(?: (.*))?$`)

// ParseRIS reads RIS records. A record starts at TY and ends at ER; lines
// that are not tagged continue the previous value.
func ParseRIS(text string) []RISRecord {
	var records []RISRecord
	var current RISRecord
	var lastTag string

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		m := risLineRegex.FindStringSubmatch(line)
		if m == nil {
			if current != nil && lastTag != "" && strings.TrimSpace(line) != "" {
				vals := current[lastTag]
				vals[len(vals)-1] += " " + strings.TrimSpace(line)
			}
			continue
		}

		tag, value := m[1], strings.TrimSpace(m[2])
		switch tag {
		case "TY":
			current = RISRecord{}
		case "ER":
			if current != nil {
				records = append(records, current)
			}
			current, lastTag = nil, ""
			continue
		}
		if current == nil {
			continue // Tag outside a record
		}
		current[tag] = append(current[tag], value)
		lastTag = tag
	}

	return records
}
