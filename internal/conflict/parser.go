package conflict

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
)

type parserState int

const (
	stateNormal parserState = iota
	stateInOurs
	stateInTheirs
)

// Conflict marker prefixes
const (
	oursMarker      = "<<<<<<<"
	separatorMarker = "======="
	theirsMarker    = ">>>>>>>"
)

// Parse reads a refs.jsonl that may contain git conflict markers. Every
// non-blank line outside the markers must be a JSON reference.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, storage.MaxJSONLLineCapacity), storage.MaxJSONLLineCapacity)

	doc := &Document{}
	state := stateNormal
	lineNum := 0
	var region *Region

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		marker := ""
		for _, m := range []string{oursMarker, separatorMarker, theirsMarker} {
			if strings.HasPrefix(line, m) {
				marker = m
				break
			}
		}

		switch {
		case state == stateNormal && marker == oursMarker:
			region = &Region{StartLine: lineNum}
			state = stateInOurs
		case state == stateNormal && marker != "":
			return nil, ParseError{Line: lineNum, Message: "unexpected " + markerName(marker) + " outside conflict region"}
		case state == stateNormal:
			ref, ok, err := parseLine(line, lineNum)
			if err != nil {
				return nil, err
			}
			if ok {
				doc.appendClean(ref)
			}

		case marker == oursMarker:
			return nil, ParseError{Line: lineNum, Message: "nested conflict markers not allowed"}

		case state == stateInOurs && marker == separatorMarker:
			state = stateInTheirs
		case state == stateInOurs && marker == theirsMarker:
			return nil, ParseError{Line: lineNum, Message: "unexpected end marker before separator"}

		case state == stateInTheirs && marker == separatorMarker:
			return nil, ParseError{Line: lineNum, Message: "duplicate separator marker in conflict region"}
		case state == stateInTheirs && marker == theirsMarker:
			region.EndLine = lineNum
			doc.Blocks = append(doc.Blocks, Block{Conflict: region})
			region = nil
			state = stateNormal

		default:
			ref, ok, err := parseLine(line, lineNum)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if state == stateInOurs {
				region.Ours = append(region.Ours, ref)
			} else {
				region.Theirs = append(region.Theirs, ref)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if state != stateNormal {
		return nil, ParseError{Line: lineNum, Message: "unterminated conflict region at end of file"}
	}
	return doc, nil
}

// ParseString is a convenience function that parses from a string.
func ParseString(content string) (*Document, error) {
	return Parse(strings.NewReader(content))
}

func markerName(m string) string {
	if m == separatorMarker {
		return "separator marker"
	}
	return "end marker"
}

func parseLine(line string, lineNum int) (reference.Reference, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return reference.Reference{}, false, nil
	}
	var ref reference.Reference
	if err := json.Unmarshal([]byte(line), &ref); err != nil {
		return reference.Reference{}, false, ParseError{Line: lineNum, Message: "invalid JSON: " + err.Error()}
	}
	return ref, true, nil
}

func (d *Document) appendClean(ref reference.Reference) {
	if n := len(d.Blocks); n > 0 && d.Blocks[n-1].Conflict == nil {
		d.Blocks[n-1].Clean = append(d.Blocks[n-1].Clean, ref)
		return
	}
	d.Blocks = append(d.Blocks, Block{Clean: []reference.Reference{ref}})
}

// HasConflicts reports whether the document contains any conflict region.
func (d *Document) HasConflicts() bool {
	return len(d.Regions()) > 0
}

// Regions returns the conflict regions in file order.
func (d *Document) Regions() []*Region {
	var out []*Region
	for _, b := range d.Blocks {
		if b.Conflict != nil {
			out = append(out, b.Conflict)
		}
	}
	return out
}

// CleanCount returns the number of references outside conflict regions.
func (d *Document) CleanCount() int {
	n := 0
	for _, b := range d.Blocks {
		n += len(b.Clean)
	}
	return n
}
