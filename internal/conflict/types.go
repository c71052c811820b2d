// Package conflict resolves git merge conflicts in refs.jsonl using what it
// knows about references: DOIs identify works, and one side of a conflict
// often carries metadata the other lacks.
package conflict

import (
	"fmt"

	"github.com/scribehub/scribe/internal/reference"
)

// Region is a single git conflict region in a JSONL file.
type Region struct {
	// Line numbers in the original file (1-indexed)
	StartLine int // Line of <<<<<<< marker
	EndLine   int // Line of >>>>>>> marker

	Ours   []reference.Reference // References from the "ours" (HEAD) side
	Theirs []reference.Reference // References from the "theirs" side
}

// Block is a run of the file in original order: either clean references
// or one conflict region.
type Block struct {
	Clean    []reference.Reference
	Conflict *Region
}

// Document is a parsed, possibly conflicted, refs.jsonl.
type Document struct {
	Blocks []Block
}

// Match is a reference that appears on both sides of a conflict.
type Match struct {
	Ours      reference.Reference
	Theirs    reference.Reference
	MatchedBy string // "doi" or "id"
}

// MatchResult is the outcome of pairing the two sides of a region.
type MatchResult struct {
	Matches    []Match
	OursOnly   []reference.Reference
	TheirsOnly []reference.Reference
}

// FieldConflict is a field both sides set to different values.
// Values are stored in full; truncation happens only at display time.
type FieldConflict struct {
	Field  string `json:"field"`
	Ours   string `json:"ours"`
	Theirs string `json:"theirs"`
}

// Action is the way a matched pair is resolved.
type Action string

const (
	ActionKeepOurs   Action = "keep_ours"   // Ours is more complete
	ActionKeepTheirs Action = "keep_theirs" // Theirs is more complete
	ActionMerge      Action = "merge"       // Complementary metadata merged
	ActionAddOurs    Action = "add_ours"    // Reference only in ours
	ActionAddTheirs  Action = "add_theirs"  // Reference only in theirs
	ActionConflict   Action = "conflict"    // Both sides disagree on a field
)

// Plan describes how a matched pair will be resolved.
type Plan struct {
	ID        string
	DOI       string
	Action    Action
	Reason    string
	Conflicts []FieldConflict // Empty unless Action is ActionConflict
}

// Side selects a conflict side.
type Side string

const (
	SideNone   Side = ""
	SideOurs   Side = "ours"
	SideTheirs Side = "theirs"
)

// ParseSide validates a side name; the empty string is SideNone.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideNone, SideOurs, SideTheirs:
		return Side(s), nil
	default:
		return SideNone, fmt.Errorf("invalid side %q (valid: ours, theirs)", s)
	}
}

// ParseError reports malformed conflict markers or JSON.
type ParseError struct {
	Line    int    // Line number where the error occurred (1-indexed)
	Message string // Description of the error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
