package conflict

import (
	"slices"
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// Field completeness weights (higher = more important)
const (
	weightAbstract  = 5
	weightAuthors   = 4
	weightContainer = 3
	weightYear      = 2
	weightID        = 1
)

// textField is a string field of a reference that merges value by value.
type textField struct {
	name string
	get  func(*reference.Reference) *string
	fold bool // compare case-insensitively
}

var textFields = []textField{
	{name: "title", get: func(r *reference.Reference) *string { return &r.Title }},
	{name: "year", get: func(r *reference.Reference) *string { return &r.Year }},
	{name: "doi", get: func(r *reference.Reference) *string { return &r.DOI }, fold: true},
	{name: "isbn", get: func(r *reference.Reference) *string { return &r.ISBN }},
	{name: "url", get: func(r *reference.Reference) *string { return &r.URL }},
	{name: "publisher", get: func(r *reference.Reference) *string { return &r.Publisher }},
	{name: "journal_name", get: func(r *reference.Reference) *string { return &r.JournalName }},
	{name: "volume", get: func(r *reference.Reference) *string { return &r.Volume }},
	{name: "issue", get: func(r *reference.Reference) *string { return &r.Issue }},
	{name: "pages", get: func(r *reference.Reference) *string { return &r.Pages }},
	{name: "edition", get: func(r *reference.Reference) *string { return &r.Edition }},
	{name: "abstract", get: func(r *reference.Reference) *string { return &r.Abstract }},
	{name: "notes", get: func(r *reference.Reference) *string { return &r.Notes }},
}

// Resolve determines the resolution plan for a matched pair.
func Resolve(match Match) Plan {
	plan := Plan{ID: match.Ours.ID, DOI: match.Ours.DOI}

	if _, conflicts := Merge(match.Ours, match.Theirs); len(conflicts) > 0 {
		plan.Action = ActionConflict
		plan.Conflicts = conflicts
		names := make([]string, len(conflicts))
		for i, c := range conflicts {
			names[i] = c.Field
		}
		plan.Reason = "true conflicts on: " + strings.Join(names, ", ")
		return plan
	}

	if isComplementary(match.Ours, match.Theirs) {
		plan.Action = ActionMerge
		plan.Reason = "complementary metadata merged"
		return plan
	}

	oursScore := Completeness(match.Ours)
	theirsScore := Completeness(match.Theirs)

	// Longer author list breaks a tie
	if oursScore == theirsScore {
		switch {
		case len(match.Theirs.Authors) > len(match.Ours.Authors):
			plan.Action = ActionKeepTheirs
			plan.Reason = "theirs has more authors"
			return plan
		case len(match.Ours.Authors) > len(match.Theirs.Authors):
			plan.Action = ActionKeepOurs
			plan.Reason = "ours has more authors"
			return plan
		}
	}

	switch {
	case oursScore > theirsScore:
		plan.Action = ActionKeepOurs
		plan.Reason = "ours is more complete"
	case theirsScore > oursScore:
		plan.Action = ActionKeepTheirs
		plan.Reason = "theirs is more complete"
	default:
		plan.Action = ActionKeepOurs
		plan.Reason = "identical content, keeping ours"
	}
	return plan
}

// Merge combines two versions of a reference. Fields set on only one side
// are taken from it; fields set to different values on both sides are
// reported as conflicts and left as ours. Tags are united.
func Merge(ours, theirs reference.Reference) (reference.Reference, []FieldConflict) {
	merged := ours
	var conflicts []FieldConflict

	for _, f := range textFields {
		o, t := *f.get(&ours), *f.get(&theirs)
		switch {
		case t == "" || o == t:
		case o == "":
			*f.get(&merged) = t
		case f.fold && strings.EqualFold(o, t):
		default:
			conflicts = append(conflicts, FieldConflict{Field: f.name, Ours: o, Theirs: t})
		}
	}

	if merged.YearSuffix == "" {
		merged.YearSuffix = theirs.YearSuffix
	}

	switch {
	case ours.Type == theirs.Type || theirs.Type == "" || theirs.Type == reference.TypeOther:
	case ours.Type == "" || ours.Type == reference.TypeOther:
		merged.Type = theirs.Type
	default:
		conflicts = append(conflicts, FieldConflict{Field: "type", Ours: string(ours.Type), Theirs: string(theirs.Type)})
	}

	authors, ok := mergeAuthors(ours.Authors, theirs.Authors)
	merged.Authors = authors
	if !ok {
		conflicts = append(conflicts, FieldConflict{
			Field:  "authors",
			Ours:   strings.Join(ours.Authors, "; "),
			Theirs: strings.Join(theirs.Authors, "; "),
		})
	}

	merged.Tags = unionStrings(ours.Tags, theirs.Tags)

	if merged.Source.Type == "" {
		merged.Source = theirs.Source
	}

	return merged, conflicts
}

// mergeAuthors keeps the longer list. Lists of equal length must name the
// same people; otherwise ok is false and ours is returned.
func mergeAuthors(ours, theirs []string) (merged []string, ok bool) {
	switch {
	case len(theirs) > len(ours):
		return theirs, true
	case len(ours) > len(theirs):
		return ours, true
	}
	for i := range ours {
		if !strings.EqualFold(strings.Join(strings.Fields(ours[i]), " "), strings.Join(strings.Fields(theirs[i]), " ")) {
			return ours, false
		}
	}
	return ours, true
}

// isComplementary reports whether each side has a field the other lacks.
func isComplementary(ours, theirs reference.Reference) bool {
	oursExtra, theirsExtra := false, false
	note := func(o, t bool) {
		oursExtra = oursExtra || (o && !t)
		theirsExtra = theirsExtra || (t && !o)
	}

	for _, f := range textFields {
		note(*f.get(&ours) != "", *f.get(&theirs) != "")
	}
	note(len(ours.Authors) > 0, len(theirs.Authors) > 0)
	note(len(ours.Tags) > 0, len(theirs.Tags) > 0)

	return oursExtra && theirsExtra
}

// Completeness scores how much metadata a reference carries.
func Completeness(ref reference.Reference) int {
	score := 0
	if ref.Abstract != "" {
		score += weightAbstract
	}
	if len(ref.Authors) > 0 {
		score += weightAuthors
	}
	if ref.JournalName != "" || ref.Publisher != "" {
		score += weightContainer
	}
	if ref.Year != "" {
		score += weightYear
	}
	if ref.DOI != "" || ref.ISBN != "" {
		score += weightID
	}
	return score
}

// Apply produces the resolved reference for a plan. True conflicts take
// each conflicting field from prefer; with SideNone they keep ours.
func Apply(match Match, plan Plan, prefer Side) reference.Reference {
	switch plan.Action {
	case ActionKeepOurs:
		return match.Ours
	case ActionKeepTheirs:
		return match.Theirs
	}

	merged, _ := Merge(match.Ours, match.Theirs)
	if prefer != SideTheirs {
		return merged
	}
	for _, c := range plan.Conflicts {
		takeField(&merged, c.Field, match.Theirs)
	}
	return merged
}

// takeField copies one named field from source.
func takeField(target *reference.Reference, field string, source reference.Reference) {
	switch field {
	case "authors":
		target.Authors = source.Authors
	case "type":
		target.Type = source.Type
	default:
		for _, f := range textFields {
			if f.name == field {
				*f.get(target) = *f.get(&source)
				return
			}
		}
	}
}

// unionStrings returns the union of two string slices, preserving order.
func unionStrings(a, b []string) []string {
	var result []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if !slices.Contains(result, s) {
			result = append(result, s)
		}
	}
	return result
}
