package conflict

import "github.com/scribehub/scribe/internal/reference"

// Operation records what happened to one reference during resolution.
type Operation struct {
	ID     string `json:"id"`
	DOI    string `json:"doi,omitempty"`
	Action Action `json:"action"`
	Reason string `json:"reason"`
}

// Unresolved is a matched pair whose fields disagree.
type Unresolved struct {
	ID        string          `json:"id"`
	DOI       string          `json:"doi,omitempty"`
	Conflicts []FieldConflict `json:"conflicts"`
}

// Report is the outcome of resolving a document.
type Report struct {
	Refs       []reference.Reference `json:"-"`
	Operations []Operation           `json:"operations"`
	Unresolved []Unresolved          `json:"unresolved,omitempty"`
	Merged     int                   `json:"merged"`
	OursOnly   int                   `json:"ours_only"`
	TheirsOnly int                   `json:"theirs_only"`
	Total      int                   `json:"total"`
}

// Resolve resolves every conflict region and returns the references in
// file order. Field conflicts are settled from prefer; with SideNone they
// are listed in Unresolved and ours is used as a placeholder.
func (d *Document) Resolve(prefer Side) Report {
	var report Report

	for _, b := range d.Blocks {
		if b.Conflict == nil {
			report.Refs = append(report.Refs, b.Clean...)
			continue
		}

		result := MatchRegion(*b.Conflict)
		for _, m := range result.Matches {
			plan := Resolve(m)
			report.Operations = append(report.Operations, Operation{ID: plan.ID, DOI: plan.DOI, Action: plan.Action, Reason: plan.Reason})

			if plan.Action == ActionConflict && prefer == SideNone {
				report.Unresolved = append(report.Unresolved, Unresolved{ID: plan.ID, DOI: plan.DOI, Conflicts: plan.Conflicts})
			}
			if plan.Action == ActionMerge || (plan.Action == ActionConflict && prefer != SideNone) {
				report.Merged++
			}
			report.Refs = append(report.Refs, Apply(m, plan, prefer))
		}

		for _, ref := range result.OursOnly {
			report.Refs = append(report.Refs, ref)
			report.OursOnly++
			report.Operations = append(report.Operations, Operation{ID: ref.ID, DOI: ref.DOI, Action: ActionAddOurs, Reason: "reference only in ours"})
		}
		for _, ref := range result.TheirsOnly {
			report.Refs = append(report.Refs, ref)
			report.TheirsOnly++
			report.Operations = append(report.Operations, Operation{ID: ref.ID, DOI: ref.DOI, Action: ActionAddTheirs, Reason: "reference only in theirs"})
		}
	}

	report.Total = len(report.Refs)
	return report
}
