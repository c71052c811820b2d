package storage

import (
	"github.com/scribehub/scribe/internal/reference"
)

// Import actions.
const (
	ActionNew    = "new"
	ActionUpdate = "update"
	ActionSkip   = "skip"
)

// Reasons attached to update and skip actions.
const (
	ReasonDOIMatch         = "doi_match"
	ReasonSourceMatch      = "source_match"
	ReasonIDMatch          = "id_match"
	ReasonDuplicateInBatch = "duplicate_in_batch"
)

// RefWithAction pairs a reference with an import action.
type RefWithAction struct {
	Ref         reference.Reference
	Action      string // new, update, skip
	Reason      string
	ExistingIdx int // Index in existing refs (for updates)
}

// ImportPlan is the classified result of merging incoming references into a
// library.
type ImportPlan struct {
	Actions []RefWithAction
	New     int
	Updated int
	Skipped int
}

// PlanImport classifies each incoming reference against the persisted
// library. A DOI match wins over an import source match, which wins over
// an ID match. Matches against earlier records of the same batch are
// skipped. References without an ID get a fresh one.
func PlanImport(existing, incoming []reference.Reference) ImportPlan {
	// The working set grows with the batch so duplicates inside it are caught.
	working := make([]reference.Reference, len(existing), len(existing)+len(incoming))
	copy(working, existing)

	var plan ImportPlan
	for _, ref := range incoming {
		if ref.ID == "" {
			ref.ID = reference.NewID()
		}

		idx, reason := matchExisting(working, ref)
		switch {
		case idx < 0:
			working = append(working, ref)
			plan.Actions = append(plan.Actions, RefWithAction{Ref: ref, Action: ActionNew})
			plan.New++
		case idx < len(existing):
			// Updates keep the stored ID
			ref.ID = existing[idx].ID
			plan.Actions = append(plan.Actions, RefWithAction{Ref: ref, Action: ActionUpdate, Reason: reason, ExistingIdx: idx})
			plan.Updated++
		default:
			plan.Actions = append(plan.Actions, RefWithAction{Ref: ref, Action: ActionSkip, Reason: ReasonDuplicateInBatch})
			plan.Skipped++
		}
	}
	return plan
}

func matchExisting(refs []reference.Reference, ref reference.Reference) (int, string) {
	if idx, found := FindByDOI(refs, ref.DOI); found {
		return idx, ReasonDOIMatch
	}
	if idx, found := FindBySourceID(refs, ref.Source.Type, ref.Source.ID); found {
		return idx, ReasonSourceMatch
	}
	if idx, found := FindByID(refs, ref.ID); found {
		return idx, ReasonIDMatch
	}
	return -1, ""
}

// Apply returns the library that results from executing the plan: updates
// replace records in place and new records are appended in order.
func (p ImportPlan) Apply(existing []reference.Reference) []reference.Reference {
	out := make([]reference.Reference, len(existing), len(existing)+p.New)
	copy(out, existing)

	for _, a := range p.Actions {
		if a.Action == ActionUpdate {
			out[a.ExistingIdx] = a.Ref
		}
	}
	for _, a := range p.Actions {
		if a.Action == ActionNew {
			out = append(out, a.Ref)
		}
	}
	return out
}
