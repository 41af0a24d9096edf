package clean

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Prot10/MyMacCleaner-sub003/internal/safety"
	"github.com/Prot10/MyMacCleaner-sub003/internal/trash"
)

// Candidate is one deletion candidate with its previously measured size.
type Candidate struct {
	Path string
	Size int64
}

// ItemError records why one candidate was not deleted.
type ItemError struct {
	Path   string
	Reason error
}

func (e ItemError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Reason) }

// Result aggregates a deletion batch.
type Result struct {
	SuccessCount int
	FailedCount  int
	Errors       []ItemError
	FreedBytes   int64
}

// Executor runs validated deletion batches. Every candidate is
// re-validated against the policy immediately before action; anything
// not safe is never touched.
type Executor struct {
	Policy  safety.Policy
	Trasher trash.Trasher
}

// Run processes the whole batch sequentially without short-circuiting:
// one failing item blocks only itself. FreedBytes uses the candidates'
// pre-recorded sizes, since a trashed path can no longer be measured.
// A started batch always runs to completion, so a cancelled session can
// only prevent the next batch, never leave this one half-ambiguous.
func (e *Executor) Run(candidates []Candidate) Result {
	var res Result
	for _, c := range candidates {
		result := safety.Validate(e.Policy, c.Path)
		if !result.Safe() {
			res.FailedCount++
			res.Errors = append(res.Errors, ItemError{
				Path:   c.Path,
				Reason: fmt.Errorf("policy violation: %s", result.Verdict),
			})
			log.Warn().Str("path", c.Path).Stringer("verdict", result.Verdict).
				Msg("deletion refused")
			continue
		}

		if err := e.Trasher.Trash(result.Path); err != nil {
			res.FailedCount++
			res.Errors = append(res.Errors, ItemError{Path: c.Path, Reason: err})
			log.Error().Str("path", c.Path).Err(err).Msg("trash move failed")
			continue
		}

		res.SuccessCount++
		res.FreedBytes += c.Size
		log.Info().Str("path", result.Path).Int64("size", c.Size).Msg("moved to trash")
	}
	return res
}

// CandidatesFromItems converts scanner items into deletion candidates.
func CandidatesFromItems(items []Item) []Candidate {
	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, Candidate{Path: item.Path, Size: item.Size})
	}
	return candidates
}
