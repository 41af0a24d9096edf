package clean

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Prot10/MyMacCleaner-sub003/internal/config"
	"github.com/Prot10/MyMacCleaner-sub003/internal/safety"
	"github.com/Prot10/MyMacCleaner-sub003/internal/whitelist"
)

// Item is one concrete cleanup target produced by pattern expansion.
// Only Selected is mutated after creation; a rescan replaces the set.
type Item struct {
	ID           string
	Path         string
	Name         string
	Size         int64
	Category     string
	Description  string
	RequiresRoot bool
	Selected     bool
}

// Scanner expands the cleanup catalog into items. All inputs are
// explicit; the scanner holds no state between runs.
type Scanner struct {
	Catalog   []config.CleanupPath
	Policy    safety.Policy
	Whitelist *whitelist.Whitelist

	// OnProgress, when set, is called once per catalog entry as its scan
	// completes. Used by the TUI; never called concurrently.
	OnProgress func(done, total int, description string)
}

// Scan expands every catalog pattern, stats the results, and returns the
// cleanable items sorted by size descending. Catalog entries scan
// concurrently (they are read-only and touch disjoint trees);
// cancellation is honored between entries. Items that fail safety
// validation or match the user whitelist are dropped here so they never
// reach a selection surface.
func (s *Scanner) Scan(ctx context.Context) ([]Item, error) {
	var g errgroup.Group
	g.SetLimit(4)

	var (
		mu    sync.Mutex
		items []Item
		done  int
	)

	for _, def := range s.Catalog {
		def := def
		if err := ctx.Err(); err != nil {
			// Drain launched workers so none mutate items after return.
			_ = g.Wait()
			return nil, err
		}
		g.Go(func() error {
			found := s.scanDefinition(def)
			mu.Lock()
			items = append(items, found...)
			done++
			if s.OnProgress != nil {
				s.OnProgress(done, len(s.Catalog), def.Description)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items = dropNestedDuplicates(items)
	sort.Slice(items, func(i, j int) bool { return items[i].Size > items[j].Size })
	return items, nil
}

// dropNestedDuplicates collapses overlap between catalog definitions.
// A wildcard entry and a specific entry can expand to the same path, or
// to a path and one of its ancestors; keeping both would double-count
// the plan and fail the second trash attempt of every live run.
func dropNestedDuplicates(items []Item) []Item {
	inBatch := make(map[string]struct{}, len(items))
	for _, item := range items {
		inBatch[item.Path] = struct{}{}
	}

	kept := make(map[string]bool, len(items))
	var out []Item
	for _, item := range items {
		if kept[item.Path] || ancestorInBatch(item.Path, inBatch) {
			continue
		}
		kept[item.Path] = true
		out = append(out, item)
	}
	return out
}

func ancestorInBatch(path string, batch map[string]struct{}) bool {
	for {
		parent := filepath.Dir(path)
		if parent == path {
			return false
		}
		if _, ok := batch[parent]; ok {
			return true
		}
		path = parent
	}
}

// scanDefinition expands one catalog entry into items.
func (s *Scanner) scanDefinition(def config.CleanupPath) []Item {
	if !def.SafeToClean {
		return nil
	}

	var found []Item
	for _, path := range ExpandPattern(s.Policy.Home, def.Pattern) {
		if s.Whitelist.IsWhitelisted(path) {
			log.Debug().Str("path", path).Msg("whitelisted, skipping")
			continue
		}
		if result := safety.Validate(s.Policy, path); !result.Safe() {
			log.Debug().Str("path", path).Stringer("verdict", result.Verdict).
				Msg("rejected by safety policy")
			continue
		}

		size, err := safety.PathSize(path)
		if err != nil {
			// Unreadable targets are reported by the permission surface,
			// not the scanner.
			log.Debug().Str("path", path).Err(err).Msg("cannot size item")
			continue
		}

		found = append(found, Item{
			ID:           uuid.NewString(),
			Path:         path,
			Name:         filepath.Base(path),
			Size:         size,
			Category:     def.Category,
			Description:  def.Description,
			RequiresRoot: def.RequiresRoot,
			Selected:     true,
		})
	}
	return found
}

// TotalSize sums the sizes of the given items.
func TotalSize(items []Item) int64 {
	var total int64
	for _, item := range items {
		total += item.Size
	}
	return total
}

// SelectedItems filters to the currently selected items.
func SelectedItems(items []Item) []Item {
	var out []Item
	for _, item := range items {
		if item.Selected {
			out = append(out, item)
		}
	}
	return out
}
