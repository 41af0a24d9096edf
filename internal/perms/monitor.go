package perms

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Monitor owns the folder status catalog. Probes run in workers but all
// status mutation goes through the monitor's lock, so readers always see
// a coherent snapshot.
type Monitor struct {
	mu      sync.Mutex
	folders []Folder
	prober  AccessProber
}

// NewMonitor builds a monitor over a folder catalog.
func NewMonitor(folders []Folder, prober AccessProber) *Monitor {
	return &Monitor{folders: append([]Folder(nil), folders...), prober: prober}
}

// Folders returns a snapshot copy of the catalog.
func (m *Monitor) Folders() []Folder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Folder(nil), m.folders...)
}

// RunStartupPass probes every folder except those that can trigger a
// one-time OS consent dialog; those keep their unchecked baseline until
// the user explicitly asks for a full pass.
func (m *Monitor) RunStartupPass(ctx context.Context) error {
	return m.run(ctx, true)
}

// RunFullPass probes every folder, consent-triggering ones included.
// Only invoked by an explicit user action, so any consent dialogs the
// probes provoke are expected.
func (m *Monitor) RunFullPass(ctx context.Context) error {
	return m.run(ctx, false)
}

func (m *Monitor) run(ctx context.Context, skipConsent bool) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := range m.folders {
		i := i
		m.mu.Lock()
		folder := m.folders[i]
		m.mu.Unlock()

		if skipConsent && folder.CanTriggerConsentDialog {
			continue
		}
		if err := ctx.Err(); err != nil {
			// Drain launched probes so none mutate the catalog after
			// run has returned.
			_ = g.Wait()
			return err
		}

		// Mark in-progress before the probe starts so readers observe
		// "checking" rather than a stale result.
		m.setStatus(i, StatusChecking)

		g.Go(func() error {
			status := m.prober.Probe(folder.Path)
			m.setStatus(i, status)
			log.Debug().Str("folder", folder.Path).Stringer("status", status).Msg("probed folder")
			return nil
		})
	}

	return g.Wait()
}

func (m *Monitor) setStatus(i int, s Status) {
	m.mu.Lock()
	m.folders[i].Status = s
	m.mu.Unlock()
}

// Rollup aggregates folder statuses: checking pre-empts any conclusion,
// accessible requires every entry accessible, anything else is denied.
func Rollup(folders []Folder) Status {
	if len(folders) == 0 {
		return StatusAccessible
	}
	allAccessible := true
	for _, f := range folders {
		if f.Status == StatusChecking {
			return StatusChecking
		}
		if f.Status != StatusAccessible {
			allAccessible = false
		}
	}
	if allAccessible {
		return StatusAccessible
	}
	return StatusDenied
}
