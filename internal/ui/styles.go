// Package ui holds the shared lipgloss palette and small formatting
// helpers used by the CLI commands.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	ColorCyan   = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
)

var (
	// TitleStyle renders section headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)

	// MutedStyle renders secondary detail (paths, descriptions).
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// OKStyle and ErrStyle render per-item outcomes.
	OKStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	ErrStyle = lipgloss.NewStyle().Foreground(ColorRed)

	// WarnStyle renders cautionary rows (root-owned targets, denied folders).
	WarnStyle = lipgloss.NewStyle().Foreground(ColorYellow)
)

// FormatSize renders a byte count in IEC units ("1.2 GiB").
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
