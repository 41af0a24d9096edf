package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Prot10/MyMacCleaner-sub003/internal/apps"
	"github.com/Prot10/MyMacCleaner-sub003/internal/clean"
	"github.com/Prot10/MyMacCleaner-sub003/internal/config"
	"github.com/Prot10/MyMacCleaner-sub003/internal/orphan"
	"github.com/Prot10/MyMacCleaner-sub003/internal/safety"
	"github.com/Prot10/MyMacCleaner-sub003/internal/trash"
	"github.com/Prot10/MyMacCleaner-sub003/internal/ui"
)

var (
	leftoversDelete  bool
	leftoversMinConf string
)

var leftoversCmd = &cobra.Command{
	Use:   "leftovers",
	Short: "Find files left behind by removed apps",
	Long: "Cross-references library locations against the installed applications\n" +
		"and package receipts, reporting confidence-scored leftovers.",
	RunE: runLeftovers,
}

func init() {
	leftoversCmd.Flags().BoolVar(&leftoversDelete, "delete", false, "Move found leftovers to the Trash")
	leftoversCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip the confirmation prompt")
	leftoversCmd.Flags().StringVar(&leftoversMinConf, "confidence", "low", "Minimum confidence to report (low, medium, high)")
}

func runLeftovers(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	minConf, err := parseConfidence(leftoversMinConf)
	if err != nil {
		return err
	}

	installed := apps.InstalledApps(apps.DefaultAppDirs(home)...)
	registry := orphan.NewRegistry(
		apps.BundleIDs(installed),
		apps.Names(installed),
		apps.KnownIdentifiers(apps.DefaultReceiptDirs()...),
	)

	found, err := orphan.Detect(cmd.Context(), config.OrphanSearchRoots(home), registry)
	if err != nil {
		return err
	}

	var reported []orphan.Leftover
	for _, lo := range found {
		if lo.Confidence >= minConf {
			reported = append(reported, lo)
		}
	}
	if len(reported) == 0 {
		fmt.Println("No leftovers found.")
		return nil
	}

	printLeftovers(reported)

	if !leftoversDelete {
		return nil
	}

	var total int64
	candidates := make([]clean.Candidate, 0, len(reported))
	for _, lo := range reported {
		candidates = append(candidates, clean.Candidate{Path: lo.Path, Size: lo.Size})
		total += lo.Size
	}
	if !cleanYes && !confirm(fmt.Sprintf("Move %d leftovers (%s) to the Trash?",
		len(candidates), ui.FormatSize(total))) {
		fmt.Println("Aborted.")
		return nil
	}

	executor := &clean.Executor{
		Policy:  safety.NewPolicy(home),
		Trasher: trash.NewUserTrasher(home),
	}
	printResult(executor.Run(candidates))
	return nil
}

// printLeftovers renders leftovers grouped by category.
func printLeftovers(leftovers []orphan.Leftover) {
	byCategory := make(map[orphan.Category][]orphan.Leftover)
	var order []orphan.Category
	for _, lo := range leftovers {
		if _, ok := byCategory[lo.Category]; !ok {
			order = append(order, lo.Category)
		}
		byCategory[lo.Category] = append(byCategory[lo.Category], lo)
	}

	for _, category := range order {
		fmt.Println(ui.TitleStyle.Render(string(category)))
		for _, lo := range byCategory[category] {
			fmt.Printf("  %s %10s  %s\n",
				confidenceStyle(lo.Confidence).Render(fmt.Sprintf("%-6s", lo.Confidence)),
				ui.FormatSize(lo.Size),
				ui.MutedStyle.Render(lo.Path))
		}
	}
	fmt.Println()
}

func confidenceStyle(c orphan.Confidence) interface{ Render(...string) string } {
	switch c {
	case orphan.High:
		return ui.OKStyle
	case orphan.Medium:
		return ui.WarnStyle
	default:
		return ui.MutedStyle
	}
}

func parseConfidence(s string) (orphan.Confidence, error) {
	switch s {
	case "low":
		return orphan.Low, nil
	case "medium":
		return orphan.Medium, nil
	case "high":
		return orphan.High, nil
	}
	return 0, fmt.Errorf("invalid confidence %q (want low, medium, or high)", s)
}
