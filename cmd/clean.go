package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/cobra"

	"github.com/Prot10/MyMacCleaner-sub003/internal/clean"
	"github.com/Prot10/MyMacCleaner-sub003/internal/config"
	"github.com/Prot10/MyMacCleaner-sub003/internal/safety"
	"github.com/Prot10/MyMacCleaner-sub003/internal/trash"
	"github.com/Prot10/MyMacCleaner-sub003/internal/tui"
	"github.com/Prot10/MyMacCleaner-sub003/internal/ui"
	"github.com/Prot10/MyMacCleaner-sub003/internal/whitelist"
)

var (
	cleanYes      bool
	cleanCategory string
	cleanProtect  string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Free up disk space",
	Long: "Scans the cleanup catalog (caches, logs, saved state, developer and\n" +
		"browser leftovers), shows what can be reclaimed, and moves confirmed\n" +
		"items to the Trash.",
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the cleanup plan without deleting")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip the confirmation prompt")
	cleanCmd.Flags().StringVar(&cleanCategory, "category", "", "Clean one category only (user, system, browser, dev, trash)")
	cleanCmd.Flags().StringVar(&cleanProtect, "protect", "", "Add a whitelist pattern and exit")
}

func runClean(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	wlPath := whitelist.DefaultPath(home)
	wl, err := whitelist.Load(wlPath, home)
	if err != nil {
		return err
	}
	if cleanProtect != "" {
		wl.Add(cleanProtect)
		if err := wl.Save(wlPath); err != nil {
			return err
		}
		fmt.Printf("Protected %q\n", cleanProtect)
		return nil
	}

	catalog := config.CleanupPaths()
	if cleanCategory != "" {
		catalog = config.PathsByCategory(cleanCategory)
		if len(catalog) == 0 {
			return fmt.Errorf("unknown category %q", cleanCategory)
		}
	}

	scanner := &clean.Scanner{
		Catalog:   catalog,
		Policy:    safety.NewPolicy(home),
		Whitelist: wl,
	}

	items, err := runScan(cmd.Context(), scanner)
	if errors.Is(err, context.Canceled) {
		fmt.Println("Aborted.")
		return nil
	}
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	printPlan(items)

	if dryRun {
		// Exercise the real execution path against a recording trasher so
		// the preview reflects exactly what a live run would move.
		executor := &clean.Executor{Policy: scanner.Policy, Trasher: &trash.NopTrasher{}}
		result := executor.Run(clean.CandidatesFromItems(clean.SelectedItems(items)))
		fmt.Println(ui.MutedStyle.Render(fmt.Sprintf(
			"Dry run: %d items (%s) would move to the Trash; nothing was deleted.",
			result.SuccessCount, ui.FormatSize(result.FreedBytes))))
		return nil
	}
	if !cleanYes && !confirm(fmt.Sprintf("Move %d items (%s) to the Trash?",
		len(items), ui.FormatSize(clean.TotalSize(items)))) {
		fmt.Println("Aborted.")
		return nil
	}

	executor := &clean.Executor{
		Policy:  scanner.Policy,
		Trasher: trash.NewUserTrasher(home),
	}
	result := executor.Run(clean.CandidatesFromItems(clean.SelectedItems(items)))
	printResult(result)
	return nil
}

// runScan runs the scanner, with a spinner view on interactive sessions.
// Quitting the spinner cancels the scan and surfaces context.Canceled.
func runScan(ctx context.Context, scanner *clean.Scanner) ([]clean.Item, error) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return scanner.Scan(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(tui.NewScanModel(len(scanner.Catalog)))
	scanner.OnProgress = func(done, total int, description string) {
		prog.Send(tui.ProgressMsg{Done: done, Total: total, Description: description})
	}

	type outcome struct {
		items []clean.Item
		err   error
	}
	ch := make(chan outcome, 1)
	go func() {
		items, err := scanner.Scan(ctx)
		ch <- outcome{items, err}
		prog.Send(tui.DoneMsg{})
	}()

	final, err := prog.Run()
	if err != nil {
		cancel()
		<-ch
		return nil, err
	}
	if m, ok := final.(tui.ScanModel); ok && m.Cancelled() {
		cancel()
		<-ch
		return nil, context.Canceled
	}
	out := <-ch
	return out.items, out.err
}

// printPlan renders the scan results grouped by category.
func printPlan(items []clean.Item) {
	fmt.Println(ui.TitleStyle.Render("Cleanup plan"))

	const maxRows = 25
	for i, item := range items {
		if i == maxRows {
			fmt.Printf("  %s\n", ui.MutedStyle.Render(
				fmt.Sprintf("... and %d more items", len(items)-maxRows)))
			break
		}
		marker := "  "
		if item.RequiresRoot {
			marker = ui.WarnStyle.Render("! ")
		}
		fmt.Printf("  %s%-10s %10s  %s\n",
			marker, item.Category, ui.FormatSize(item.Size),
			ui.MutedStyle.Render(item.Path))
	}
	fmt.Printf("  Total: %s in %d items\n\n",
		ui.FormatSize(clean.TotalSize(items)), len(items))
}

// printResult renders the batch outcome and the volume's free space.
func printResult(result clean.Result) {
	fmt.Printf("%s %d items, %s freed\n",
		ui.OKStyle.Render("Cleaned"), result.SuccessCount,
		ui.FormatSize(result.FreedBytes))
	if result.FailedCount > 0 {
		fmt.Printf("%s %d items:\n", ui.ErrStyle.Render("Failed"), result.FailedCount)
		for _, itemErr := range result.Errors {
			fmt.Printf("  %s\n", ui.ErrStyle.Render(itemErr.Error()))
		}
	}
	if usage, err := disk.Usage("/"); err == nil {
		fmt.Printf("%s free on /\n", ui.FormatSize(int64(usage.Free)))
	}
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
