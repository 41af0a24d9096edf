package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Prot10/MyMacCleaner-sub003/internal/config"
	"github.com/Prot10/MyMacCleaner-sub003/internal/perms"
	"github.com/Prot10/MyMacCleaner-sub003/internal/ui"
)

var permsFull bool

var permsCmd = &cobra.Command{
	Use:   "perms",
	Short: "Check folder access permissions",
	Long: "Probes the folders the engine needs to read. The default pass skips\n" +
		"folders whose first access would trigger a macOS consent dialog; run\n" +
		"with --full to probe those too.",
	RunE: runPerms,
}

func init() {
	permsCmd.Flags().BoolVar(&permsFull, "full", false, "Probe consent-gated folders as well")
}

func runPerms(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	monitor := perms.NewMonitor(config.AccessFolders(home), perms.FSProber{})
	if permsFull {
		err = monitor.RunFullPass(cmd.Context())
	} else {
		err = monitor.RunStartupPass(cmd.Context())
	}
	if err != nil {
		return err
	}

	folders := monitor.Folders()
	fmt.Println(ui.TitleStyle.Render("Folder access"))
	for _, folder := range folders {
		fmt.Printf("  %s %-22s %s\n",
			statusStyle(folder.Status).Render(fmt.Sprintf("%-11s", folder.Status)),
			folder.DisplayName,
			ui.MutedStyle.Render(folder.Path))
	}
	fmt.Printf("\nOverall: %s\n", perms.Rollup(folders))
	if !permsFull {
		fmt.Println(ui.MutedStyle.Render(
			"Consent-gated folders were skipped; run 'mmc perms --full' to probe them."))
	}
	return nil
}

func statusStyle(s perms.Status) interface{ Render(...string) string } {
	switch s {
	case perms.StatusAccessible:
		return ui.OKStyle
	case perms.StatusDenied:
		return ui.ErrStyle
	case perms.StatusChecking:
		return ui.WarnStyle
	default:
		return ui.MutedStyle
	}
}
