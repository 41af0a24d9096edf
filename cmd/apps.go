package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Prot10/MyMacCleaner-sub003/internal/apps"
	"github.com/Prot10/MyMacCleaner-sub003/internal/ui"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List installed applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}

		installed := apps.InstalledApps(apps.DefaultAppDirs(home)...)
		if len(installed) == 0 {
			fmt.Println("No applications found.")
			return nil
		}

		fmt.Println(ui.TitleStyle.Render("Installed applications"))
		for _, app := range installed {
			version := app.Version
			if version == "" {
				version = "-"
			}
			fmt.Printf("  %10s  %-32s %-10s %s\n",
				ui.FormatSize(app.Size), app.Name, version,
				ui.MutedStyle.Render(app.BundleID))
		}
		fmt.Printf("\n%d applications\n", len(installed))
		return nil
	},
}
