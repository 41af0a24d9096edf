package cmd

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/cobra"

	"github.com/Prot10/MyMacCleaner-sub003/internal/core"
	"github.com/Prot10/MyMacCleaner-sub003/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show host and volume status",
	RunE: func(cmd *cobra.Command, args []string) error {
		usage, err := disk.Usage("/")
		if err != nil {
			return fmt.Errorf("read volume usage: %w", err)
		}

		fmt.Println(ui.TitleStyle.Render(core.MacOSVersionString()))
		fmt.Println()
		fmt.Println(ui.TitleStyle.Render("Volume /"))
		fmt.Printf("  Total: %s\n", ui.FormatSize(int64(usage.Total)))
		fmt.Printf("  Used:  %s (%.1f%%)\n", ui.FormatSize(int64(usage.Used)), usage.UsedPercent)
		fmt.Printf("  Free:  %s\n", ui.FormatSize(int64(usage.Free)))
		return nil
	},
}
