package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/veldrin/ce-autostart/internal/steam"
)

var refreshCacheCmd = &cobra.Command{
	Use:   "refresh-cache",
	Short: "Refresh the cached Steam app list",
	Long: `Fetch the full Steam app list from the public API and rewrite the
local cache. The cache is normally refreshed automatically once it is older
than seven days; this forces it.`,
	RunE: runRefreshCache,
}

func runRefreshCache(cmd *cobra.Command, args []string) error {
	fmt.Println("Updating Steam app list cache...")
	count, err := steam.NewAppListCache(steam.DefaultCacheDir()).Refresh()
	if err != nil {
		return err
	}
	fmt.Printf("Cache updated with %d apps\n", count)
	return nil
}
