package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"yhmonitor/internal/snapshot"
)

var flagPruneKeep int

// newPruneCmd creates the prune command
func newPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old snapshots beyond the retention count",
		Long: `Delete the oldest snapshots of every source, keeping the most
recent ones. The count comes from --keep or storage.keep in the config.`,
		RunE: runPrune,
	}

	cmd.Flags().IntVar(&flagPruneKeep, "keep", 0, "Snapshots to keep per source (defaults to storage.keep)")

	return cmd
}

// runPrune applies the retention policy to every source
func runPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	keep := flagPruneKeep
	if keep <= 0 {
		keep = cfg.Storage.Keep
	}
	if keep <= 0 {
		return fmt.Errorf("nothing to prune: set --keep or storage.keep")
	}

	store, err := snapshot.New(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sources, err := store.Sources()
	if err != nil {
		return fmt.Errorf("listing sources: %w", err)
	}

	total := 0
	for _, source := range sources {
		removed, err := store.Prune(source, keep)
		if err != nil {
			return fmt.Errorf("pruning %s: %w", source, err)
		}
		if removed > 0 {
			fmt.Printf("[%s] Removed %d old snapshot(s).\n", source, removed)
		}
		total += removed
	}

	if total == 0 {
		fmt.Println("Nothing to prune.")
	}

	return nil
}
