package cmd

import (
	"fmt"
	"io"

	"ez-sync/internal/config"
	"ez-sync/internal/logger"
	"ez-sync/internal/profile"
	"ez-sync/internal/progress"
	"ez-sync/internal/resolver"
	"ez-sync/internal/store"
	"ez-sync/internal/syncer"

	"github.com/spf13/cobra"
)

// run loads the store, resolves action against it and carries the result
// out. The store is saved only after a mutation succeeded, and never for
// read-only commands.
func run(cmd *cobra.Command, action resolver.Action) error {
	path, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	logger.Debug("[DEBUG] Using profile store %s\n", path)

	st, err := store.Load(path)
	if err != nil {
		return err
	}

	command, err := resolver.Resolve(st, action)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch c := command.(type) {
	case resolver.Batch:
		return runBatch(out, c.Syncs)

	case resolver.Listing:
		if len(c.Profiles) == 0 {
			logger.Info("[INFO] No profiles in %s, add one with 'ez-sync add <name> <local> <remote>'\n", path)
		}
		printProfiles(out, c.Profiles)
		return nil
	}

	changed, err := resolver.Apply(st, command)
	if err != nil {
		return err
	}
	if resolver.Mutates(command) {
		if err := st.Save(path); err != nil {
			return err
		}
	}

	switch command.(type) {
	case resolver.PendingAdd:
		fmt.Fprintln(out, "Profile added")
	case resolver.PendingRemove:
		fmt.Fprintln(out, "Profile/s removed")
	}
	printProfiles(out, changed)
	return nil
}

// runBatch syncs every entry concurrently and fails if any of them failed.
func runBatch(out io.Writer, syncs []profile.Sync) error {
	if len(syncs) == 0 {
		logger.Warn("[WARN] Nothing to sync\n")
		return nil
	}

	board := progress.New(out)
	rsync := syncer.NewRsync()
	rsync.Binary = rsyncPath
	results := syncer.New(rsync, board).Run(syncs)
	board.Close()

	if err := syncer.Failed(results); err != nil {
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				logger.Error("[ERROR] %v\n", r.Err)
			}
		}
		return fmt.Errorf("%d of %d sync(s) failed", failed, len(results))
	}
	return nil
}

func printProfiles(out io.Writer, profiles []profile.Profile) {
	for _, p := range profiles {
		fmt.Fprintln(out, p)
	}
}
