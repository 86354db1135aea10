package main

import (
	"ez-sync/cmd" // CLI commands and execution logic
)

// main is the program entry point and delegates to cmd.Execute().
//
// ez-sync keeps named pairs of folders, a local path and a remote path, in a
// YAML profile store and mirrors them with rsync in either direction:
//   - push copies local onto remote, pull copies remote onto local
//   - profiles can be grouped one level deep ("work.notes"); naming a group
//     syncs every profile in it, and "all" syncs every profile in the store
//   - each sync runs in its own goroutine with a live status line, and one
//     failing sync never stops the others
//
// The store lives in the user's config directory unless --config points
// elsewhere. It is loaded once per command and written back only by add and
// remove.
func main() {
	cmd.Execute()
}
