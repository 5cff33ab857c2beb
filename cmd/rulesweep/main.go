// Package main provides the rulesweep CLI entry point.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rulesweep/internal/locate"
	"rulesweep/internal/store"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rulesweep [path]",
	Short: "Remove custom rulesets from a client database",
	Long: `rulesweep lists the custom rulesets registered in a client database
and deletes an interactively selected subset.

The database is located from the path argument, the TACHYON_STORAGE_PATH
or TACHYON_DATA_PATH environment variables, the tool configuration, or
the client's per-user data directory (honoring a FullPath override in
storage.ini). The path argument may name the database file or its
containing directory.

Official rulesets (OnlineID 0-3) are never listed or deleted. Deletion
is irreversible and requires typing 'yes' at the confirmation prompt.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSweep,
}

func init() {
	rootCmd.Version = Version
}

func runSweep(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	explicit := ""
	if len(args) == 1 {
		explicit = args[0]
	}

	path, err := locate.Resolve(explicit)
	if err != nil {
		return err
	}

	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer st.Close()

	records, err := st.Deletable()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No custom rulesets found; nothing to delete.")
		return nil
	}

	printListing(st, records)

	targets, err := chooseTargets(bufio.NewReader(os.Stdin), records)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return nil
	}

	removed, err := st.Delete(targets)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d ruleset(s).\n", removed)
	return nil
}
