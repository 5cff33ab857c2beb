package main

import (
	"bufio"
	"fmt"
	"strings"

	"rulesweep/internal/ruleset"
	"rulesweep/internal/selection"
	"rulesweep/internal/store"
)

// printListing writes the numbered record listing to stdout.
func printListing(st *store.Store, records []ruleset.Record) {
	fmt.Printf("Store: %s (schema version %d)\n\n", st.Path, st.Version)
	for i, r := range records {
		fmt.Printf("[%d] %s | %s | OnlineID=%d\n", i, r.ShortName, r.Name, r.OnlineID)
		if r.InstantiationInfo != "" {
			fmt.Printf("    %s\n", r.InstantiationInfo)
		}
	}
	fmt.Println()
}

// chooseTargets runs the post-listing interactive flow: the selection
// prompt, the extra confirmation required when 'all' is entered, and
// the shared deletion confirmation. The 'all' confirmation never
// replaces the shared gate, even for a single-record listing. A nil
// result with a nil error means nothing is to be deleted.
func chooseTargets(in *bufio.Reader, records []ruleset.Record) ([]ruleset.Record, error) {
	sel, err := promptSelection(in, len(records))
	if err != nil {
		return nil, err
	}

	var targets []ruleset.Record
	switch sel.Kind {
	case selection.KeepAll:
		fmt.Println("Nothing selected; keeping all rulesets.")
		return nil, nil
	case selection.All:
		if !confirm(in, fmt.Sprintf("Delete ALL %d listed rulesets?", len(records))) {
			fmt.Println("Cancelled; no rulesets were deleted.")
			return nil, nil
		}
		targets = records
	case selection.Indexed:
		for _, i := range sel.Indices {
			targets = append(targets, records[i])
		}
	}

	if !confirm(in, fmt.Sprintf("Delete %d ruleset(s)? This cannot be undone.", len(targets))) {
		fmt.Println("Cancelled; no rulesets were deleted.")
		return nil, nil
	}
	return targets, nil
}

// promptSelection reads and parses one selection line. There is no
// retry loop: invalid input aborts the invocation.
func promptSelection(in *bufio.Reader, count int) (selection.Selection, error) {
	fmt.Print("Select rulesets to delete (indices, 'all', or blank to keep everything): ")
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		// EOF on stdin is the same as keeping everything.
		return selection.Selection{Kind: selection.KeepAll}, nil
	}
	return selection.Parse(line, count)
}

// confirm asks for the literal word "yes" (case-insensitive); any other
// input cancels.
func confirm(in *bufio.Reader, question string) bool {
	fmt.Printf("%s Type 'yes' to continue: ", question)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}
