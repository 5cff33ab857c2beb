// Package selection parses operator input selecting records from a
// numbered listing.
package selection

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind classifies a parsed selection.
type Kind int

const (
	// KeepAll is a blank input: nothing is selected, nothing is deleted.
	KeepAll Kind = iota
	// All selects every displayed record. It requires its own
	// confirmation step before the shared deletion confirmation.
	All
	// Indexed selects the records at Selection.Indices.
	Indexed
)

// Selection is the validated result of parsing one input line.
type Selection struct {
	Kind    Kind
	Indices []int // sorted, de-duplicated; set only for Indexed
}

// ParseError reports invalid selection input. The whole input is
// rejected; no partial selection is ever produced.
type ParseError struct {
	Token   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid selection %q: %s", e.Token, e.Message)
}

// isSeparator matches the characters a selection line is split on.
func isSeparator(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == ';'
}

// Parse turns one operator input line into a Selection against a
// listing of count records.
func Parse(line string, count int) (Selection, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Selection{Kind: KeepAll}, nil
	}
	if strings.EqualFold(trimmed, "all") {
		return Selection{Kind: All}, nil
	}

	tokens := strings.FieldsFunc(trimmed, isSeparator)
	if len(tokens) == 0 {
		// Separator-only input carries no selection, same as blank.
		return Selection{Kind: KeepAll}, nil
	}

	seen := make(map[int]bool)
	for _, token := range tokens {
		n, err := strconv.Atoi(token)
		if err != nil {
			return Selection{}, &ParseError{Token: token, Message: "not a number"}
		}
		if n < 0 || n >= count {
			return Selection{}, &ParseError{
				Token:   token,
				Message: fmt.Sprintf("index out of range [0, %d)", count),
			}
		}
		seen[n] = true
	}

	indices := make([]int, 0, len(seen))
	for n := range seen {
		indices = append(indices, n)
	}
	sort.Ints(indices)
	return Selection{Kind: Indexed, Indices: indices}, nil
}
