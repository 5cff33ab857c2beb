package store

import (
	"fmt"
	"sort"

	"rulesweep/internal/ruleset"
)

// selectRulesetFields is the standard field list for SELECT queries.
const selectRulesetFields = `short_name, online_id, name,
	instantiation_info, last_applied_difficulty_version, available`

// Deletable returns the records eligible for removal in display order.
// Official registrations (OnlineID 0-3) are excluded; the rest are
// ordered ascending by OnlineID with a byte-wise ShortName tiebreak.
func (s *Store) Deletable() ([]ruleset.Record, error) {
	rows, err := s.db.Query(`SELECT ` + selectRulesetFields + ` FROM rulesets`)
	if err != nil {
		return nil, fmt.Errorf("querying rulesets: %w", err)
	}
	defer rows.Close()

	var records []ruleset.Record
	for rows.Next() {
		var r ruleset.Record
		if err := rows.Scan(&r.ShortName, &r.OnlineID, &r.Name,
			&r.InstantiationInfo, &r.LastAppliedDifficultyVersion,
			&r.Available); err != nil {
			return nil, fmt.Errorf("scanning ruleset: %w", err)
		}
		if r.Official() {
			continue
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rulesets: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return ruleset.DisplayLess(records[i], records[j])
	})
	return records, nil
}

// Delete removes the given records, keyed by ShortName, inside a single
// transaction: either every record is removed or, on failure, none are.
// It returns the number of rows actually removed.
func (s *Store) Delete(records []ruleset.Record) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`DELETE FROM rulesets WHERE short_name = ?`)
	if err != nil {
		return 0, fmt.Errorf("preparing delete: %w", err)
	}
	defer stmt.Close()

	removed := 0
	for _, r := range records {
		res, err := stmt.Exec(r.ShortName)
		if err != nil {
			return 0, fmt.Errorf("deleting %s: %w", r.ShortName, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing delete: %w", err)
	}
	return removed, nil
}
