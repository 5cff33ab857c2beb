// Package ruleset defines the ruleset registration record and its
// identity and ordering rules.
package ruleset

// OnlineID values 0-3 are reserved for the client's built-in rulesets.
const (
	officialIDMin = 0
	officialIDMax = 3
)

// Record is one ruleset registration as persisted by the client.
// This tool only reads and deletes records; it never creates or mutates them.
type Record struct {
	ShortName                    string
	OnlineID                     int
	Name                         string
	InstantiationInfo            string
	LastAppliedDifficultyVersion int
	Available                    bool
}

// Key returns the value a record is identified by store-wide.
func (r Record) Key() string { return r.ShortName }

// Equal reports whether two records identify the same ruleset.
// Identity is the ShortName alone; all other fields are ignored.
func (r Record) Equal(other Record) bool { return r.ShortName == other.ShortName }

// Official reports whether the record occupies the reserved OnlineID range.
func (r Record) Official() bool {
	return r.OnlineID >= officialIDMin && r.OnlineID <= officialIDMax
}

// Less is the total order over records: officially assigned IDs
// (OnlineID >= 0) sort before locally defined ones, non-negative IDs
// order numerically, and remaining ties fall back to byte-wise
// ShortName comparison.
func Less(a, b Record) bool {
	aAssigned := a.OnlineID >= 0
	bAssigned := b.OnlineID >= 0
	if aAssigned != bAssigned {
		return aAssigned
	}
	if aAssigned && a.OnlineID != b.OnlineID {
		return a.OnlineID < b.OnlineID
	}
	return a.ShortName < b.ShortName
}

// DisplayLess orders records for operator-facing listings: ascending
// OnlineID with a byte-wise ShortName tiebreak.
func DisplayLess(a, b Record) bool {
	if a.OnlineID != b.OnlineID {
		return a.OnlineID < b.OnlineID
	}
	return a.ShortName < b.ShortName
}
