package types

// MatchKind identifies which step of the match pipeline produced an
// assignment.
type MatchKind string

const (
	// MatchOverride means the record was pinned in the overrides file.
	MatchOverride MatchKind = "override"

	// MatchName means the normalized primary name hit an index key.
	MatchName MatchKind = "name"

	// MatchAlias means a normalized alias hit an index key.
	MatchAlias MatchKind = "alias"

	// MatchParts means the substring fallback over name parts hit.
	MatchParts MatchKind = "parts"
)

// Assignment records one record/image pairing produced by a run.
type Assignment struct {
	RecordName string    `json:"record"`
	Image      string    `json:"image"`
	Kind       MatchKind `json:"kind"`
}
