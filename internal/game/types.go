// internal/game/types.go
//
// Core type definitions for the word-builder game engine.
// Defines:
//   - Reason: why a submission was rejected.
//   - Outcome: result of a single submission (accepted+points, or a reason).
//   - Dictionary: oracle answering "is this a real word?".
//   - Session: state for a single in-progress game.

package game

// Reason identifies which validation rule rejected a submission.
// Possible values:
//   - "too_short":    normalized word has fewer than MinLen letters.
//   - "matches_root": word is exactly the root word.
//   - "already_used": word was already accepted this session.
//   - "not_possible": word cannot be spelled from the root word's letters.
//   - "not_a_word":   word is not in the dictionary.
type Reason string

const (
	TooShort    Reason = "too_short"
	MatchesRoot        = "matches_root"
	AlreadyUsed        = "already_used"
	NotPossible        = "not_possible"
	NotAWord           = "not_a_word"
)

// Outcome is the result of one submission. It is a value, never an error:
// rejections are expected behavior, and the caller decides how to show them.
type Outcome struct {
	Accepted bool   `json:"accepted"`         // True if the word passed every check and was scored.
	Points   int    `json:"points"`           // Points awarded (0 when rejected).
	Reason   Reason `json:"reason,omitempty"` // Set only when rejected.
}

// Dictionary answers whether a string is a recognized English word.
// Implementations may be a static word-list lookup, an external service,
// or a fake in tests; input is assumed lowercase.
type Dictionary interface {
	IsValid(word string) bool
}

// DictionaryFunc adapts a plain function to the Dictionary interface.
type DictionaryFunc func(word string) bool

func (f DictionaryFunc) IsValid(word string) bool { return f(word) }

// Session holds the state of a single word-builder game.
// Mutate it only through Submit; everything else is read-only.
type Session struct {
	ID     string   // Unique session identifier (UUID).
	Root   string   // The root word bounding all submissions (lowercase).
	Words  []string // Accepted words in the order they were played.
	Score  int      // Running score; one point per letter of each accepted word.
	MinLen int      // Minimum accepted word length (default 3).

	letters Multiset   // Available letters, derived from Root at creation.
	dict    Dictionary // External word oracle.
}
