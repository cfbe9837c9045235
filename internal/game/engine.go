// internal/game/engine.go
//
// Core game engine for a single word-builder session.
// Responsibilities:
//   - Create new sessions around a root word and a dictionary oracle.
//   - Validate submissions through a fixed, ordered pipeline.
//   - Track state: accepted words (insertion order) and running score.
//
// Notes:
//   - Rejections come back as Outcome values, never errors; the session is
//     untouched on any rejection, so resubmitting the same bad word yields
//     the same reason.
//   - Checks run cheapest-first, with the dictionary lookup last.
package game

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultMinWordLen is the shortest accepted submission. Two-letter
	// words are rejected as TooShort.
	DefaultMinWordLen = 3

	// DefaultMinRootLen is the shortest usable root word; anything shorter
	// leaves no room for derived words.
	DefaultMinRootLen = 4
)

// New constructs a session for the given root word.
// The root is normalized to lowercase; its letters bound every submission.
func New(root string, dict Dictionary) *Session {
	root = strings.ToLower(strings.TrimSpace(root))
	return &Session{
		ID:      uuid.NewString(),
		Root:    root,
		Words:   []string{},
		MinLen:  DefaultMinWordLen,
		letters: NewMultiset(root),
		dict:    dict,
	}
}

// Submit validates rawInput and, if it passes every check, scores it and
// appends it to the accepted words. The bool result reports whether an
// outcome was produced at all: a submission that is blank after trimming is
// a silent no-op (false), not a TooShort rejection. A stray Enter press is
// not a mistake worth reporting.
//
// Validation order (first failure wins):
//  1. length ≥ MinLen        → TooShort
//  2. not the root itself    → MatchesRoot
//  3. not already accepted   → AlreadyUsed
//  4. spellable from root    → NotPossible
//  5. in the dictionary      → NotAWord
func (s *Session) Submit(rawInput string) (Outcome, bool) {
	word := strings.ToLower(strings.TrimSpace(rawInput))
	if word == "" {
		return Outcome{}, false
	}
	if len(word) < s.minLen() {
		return reject(TooShort), true
	}
	if word == s.Root {
		return reject(MatchesRoot), true
	}
	if s.Played(word) {
		return reject(AlreadyUsed), true
	}
	if !s.letters.Contains(word) {
		return reject(NotPossible), true
	}
	if !s.dict.IsValid(word) {
		return reject(NotAWord), true
	}

	pts := Points(word)
	s.Words = append(s.Words, word)
	s.Score += pts
	return Outcome{Accepted: true, Points: pts}, true
}

// Played reports whether word was already accepted this session.
func (s *Session) Played(word string) bool {
	for _, w := range s.Words {
		if w == word {
			return true
		}
	}
	return false
}

func (s *Session) minLen() int {
	if s.MinLen > 0 {
		return s.MinLen
	}
	return DefaultMinWordLen
}

func reject(r Reason) Outcome { return Outcome{Reason: r} }
