// internal/game/score.go
//
// Scoring policy, kept as its own unit: it is the most likely place for
// future variation (rare-letter bonuses, length multipliers) and changing
// it should not touch validation.

package game

// Points returns the score awarded for an accepted word: one point per
// letter, no bonuses.
func Points(word string) int { return len(word) }
