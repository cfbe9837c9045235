// internal/game/letters.go
//
// Letter availability for composability checks.
// A Multiset counts how many of each letter a–z the root word provides.
// Contains answers "can this word be spelled from those letters?" without
// consuming them, so the same multiset serves every submission in a session.

package game

// Multiset is a count-per-letter bag over lowercase ASCII letters.
type Multiset struct {
	counts [26]int
}

// NewMultiset builds the letter counts for word.
// Runes outside a–z are ignored here; Contains rejects them on query.
func NewMultiset(word string) Multiset {
	var m Multiset
	for _, r := range word {
		if j := idx(r); j >= 0 && j < 26 {
			m.counts[j]++
		}
	}
	return m
}

// Contains reports whether every letter of word, counted with multiplicity,
// can be drawn from the multiset. The check decrements a scratch copy of the
// counts, so the multiset itself is never mutated. A rune outside a–z, or a
// letter demanded more times than the root provides it, fails the check
// (root "silkworm" has one 's', so "kiss" is not spellable).
func (m Multiset) Contains(word string) bool {
	remaining := m.counts
	for _, r := range word {
		j := idx(r)
		if j < 0 || j >= 26 || remaining[j] == 0 {
			return false
		}
		remaining[j]--
	}
	return true
}

// Count returns how many of letter r the multiset holds.
func (m Multiset) Count(r rune) int {
	if j := idx(r); j >= 0 && j < 26 {
		return m.counts[j]
	}
	return 0
}

// Size returns the total number of letters in the multiset.
func (m Multiset) Size() int {
	n := 0
	for _, c := range m.counts {
		n += c
	}
	return n
}

// idx maps a lowercase ASCII letter rune to 0..25.
func idx(r rune) int { return int(r - 'a') }
