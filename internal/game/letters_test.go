package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultisetContains(t *testing.T) {
	m := NewMultiset("silkworm")

	tests := []struct {
		word string
		want bool
	}{
		{"works", true},    // each letter present once
		{"silk", true},     // prefix of the root
		{"worm", true},     // suffix of the root
		{"silkworm", true}, // the whole root is spellable from itself
		{"kiss", false},    // needs two 's', root has one
		{"ssss", false},    // letter reuse beyond availability
		{"milks", true},
		{"world", false}, // 'd' not in root
		{"", true},       // vacuously spellable
		{"w0rm", false},  // non-letter rune
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, m.Contains(tc.word), "Contains(%q)", tc.word)
	}
}

// Contains must never mutate the multiset: the same query repeated gives
// the same answer, and counts stay intact after any sequence of checks.
func TestMultisetContainsNonDestructive(t *testing.T) {
	m := NewMultiset("banana")

	for i := 0; i < 3; i++ {
		require.True(t, m.Contains("banana"))
		require.False(t, m.Contains("bananas"))
	}
	require.Equal(t, 3, m.Count('a'))
	require.Equal(t, 2, m.Count('n'))
	require.Equal(t, 1, m.Count('b'))
	require.Equal(t, 6, m.Size())
}

// Property: Contains(w) holds iff every distinct letter of w appears in w
// no more times than it appears in the root.
func TestMultisetContainsMatchesFrequencyDefinition(t *testing.T) {
	roots := []string{"silkworm", "banana", "abc", "zzz", "telescope"}
	words := []string{"silk", "worm", "ana", "naan", "bb", "cab", "z", "zz", "zzzz", "pest", "cool", "sleet"}

	for _, root := range roots {
		m := NewMultiset(root)
		for _, w := range words {
			want := true
			for _, r := range w {
				if strings.Count(w, string(r)) > strings.Count(root, string(r)) {
					want = false
					break
				}
			}
			require.Equal(t, want, m.Contains(w), "root=%q word=%q", root, w)
		}
	}
}

func TestMultisetCountIgnoresNonLetters(t *testing.T) {
	m := NewMultiset("a-b c")
	require.Equal(t, 1, m.Count('a'))
	require.Equal(t, 0, m.Count('-'))
	require.Equal(t, 3, m.Size())
}
