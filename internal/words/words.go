// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load the root-word candidate list and the dictionary from
//     environment-provided files or fall back to embedded defaults.
//   - Maintain a lookup set for fast dictionary queries.
//   - Supply RandomRoot, IsWord, Roots, and Stats.
//
// Word lists:
//   - "roots":      candidate root words (length ≥ MinRootLen).
//   - "dictionary": every word a player may score (always includes roots).
//
// Initialization behavior (Init):
//   1. If WORDS_ROOTS_FILE and WORDS_DICT_FILE are both set,
//      load roots from the first and the dictionary from the second.
//   2. If only WORDS_DICT_FILE is set,
//      load that file as the dictionary and take roots from it
//      (every long-enough dictionary word becomes a candidate).
//   3. If neither is set, fall back to the embedded defaults in assets.
//
// Environment variables:
//   WORDS_ROOTS_FILE=/path/to/roots.txt
//   WORDS_DICT_FILE=/path/to/dictionary.txt
//
// Constraints:
//   • Words must be lowercase ASCII letters a–z; other lines are dropped.
//   • Roots shorter than MinRootLen are dropped.
//   • Initialization runs once (sync.Once).

package words

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"spellbound/assets"
	"spellbound/internal/game"
)

// MinRootLen is the shortest root word kept by the loaders.
const MinRootLen = game.DefaultMinRootLen

var (
	initOnce   sync.Once
	roots      []string            // candidate root words
	dictionary map[string]struct{} // all scorable words (roots ∪ dictionary list)
	initialErr error
)

// Init loads word lists exactly once.
// Returns an error if the root candidate list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var rootList, dictList []string

		rootsPath := os.Getenv("WORDS_ROOTS_FILE")
		dictPath := os.Getenv("WORDS_DICT_FILE")

		switch {
		// Case 1: both lists provided
		case rootsPath != "" && dictPath != "":
			var err error
			rootList, err = readWordFile(rootsPath, MinRootLen)
			if err != nil {
				initialErr = err
				return
			}
			dictList, err = readWordFile(dictPath, 1)
			if err != nil {
				initialErr = err
				return
			}

		// Case 2: only dictionary provided → roots come from it
		case rootsPath == "" && dictPath != "":
			var err error
			dictList, err = readWordFile(dictPath, 1)
			if err != nil {
				initialErr = err
				return
			}
			rootList = filterMinLen(dictList, MinRootLen)

		// Case 3: fallback to embedded defaults
		default:
			var err error
			rootList, err = assets.RootsList()
			if err != nil {
				initialErr = err
				return
			}
			dictList, err = assets.DictionaryList()
			if err != nil {
				initialErr = err
				return
			}
			rootList = filterMinLen(keepAlpha(rootList), MinRootLen)
			dictList = keepAlpha(dictList)
		}

		roots = rootList

		// Every root is also a scorable dictionary word.
		dictionary = toSet(dictList)
		for _, w := range rootList {
			dictionary[w] = struct{}{}
		}

		if len(roots) == 0 {
			initialErr = game.ErrNoCandidates
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file: lowercases, trims,
// skips comments, and keeps alphabetic words of at least minLen letters.
func readWordFile(path string, minLen int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if len(w) >= minLen && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// keepAlpha drops any entries with characters outside a–z.
func keepAlpha(list []string) []string {
	out := list[:0:0]
	for _, w := range list {
		if isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// filterMinLen keeps entries of at least n letters.
func filterMinLen(list []string, n int) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if len(w) >= n {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomRoot picks a uniformly random root word from the loaded candidates.
// Returns game.ErrNoCandidates if the list is empty (Init not run, or the
// configured lists were empty).
func RandomRoot() (string, error) {
	return game.PickRoot(roots)
}

// Roots returns the loaded root-word candidates.
func Roots() []string { return roots }

// IsWord reports whether w is in the dictionary. Satisfies game.Dictionary
// via game.DictionaryFunc(words.IsWord).
func IsWord(w string) bool {
	_, ok := dictionary[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (roots, dictionary).
func Stats() (rootCount int, dictCount int) {
	return len(roots), len(dictionary)
}
