// internal/game/selector.go
//
// Root-word selection. Picks uniformly at random from a caller-supplied
// candidate list; the caller owns the policy for an empty list (fall back
// to a default, or treat it as a fatal startup error).

package game

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// ErrNoCandidates is returned when the candidate list is empty.
var ErrNoCandidates = errors.New("game: no root word candidates")

// PickRoot returns a uniformly random element of candidates.
func PickRoot(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	if err != nil {
		return "", err
	}
	return candidates[nBig.Int64()], nil
}
