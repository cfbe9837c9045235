package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickRootSingleElement(t *testing.T) {
	for i := 0; i < 10; i++ {
		got, err := PickRoot([]string{"silkworm"})
		require.NoError(t, err)
		require.Equal(t, "silkworm", got)
	}
}

func TestPickRootEmptyList(t *testing.T) {
	_, err := PickRoot(nil)
	require.ErrorIs(t, err, ErrNoCandidates)

	_, err = PickRoot([]string{})
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestPickRootReturnsCandidate(t *testing.T) {
	candidates := []string{"notebook", "keyboard", "triangle"}
	set := map[string]bool{}
	for _, c := range candidates {
		set[c] = true
	}
	for i := 0; i < 50; i++ {
		got, err := PickRoot(candidates)
		require.NoError(t, err)
		require.True(t, set[got], "picked %q not in candidates", got)
	}
}
