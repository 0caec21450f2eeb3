package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomPlayoutsKeepInvariants(t *testing.T) {
	var stats Stats
	for seed := int64(1); seed <= 20; seed++ {
		res, err := playGame(seed, 300)
		require.NoError(t, err, "seed %d", seed)
		stats.Add(res)
	}
	require.Equal(t, 20, stats.Games)
	require.Equal(t, 20, stats.WhiteWins+stats.BlackWins+stats.Stuck+stats.Unfinished)
}
