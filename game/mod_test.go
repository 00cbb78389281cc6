package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	t.Run("win for a player", func(t *testing.T) {
		require.Equal(t, PlayerOneWins, WinFor(PlayerOne))
		require.Equal(t, PlayerTwoWins, WinFor(PlayerTwo))
		require.True(t, WinFor(PlayerTwo).WonBy(PlayerTwo))
		require.False(t, WinFor(PlayerTwo).WonBy(PlayerOne))
	})

	t.Run("draws and running games have no winner", func(t *testing.T) {
		for _, o := range []Outcome{InProgress, Draw} {
			_, ok := o.Winner()
			require.False(t, ok, "%s should have no winner", o)
			require.False(t, o.WonBy(PlayerOne))
			require.False(t, o.WonBy(PlayerTwo))
		}
	})

	t.Run("only in progress is not over", func(t *testing.T) {
		require.False(t, InProgress.IsOver())
		require.True(t, Draw.IsOver())
		require.True(t, PlayerOneWins.IsOver())
	})
}

func TestPlayerValid(t *testing.T) {
	require.True(t, PlayerOne.Valid())
	require.True(t, PlayerTwo.Valid())
	require.False(t, Player(2).Valid())
}
