package searcher

import (
	"math"
	"testing"

	"uct/game"
	"uct/game/tictactoe"

	"github.com/stretchr/testify/require"
)

/*
Tests the tree operations on tic-tac-toe positions:
- leaf / fully expanded / terminal predicates
- child creation: expansion order, duplicate actions
- statistics: update by outcome from the mover's perspective
- selection: UCT with unvisited sentinel and first-seen ties
*/

func newTicTacToeTree(t *testing.T, board string, player game.Player) *tree[tictactoe.Board, int] {
	t.Helper()
	b, err := tictactoe.ParseBoard(board)
	require.NoError(t, err)
	return newTree[tictactoe.Board, int](tictactoe.Rules{}, b, player)
}

// expandAll adds a child for every legal action of id in legal order.
func expandAll(t *testing.T, tr *tree[tictactoe.Board, int], id NodeID) []NodeID {
	t.Helper()
	n := tr.nodes[id]
	children := []NodeID{}
	for _, action := range tr.legalActions(id) {
		state, err := tr.rules.Apply(n.state, action, n.player)
		require.NoError(t, err)
		child, err := tr.addChild(id, state, action, tr.rules.OtherPlayer(n.player))
		require.NoError(t, err)
		children = append(children, child)
	}
	return children
}

func TestTreeRoot(t *testing.T) {
	tr := newTicTacToeTree(t, ".........", game.PlayerOne)

	root := tr.nodes[rootID]
	require.Equal(t, NoParent, root.parent, "Root should have no parent")
	require.Equal(t, game.PlayerOne, root.player)
	require.Equal(t, game.PlayerTwo, root.mover, "Root mover should be the opponent of the player to move")
	require.Zero(t, root.visits)
	require.Zero(t, root.value)
	require.Equal(t, 1, tr.size())
}

func TestTreeAddChild(t *testing.T) {
	t.Run("appends children in expansion order", func(t *testing.T) {
		tr := newTicTacToeTree(t, ".........", game.PlayerOne)
		require.True(t, tr.isLeaf(rootID), "New root should be a leaf")

		state, err := tr.rules.Apply(tr.nodes[rootID].state, 4, game.PlayerOne)
		require.NoError(t, err)
		first, err := tr.addChild(rootID, state, 4, game.PlayerTwo)
		require.NoError(t, err)

		state, err = tr.rules.Apply(tr.nodes[rootID].state, 0, game.PlayerOne)
		require.NoError(t, err)
		second, err := tr.addChild(rootID, state, 0, game.PlayerTwo)
		require.NoError(t, err)

		require.False(t, tr.isLeaf(rootID))
		require.Equal(t, []NodeID{first, second}, tr.nodes[rootID].children)
		require.Equal(t, rootID, tr.nodes[first].parent)
		require.Equal(t, 4, tr.nodes[first].action)
		require.Equal(t, game.PlayerTwo, tr.nodes[first].player)
		require.Equal(t, game.PlayerOne, tr.nodes[first].mover)
		require.Equal(t, tictactoe.X, tr.nodes[first].state[4])
		require.Equal(t, tictactoe.Board{}, tr.nodes[rootID].state, "Parent state should not change")
		require.NotContains(t, tr.nodes[rootID].untried, 4, "Expanded actions should not stay untried")
		require.NotContains(t, tr.nodes[rootID].untried, 0)
	})

	t.Run("rejects a second child for the same action", func(t *testing.T) {
		tr := newTicTacToeTree(t, ".........", game.PlayerOne)
		state, err := tr.rules.Apply(tr.nodes[rootID].state, 2, game.PlayerOne)
		require.NoError(t, err)

		_, err = tr.addChild(rootID, state, 2, game.PlayerTwo)
		require.NoError(t, err)
		_, err = tr.addChild(rootID, state, 2, game.PlayerTwo)

		require.ErrorIs(t, err, ErrDuplicateAction)
		require.Len(t, tr.nodes[rootID].children, 1, "Duplicate child should not be added")
	})
}

func TestTreeIsFullyExpanded(t *testing.T) {
	tr := newTicTacToeTree(t, "XO.OX.XO.", game.PlayerTwo)
	legal := tr.legalActions(rootID)
	require.Equal(t, []int{2, 5, 8}, legal)

	n := tr.nodes[rootID]
	for i, action := range legal {
		require.False(t, tr.isFullyExpanded(rootID), "Node with %d of %d children should not be fully expanded", i, len(legal))
		state, err := tr.rules.Apply(n.state, action, n.player)
		require.NoError(t, err)
		_, err = tr.addChild(rootID, state, action, game.PlayerOne)
		require.NoError(t, err)
	}
	require.True(t, tr.isFullyExpanded(rootID), "Node should be fully expanded once every legal action has a child")

	tr.update(rootID, game.Draw)
	require.True(t, tr.isFullyExpanded(rootID), "Node should stay fully expanded")
	require.Empty(t, tr.nodes[rootID].untried)
}

func TestTreeIsTerminal(t *testing.T) {
	tests := []struct {
		name    string
		board   string
		want    bool
		outcome game.Outcome
	}{
		{"running game", "X...O....", false, game.InProgress},
		{"won game with empty cells", "XXXOO....", true, game.PlayerOneWins},
		{"drawn game", "XOXXOOOXX", true, game.Draw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTicTacToeTree(t, tt.board, game.PlayerOne)
			require.Equal(t, tt.want, tr.isTerminal(rootID))
			require.Equal(t, tt.outcome, tr.outcome(rootID))
		})
	}
}

func TestTreeUpdate(t *testing.T) {
	t.Run("scores outcomes from the mover's perspective", func(t *testing.T) {
		tr := newTicTacToeTree(t, ".........", game.PlayerTwo) // mover is PlayerOne

		tr.update(rootID, game.Draw)
		require.Equal(t, 0.0, tr.nodes[rootID].value, "Draw should add nothing")

		tr.update(rootID, game.PlayerOneWins)
		require.Equal(t, 1.0, tr.nodes[rootID].value, "Mover win should add a win")

		tr.update(rootID, game.PlayerTwoWins)
		require.Equal(t, 0.0, tr.nodes[rootID].value, "Opponent win should add a loss")

		require.Equal(t, 3, tr.nodes[rootID].visits)
	})

	t.Run("accumulates wins minus losses over k updates", func(t *testing.T) {
		tr := newTicTacToeTree(t, ".........", game.PlayerTwo)
		outcomes := []game.Outcome{
			game.PlayerOneWins, game.PlayerTwoWins, game.Draw, game.PlayerOneWins,
			game.PlayerOneWins, game.Draw, game.PlayerTwoWins, game.PlayerOneWins,
		}
		for _, o := range outcomes {
			tr.update(rootID, o)
		}
		require.Equal(t, len(outcomes), tr.nodes[rootID].visits)
		require.Equal(t, 4.0-2.0, tr.nodes[rootID].value)
	})
}

func TestTreeScore(t *testing.T) {
	tr := newTicTacToeTree(t, ".........", game.PlayerOne)
	state, err := tr.rules.Apply(tr.nodes[rootID].state, 1, game.PlayerOne)
	require.NoError(t, err)
	child, err := tr.addChild(rootID, state, 1, game.PlayerTwo)
	require.NoError(t, err)

	require.Equal(t, math.Inf(1), tr.score(child, CSquared), "Unvisited node should score the maximum")

	tr.update(rootID, game.PlayerOneWins)
	tr.update(child, game.PlayerOneWins)
	require.Equal(t, 1.0, tr.score(child, CSquared), "exploitation = 1, exploration = 0")

	tr.update(rootID, game.PlayerTwoWins)
	tr.update(child, game.PlayerTwoWins)
	require.InDelta(t, math.Sqrt(2*math.Log(2)/2), tr.score(child, CSquared), 1e-12,
		"exploitation = 0, exploration reads the parent visits at comparison time")
}

func TestTreeBestChild(t *testing.T) {
	t.Run("fails on a leaf", func(t *testing.T) {
		tr := newTicTacToeTree(t, ".........", game.PlayerOne)
		_, err := tr.bestChild(rootID, DefaultExploration)
		require.ErrorIs(t, err, ErrEmptyChildren)
	})

	t.Run("prefers unvisited children", func(t *testing.T) {
		tr := newTicTacToeTree(t, "XO.OX.XO.", game.PlayerTwo)
		children := expandAll(t, tr, rootID)
		for i := 0; i < 5; i++ {
			tr.update(rootID, game.PlayerTwoWins)
			tr.update(children[0], game.PlayerTwoWins)
			tr.update(rootID, game.PlayerTwoWins)
			tr.update(children[2], game.PlayerTwoWins)
		}

		got, err := tr.bestChild(rootID, DefaultExploration)
		require.NoError(t, err)
		require.Equal(t, children[1], got, "Unvisited child should win over visited siblings")
	})

	t.Run("picks the highest UCT value", func(t *testing.T) {
		tr := newTicTacToeTree(t, "XO.OX.XO.", game.PlayerTwo) // children moved by PlayerTwo
		children := expandAll(t, tr, rootID)
		results := []game.Outcome{game.PlayerOneWins, game.PlayerTwoWins, game.Draw}
		for i, c := range children {
			tr.update(rootID, results[i])
			tr.update(c, results[i])
		}

		got, err := tr.bestChild(rootID, DefaultExploration)
		require.NoError(t, err)
		require.Equal(t, children[1], got, "Child that won for its mover should be selected")
	})

	t.Run("breaks ties by expansion order", func(t *testing.T) {
		tr := newTicTacToeTree(t, "XO.OX.XO.", game.PlayerTwo)
		children := expandAll(t, tr, rootID)
		for _, c := range children {
			tr.update(rootID, game.Draw)
			tr.update(c, game.Draw)
		}

		got, err := tr.bestChild(rootID, DefaultExploration)
		require.NoError(t, err)
		require.Equal(t, children[0], got, "First child should win ties")
	})

	t.Run("exploration favours less visited children", func(t *testing.T) {
		tr := newTicTacToeTree(t, "XO.OX.XO.", game.PlayerTwo)
		children := expandAll(t, tr, rootID)
		for i := 0; i < 10; i++ {
			tr.update(rootID, game.Draw)
			tr.update(children[0], game.Draw)
		}
		tr.update(rootID, game.Draw)
		tr.update(children[1], game.Draw)
		tr.update(rootID, game.Draw)
		tr.update(children[2], game.Draw)

		got, err := tr.bestChild(rootID, DefaultExploration)
		require.NoError(t, err)
		require.Equal(t, children[1], got, "Equal means should favour the least visited child")

		got, err = tr.bestChild(rootID, 0)
		require.NoError(t, err)
		require.Equal(t, children[0], got, "Without exploration equal means should tie on the first child")
	})
}

func TestTreeMostVisited(t *testing.T) {
	tr := newTicTacToeTree(t, "XO.OX.XO.", game.PlayerTwo)
	_, err := tr.mostVisited(rootID)
	require.ErrorIs(t, err, ErrEmptyChildren)

	children := expandAll(t, tr, rootID)
	tr.update(children[1], game.PlayerOneWins)
	tr.update(children[1], game.PlayerOneWins)
	tr.update(children[2], game.PlayerTwoWins)
	tr.update(children[2], game.PlayerTwoWins)

	got, err := tr.mostVisited(rootID)
	require.NoError(t, err)
	require.Equal(t, children[1], got, "Most visited child should win regardless of value, first on ties")
}
