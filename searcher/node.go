package searcher

import (
	"fmt"
	"math"
	"slices"

	"uct/game"
)

// NodeID is a handle into the tree's node arena.
type NodeID int

const (
	NoParent NodeID = -1
	rootID   NodeID = 0
)

type node[S any, A comparable] struct {
	parent   NodeID
	player   game.Player // to move from this node
	mover    game.Player // made the move into this node
	state    S
	action   A
	children []NodeID
	visits   int
	value    float64 // from mover's perspective

	outcome  game.Outcome
	resolved bool
	legal    []A
	untried  []A
	listed   bool
}

// tree owns every node; parents and children refer to each other by NodeID.
type tree[S any, A comparable] struct {
	rules game.Rules[S, A]
	nodes []node[S, A]
}

func newTree[S any, A comparable](rules game.Rules[S, A], state S, player game.Player) *tree[S, A] {
	t := &tree[S, A]{rules: rules, nodes: make([]node[S, A], 0, 64)}
	t.nodes = append(t.nodes, node[S, A]{
		parent: NoParent,
		player: player,
		mover:  rules.OtherPlayer(player),
		state:  state,
	})
	return t
}

func (t *tree[S, A]) size() int {
	return len(t.nodes)
}

func (t *tree[S, A]) isLeaf(id NodeID) bool {
	return len(t.nodes[id].children) == 0
}

func (t *tree[S, A]) legalActions(id NodeID) []A {
	n := &t.nodes[id]
	if !n.listed {
		n.legal = t.rules.LegalActions(n.state)
		n.untried = slices.Clone(n.legal)
		n.listed = true
	}
	return n.legal
}

func (t *tree[S, A]) isFullyExpanded(id NodeID) bool {
	return len(t.nodes[id].children) == len(t.legalActions(id))
}

func (t *tree[S, A]) outcome(id NodeID) game.Outcome {
	n := &t.nodes[id]
	if !n.resolved {
		n.outcome = t.rules.Winner(n.state)
		n.resolved = true
	}
	return n.outcome
}

func (t *tree[S, A]) isTerminal(id NodeID) bool {
	return t.outcome(id).IsOver()
}

// addChild appends a node for state, reached from id by action, with player to move.
func (t *tree[S, A]) addChild(id NodeID, state S, action A, player game.Player) (NodeID, error) {
	for _, c := range t.nodes[id].children {
		if t.nodes[c].action == action {
			return NoParent, fmt.Errorf("%w: %v", ErrDuplicateAction, action)
		}
	}

	t.legalActions(id)
	parent := &t.nodes[id]
	if i := slices.Index(parent.untried, action); i >= 0 {
		parent.untried = slices.Delete(parent.untried, i, i+1)
	}

	child := NodeID(len(t.nodes))
	parent.children = append(parent.children, child)
	t.nodes = append(t.nodes, node[S, A]{
		parent: id,
		player: player,
		mover:  t.rules.OtherPlayer(player),
		state:  state,
		action: action,
	})
	return child, nil
}

// score is the UCT value of id against its parent's current visit count. The
// root has no parent and scores its mean value.
func (t *tree[S, A]) score(id NodeID, cSquared float64) float64 {
	n := &t.nodes[id]
	parentVisits := 0
	if n.parent != NoParent {
		parentVisits = t.nodes[n.parent].visits
	}
	return newUCT(cSquared, parentVisits).evaluate(n.value, n.visits)
}

// bestChild returns the child with the highest UCT value, first in expansion order on ties.
func (t *tree[S, A]) bestChild(id NodeID, exploration float64) (NodeID, error) {
	n := &t.nodes[id]
	if len(n.children) == 0 {
		return NoParent, ErrEmptyChildren
	}

	policy := newUCT(exploration*exploration, n.visits)
	best := NoParent
	maxScore := math.Inf(-1)
	for _, c := range n.children {
		child := &t.nodes[c]
		if s := policy.evaluate(child.value, child.visits); s > maxScore || best == NoParent {
			maxScore = s
			best = c
		}
	}
	return best, nil
}

// mostVisited returns the child with the most visits, first in expansion order on ties.
func (t *tree[S, A]) mostVisited(id NodeID) (NodeID, error) {
	n := &t.nodes[id]
	if len(n.children) == 0 {
		return NoParent, ErrEmptyChildren
	}

	best := n.children[0]
	for _, c := range n.children[1:] {
		if t.nodes[c].visits > t.nodes[best].visits {
			best = c
		}
	}
	return best, nil
}

func (t *tree[S, A]) update(id NodeID, outcome game.Outcome) {
	n := &t.nodes[id]
	n.visits++
	if outcome.WonBy(n.mover) {
		n.value += Win
	} else if _, ok := outcome.Winner(); ok {
		n.value += Loss
	} else {
		n.value += Draw
	}
}

func (t *tree[S, A]) stats(id NodeID, exploration float64) NodeStats[A] {
	n := &t.nodes[id]
	mean := 0.0
	if n.visits > 0 {
		mean = n.value / float64(n.visits)
	}
	return NodeStats[A]{
		Action:  n.action,
		Player:  n.mover,
		Visits:  n.visits,
		Value:   n.value,
		Mean:    mean,
		UCT:     t.score(id, exploration*exploration),
		Outcome: t.outcome(id),
	}
}
