package searcher

import (
	"fmt"
	"time"

	"uct/experiments/metrics"
	"uct/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *settings)

type settings struct {
	exploration float64
	source      rand.Source
	ordered     bool
	metrics     metrics.Collector
}

// WithExplorationWeight sets the UCT exploration constant c.
func WithExplorationWeight(c float64) Option {
	return func(s *settings) {
		if c >= 0 {
			s.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.source = rand.NewSource(seed)
	}
}

func WithSource(source rand.Source) Option {
	return func(s *settings) {
		if source != nil {
			s.source = source
		}
	}
}

// WithOrderedExpansion expands untried actions in legal-action order instead
// of picking one at random.
func WithOrderedExpansion() Option {
	return func(s *settings) {
		s.ordered = true
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

// MCTS searches the best move for the player to move from one initial state.
// Every Search builds a new tree; nothing is shared between calls.
type MCTS[S any, A comparable] struct {
	rules       game.Rules[S, A]
	state       S
	player      game.Player
	exploration float64
	ordered     bool
	rng         *rand.Rand
	metrics     metrics.Collector
	metric      metrics.SearchMetric
	tree        *tree[S, A]
}

func NewMCTS[S any, A comparable](rules game.Rules[S, A], state S, player game.Player, options ...Option) (*MCTS[S, A], error) {
	if !player.Valid() {
		return nil, fmt.Errorf("%w: unknown %s", ErrInvalidState, player)
	}
	if err := rules.Validate(state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	s := &settings{ // Default values
		exploration: DefaultExploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.source == nil {
		s.source = rand.NewSource(uint64(time.Now().UnixNano()))
	}

	m := &MCTS[S, A]{
		rules:       rules,
		state:       state,
		player:      player,
		exploration: s.exploration,
		ordered:     s.ordered,
		rng:         rand.New(s.source),
		metrics:     s.metrics,
	}
	m.tree = newTree(rules, state, player)
	return m, nil
}

// Search runs iterations rounds of selection, expansion, simulation and
// backpropagation, then returns the most visited action from the root.
func (m *MCTS[S, A]) Search(iterations int) (A, error) {
	var zero A
	if iterations <= 0 {
		return zero, fmt.Errorf("%w: got %d", ErrInvalidBudget, iterations)
	}

	m.tree = newTree(m.rules, m.state, m.player)
	m.metrics.Start(iterations, m.exploration)
	start := time.Now()

	for i := 0; i < iterations; i++ {
		if err := m.simulate(); err != nil {
			return zero, fmt.Errorf("iteration %d: %w", i+1, err)
		}
		m.metrics.AddEpisode()
	}
	m.metric = m.metrics.Complete(m.tree.size())

	log.Debug().
		Int("iterations", iterations).
		Int("nodes", m.tree.size()).
		Int("root_visits", m.tree.nodes[rootID].visits).
		Dur("duration", time.Since(start)).
		Msg("search complete")

	best, err := m.tree.mostVisited(rootID)
	if err != nil {
		return zero, fmt.Errorf("%w: root outcome is %s", ErrNoLegalMoves, m.tree.outcome(rootID))
	}
	return m.tree.nodes[best].action, nil
}

func (m *MCTS[S, A]) simulate() error {
	selected, err := m.selects()
	if err != nil {
		return err
	}
	leaf, err := m.expands(selected)
	if err != nil {
		return err
	}
	outcome, err := m.rollout(leaf)
	if err != nil {
		return err
	}
	m.backup(leaf, outcome)
	return nil
}

// selects descends by UCT until a terminal, leaf or expandable node.
func (m *MCTS[S, A]) selects() (NodeID, error) {
	id := rootID
	for !m.tree.isTerminal(id) && !m.tree.isLeaf(id) && m.tree.isFullyExpanded(id) {
		child, err := m.tree.bestChild(id, m.exploration)
		if err != nil {
			return id, err
		}
		id = child
	}
	return id, nil
}

// expands attaches a child for one untried action of id. Terminal nodes are
// returned unchanged.
func (m *MCTS[S, A]) expands(id NodeID) (NodeID, error) {
	if m.tree.isTerminal(id) {
		m.metrics.AddTerminalHit()
		return id, nil
	}

	m.tree.legalActions(id)
	untried := m.tree.nodes[id].untried
	if len(untried) == 0 {
		return id, fmt.Errorf("%w: running state without legal actions", game.ErrInvalidState)
	}
	action := untried[0]
	if !m.ordered {
		action = untried[m.rng.Intn(len(untried))]
	}

	player := m.tree.nodes[id].player
	state, err := m.rules.Apply(m.tree.nodes[id].state, action, player)
	if err != nil {
		return id, err
	}
	return m.tree.addChild(id, state, action, m.rules.OtherPlayer(player))
}

// rollout plays uniformly random moves from the leaf's state until the game
// is decided. It works on state values only and never touches the tree.
func (m *MCTS[S, A]) rollout(leaf NodeID) (game.Outcome, error) {
	state := m.tree.nodes[leaf].state
	player := m.tree.nodes[leaf].player

	outcome := m.rules.Winner(state)
	if outcome.IsOver() {
		return outcome, nil
	}
	for !outcome.IsOver() {
		moves := m.rules.LegalActions(state)
		if len(moves) == 0 {
			return outcome, fmt.Errorf("%w: running state without legal actions", game.ErrInvalidState)
		}
		move := moves[m.rng.Intn(len(moves))] // Random rollout policy
		next, err := m.rules.Apply(state, move, player)
		if err != nil {
			return outcome, err
		}
		state = next
		player = m.rules.OtherPlayer(player)
		outcome = m.rules.Winner(state)
	}
	m.metrics.AddFullPlayout()
	return outcome, nil
}

func (m *MCTS[S, A]) backup(leaf NodeID, outcome game.Outcome) {
	for id := leaf; id != NoParent; id = m.tree.nodes[id].parent {
		m.tree.update(id, outcome)
	}
}

// Root returns the statistics of the root node.
func (m *MCTS[S, A]) Root() NodeStats[A] {
	return m.tree.stats(rootID, m.exploration)
}

// Children returns the statistics of the root's children in expansion order.
func (m *MCTS[S, A]) Children() []NodeStats[A] {
	children := m.tree.nodes[rootID].children
	stats := make([]NodeStats[A], 0, len(children))
	for _, c := range children {
		stats = append(stats, m.tree.stats(c, m.exploration))
	}
	return stats
}

// Policy returns the share of root visits per child action in expansion order.
func (m *MCTS[S, A]) Policy() []PolicyEntry[A] {
	children := m.tree.nodes[rootID].children
	total := 0
	for _, c := range children {
		total += m.tree.nodes[c].visits
	}
	policy := make([]PolicyEntry[A], 0, len(children))
	for _, c := range children {
		share := 0.0
		if total > 0 {
			share = float64(m.tree.nodes[c].visits) / float64(total)
		}
		policy = append(policy, PolicyEntry[A]{Action: m.tree.nodes[c].action, Share: share})
	}
	return policy
}

func (m *MCTS[S, A]) TreeSize() int {
	return m.tree.size()
}

// Metrics returns the statistics of the last search; empty unless WithMetrics is set.
func (m *MCTS[S, A]) Metrics() metrics.SearchMetric {
	return m.metric
}
