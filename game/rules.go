package game

// Rules is the capability set a game must provide to be searched.
// Implementations are stateless: every method is a pure function of its
// arguments, and states are immutable values (Apply returns a new state).
type Rules[S any, A comparable] interface {
	// LegalActions returns all actions applicable to state, empty if none.
	LegalActions(state S) []A
	HasLegalActions(state S) bool
	// Winner reports the outcome of state: a completed winning pattern wins,
	// otherwise a state without legal actions is a draw.
	Winner(state S) Outcome
	OtherPlayer(player Player) Player
	// Apply plays action for player and returns the resulting state. It fails
	// with ErrInvalidAction if action is not legal in state.
	Apply(state S, action A, player Player) (S, error)
	// Validate fails with ErrInvalidState if state is malformed for the game.
	Validate(state S) error
}
