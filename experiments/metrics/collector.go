package metrics

import (
	"time"
)

type SearchMetric struct {
	Iterations   int
	Exploration  float64
	Duration     time.Duration
	Episodes     int
	FullPlayouts int // Rollouts that played at least one move
	TerminalHits int // Episodes whose selected node was already decided
	TreeSize     int
}

type MoveMetric struct {
	Step   int
	Player string
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Outcome        string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector accumulates statistics of a single search. A search runs on one
// goroutine, so collectors are not safe for concurrent use.
type Collector interface {
	Start(iterations int, exploration float64)
	AddEpisode()
	AddFullPlayout()
	AddTerminalHit()
	Complete(treeSize int) SearchMetric
}

type collector struct {
	iterations   int
	exploration  float64
	startTime    time.Time
	episodes     int
	fullPlayouts int
	terminalHits int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(iterations int, exploration float64) {
	*m = collector{
		iterations:  iterations,
		exploration: exploration,
		startTime:   time.Now(),
	}
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) AddTerminalHit() {
	m.terminalHits++
}

func (m *collector) Complete(treeSize int) SearchMetric {
	return SearchMetric{
		Iterations:   m.iterations,
		Exploration:  m.exploration,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		FullPlayouts: m.fullPlayouts,
		TerminalHits: m.terminalHits,
		TreeSize:     treeSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int, exploration float64) {}
func (m *dummyCollector) AddEpisode()                              {}
func (m *dummyCollector) AddFullPlayout()                          {}
func (m *dummyCollector) AddTerminalHit()                          {}
func (m *dummyCollector) Complete(treeSize int) SearchMetric       { return SearchMetric{} }
