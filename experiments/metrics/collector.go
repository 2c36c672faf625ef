package metrics

import (
	"sync/atomic"
	"time"

	"hex/game"
)

// SearchMetric describes one FindMove call.
type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	FullPlayouts int
	TreeReset    bool // true when the retained tree could not be reused
}

// MoveMetric ties a search to its place in a game.
type MoveMetric struct {
	Step   int
	Player game.CellState
	SearchMetric
}

// GameMetric describes one finished game.
type GameMetric struct {
	StartingPlayer game.CellState
	Winner         game.CellState
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	SetTreeReset(value bool)
	AddEpisode()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	treeReset    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) SetTreeReset(value bool) {
	m.treeReset.Store(value)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TreeReset:    m.treeReset.Load(),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for callers that do not
// record metrics.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) SetTreeReset(value bool) {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
