package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one decision's worth of search work.
type SearchMetric struct {
	Workers      int
	Deals        int
	Duration     time.Duration
	Rollouts     int
	FullPlayouts int // playouts that reached a terminal state before the cutoff
}

// Collector gathers search metrics across the concurrent workers of a single
// decision.
type Collector interface {
	Start(workers, deals int)
	AddRollout()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	workers      int
	deals        int
	startTime    time.Time
	rollouts     atomic.Int64
	fullPlayouts atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(workers, deals int) {
	c.startTime = time.Now()
	c.workers = workers
	c.deals = deals
	c.rollouts.Store(0)
	c.fullPlayouts.Store(0)
}

func (c *collector) AddRollout() {
	c.rollouts.Add(1)
}

func (c *collector) AddFullPlayout() {
	c.fullPlayouts.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Workers:      c.workers,
		Deals:        c.deals,
		Duration:     time.Since(c.startTime),
		Rollouts:     int(c.rollouts.Load()),
		FullPlayouts: int(c.fullPlayouts.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start(workers, deals int) {}
func (dummyCollector) AddRollout()              {}
func (dummyCollector) AddFullPlayout()          {}
func (dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
