package searcher

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"durak/game"
)

// Determinized is plain MCTS over a fixed number of determinizations: each
// deal samples one complete world up front and searches it with its own
// tree, and the root statistics of all deals are summed. Every deal is an
// equally likely world, so the merge is a plain commutative sum.
type Determinized struct {
	deals    int
	rollouts int
	cfg      config
}

// NewDeterminized configures a determinized MCTS with the given number of
// deals and rollouts per deal.
func NewDeterminized(deals, rollouts int, options ...Option) *Determinized {
	if deals <= 0 || rollouts <= 0 {
		panic("searcher: deals and rollouts must be positive")
	}
	cfg := defaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	return &Determinized{deals: deals, rollouts: rollouts, cfg: cfg}
}

// Decide searches every deal and returns the merged ranked statistics. Deal
// i is seeded with seed+i, so the result does not depend on the worker
// count. Any worker failure aborts the whole decision.
func (s *Determinized) Decide(info *game.InformationSet) ([]ActionStat, error) {
	if err := checkDecidable(info); err != nil {
		return nil, err
	}
	metrics := s.cfg.metrics()
	metrics.Start(s.cfg.workers, s.deals)

	parts := make([][]ActionStat, s.deals)
	var g errgroup.Group
	for w := 0; w < s.cfg.workers; w++ {
		g.Go(func() error {
			for deal := w; deal < s.deals; deal += s.cfg.workers {
				stats, err := s.searchDeal(info, deal, metrics)
				if err != nil {
					return err
				}
				parts[deal] = stats
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := rank(mergeStats(parts...))
	metric := metrics.Complete()
	log.Debug().
		Int("deals", s.deals).
		Int("rollouts", metric.Rollouts).
		Int("fullPlayouts", metric.FullPlayouts).
		Dur("took", metric.Duration).
		Msg("determinized search complete")
	return stats, nil
}

func (s *Determinized) searchDeal(info *game.InformationSet, deal int, metrics Collector) ([]ActionStat, error) {
	rng := rand.New(rand.NewSource(s.cfg.seed + uint64(deal)))
	gs, err := info.Determinize(rng)
	if err != nil {
		return nil, err
	}

	t := newTree(gs.LegalActions(gs.PlayerToAct()))
	p := s.cfg.params()
	for i := 0; i < s.rollouts; i++ {
		if err := t.iterateDeterminized(gs, p, rng, metrics); err != nil {
			return nil, err
		}
		metrics.AddRollout()
	}
	return t.rootStats(), nil
}
