package searcher

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"durak/game"
)

// ISMCTS is single-tree information set MCTS: every iteration samples a
// fresh determinization and walks one tree keyed by the observer's
// information sets, restricted to the actions legal in the sampled world.
// Workers build independent trees over shares of the rollout budget and the
// root statistics are summed.
type ISMCTS struct {
	rollouts int
	cfg      config
}

func NewISMCTS(rollouts int, options ...Option) *ISMCTS {
	if rollouts <= 0 {
		panic("searcher: rollouts must be positive")
	}
	cfg := defaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	return &ISMCTS{rollouts: rollouts, cfg: cfg}
}

func (s *ISMCTS) Decide(info *game.InformationSet) ([]ActionStat, error) {
	stats, metric, err := decideShared(info, s.rollouts, s.cfg, (*tree).iterateISMCTS)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("rollouts", metric.Rollouts).
		Int("fullPlayouts", metric.FullPlayouts).
		Dur("took", metric.Duration).
		Msg("ismcts search complete")
	return stats, nil
}

// iterateFn is one tree-building pass of a single-tree variant.
type iterateFn func(*tree, *game.InformationSet, params, *rand.Rand, Collector) error

// decideShared is the common worker fan-out of the single-tree variants:
// worker w is seeded with seed+w, owns its tree and RNG, and runs its share
// of the rollout budget; partial root statistics land in disjoint slots and
// are merged once every worker finished. The collector lives for this one
// decision.
func decideShared(info *game.InformationSet, rollouts int, cfg config, iterate iterateFn) ([]ActionStat, SearchMetric, error) {
	if err := checkDecidable(info); err != nil {
		return nil, SearchMetric{}, err
	}
	metrics := cfg.metrics()
	metrics.Start(cfg.workers, 0)

	shares := splitBudget(rollouts, cfg.workers)
	parts := make([][]ActionStat, cfg.workers)
	var g errgroup.Group
	for w := 0; w < cfg.workers; w++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(cfg.seed + uint64(w)))
			t := newTree(nil)
			p := cfg.params()
			for i := 0; i < shares[w]; i++ {
				if err := iterate(t, info, p, rng, metrics); err != nil {
					return err
				}
				metrics.AddRollout()
			}
			parts[w] = t.rootStats()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, SearchMetric{}, err
	}
	return rank(mergeStats(parts...)), metrics.Complete(), nil
}
