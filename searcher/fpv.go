package searcher

import (
	"github.com/rs/zerolog/log"

	"durak/game"
)

// ISMCTSFPV is the fixed-opponent-policy variant of ISMCTS: the tree holds
// only the perspective player's decision points and every other seat plays
// uniformly at random, inside the tree walk as well as during the rollout.
type ISMCTSFPV struct {
	rollouts int
	cfg      config
}

func NewISMCTSFPV(rollouts int, options ...Option) *ISMCTSFPV {
	if rollouts <= 0 {
		panic("searcher: rollouts must be positive")
	}
	cfg := defaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	return &ISMCTSFPV{rollouts: rollouts, cfg: cfg}
}

func (s *ISMCTSFPV) Decide(info *game.InformationSet) ([]ActionStat, error) {
	stats, metric, err := decideShared(info, s.rollouts, s.cfg, (*tree).iterateFPV)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("rollouts", metric.Rollouts).
		Int("fullPlayouts", metric.FullPlayouts).
		Dur("took", metric.Duration).
		Msg("ismcts-fpv search complete")
	return stats, nil
}
