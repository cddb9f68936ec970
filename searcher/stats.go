package searcher

import (
	"fmt"
	"sort"

	"durak/game"
)

// ActionStat reports one candidate root action: the raw win and visit counts
// accumulated for it and the win rate W/N. A ranked []ActionStat is the
// decision output consumed by players and the console layer.
type ActionStat struct {
	Action  game.Action
	Wins    float64
	Visits  int
	WinRate float64
}

func (s ActionStat) String() string {
	return fmt.Sprintf("%s %.2f%% (W=%.1f N=%d)", s.Action, s.WinRate*100, s.Wins, s.Visits)
}

// mergeStats sums partial per-action results. The sum is commutative and
// associative, so the order in which workers report does not matter.
func mergeStats(parts ...[]ActionStat) []ActionStat {
	index := make(map[game.Action]int)
	var merged []ActionStat
	for _, part := range parts {
		for _, stat := range part {
			i, ok := index[stat.Action]
			if !ok {
				i = len(merged)
				index[stat.Action] = i
				merged = append(merged, ActionStat{Action: stat.Action})
			}
			merged[i].Wins += stat.Wins
			merged[i].Visits += stat.Visits
		}
	}
	return merged
}

// rank orders stats for reporting: most visited first (the robust-child
// criterion), win count and then a total order on actions breaking ties so
// rankings are identical however the partial results were merged. Win rates
// are filled in here.
func rank(stats []ActionStat) []ActionStat {
	for i := range stats {
		if stats[i].Visits > 0 {
			stats[i].WinRate = stats[i].Wins / float64(stats[i].Visits)
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Visits != stats[j].Visits {
			return stats[i].Visits > stats[j].Visits
		}
		if stats[i].Wins != stats[j].Wins {
			return stats[i].Wins > stats[j].Wins
		}
		return stats[i].Action.Order() < stats[j].Action.Order()
	})
	return stats
}

func errNoSelectableChild(gs *game.GameState) error {
	return fmt.Errorf("no selectable child for player %d in phase %s", gs.PlayerToAct(), gs.Phase)
}
