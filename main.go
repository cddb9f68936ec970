package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"durak/engine"
	"durak/player"
	"durak/searcher"
)

type CLI struct {
	Debug bool    `help:"Enable debug logging (per-action search reports)."`
	Play  PlayCmd `cmd:"" help:"Play games between configured players."`
}

type PlayCmd struct {
	Players     []string `default:"ismcts,random" help:"Seated player types: random, dmcts, ismcts, ismctsfpv."`
	Games       int      `default:"1" help:"Number of games to play."`
	Seed        uint64   `default:"1" help:"Base RNG seed; game g uses seed+g."`
	Rollouts    int      `default:"1000" help:"Rollout budget per decision."`
	Deals       int      `default:"10" help:"Determinizations per decision (dmcts only)."`
	Workers     int      `default:"4" help:"Worker pool size per decision."`
	Exploration float64  `default:"0.8" help:"UCB1 exploration constant."`
}

func (c *PlayCmd) Run() error {
	losses := make(map[string]int)
	draws := 0

	for g := 0; g < c.Games; g++ {
		seed := c.Seed + uint64(g)
		players, err := c.buildPlayers(seed)
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(seed))
		e := engine.Local(players, g%len(players), rng)
		result, err := e.Run()
		if err != nil {
			return err
		}
		if result.Draw {
			draws++
		} else {
			losses[result.Loser]++
		}
	}

	fmt.Printf("games: %d, draws: %d\n", c.Games, draws)
	for name, lost := range losses {
		fmt.Printf("%s was the durak %d time(s)\n", name, lost)
	}
	return nil
}

// buildPlayers dispatches the seated player types. Search players share the
// game seed so runs are reproducible.
func (c *PlayCmd) buildPlayers(seed uint64) ([]player.Player, error) {
	if len(c.Players) < 2 || len(c.Players) > 6 {
		return nil, fmt.Errorf("need between 2 and 6 players, got %d", len(c.Players))
	}

	options := []searcher.Option{
		searcher.WithSeed(seed),
		searcher.WithWorkers(c.Workers),
		searcher.WithExploration(c.Exploration),
	}

	players := make([]player.Player, len(c.Players))
	for seat, kind := range c.Players {
		name := fmt.Sprintf("%s-%d", kind, seat)
		switch kind {
		case "random":
			players[seat] = player.NewRandom(name, rand.New(rand.NewSource(seed+uint64(seat)<<32)))
		case "dmcts":
			players[seat] = player.NewDeterminizedMCTS(name, c.Deals, c.Rollouts, options...)
		case "ismcts":
			players[seat] = player.NewISMCTS(name, c.Rollouts, options...)
		case "ismctsfpv":
			players[seat] = player.NewISMCTSFPV(name, c.Rollouts, options...)
		default:
			return nil, fmt.Errorf("unknown player type %q", kind)
		}
	}
	return players, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("durak"),
		kong.Description("Durak agents searching under hidden information"),
		kong.UsageOnError(),
	)

	level := zerolog.InfoLevel
	if cli.Debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	ctx.FatalIfErrorf(ctx.Run())
}
