package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hex/engine"
	"hex/experiments"
	"hex/searcher"
	"hex/server"
	"hex/tui"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	mode := flag.String("mode", "tui", "tui, serve, selfplay or experiment")
	size := flag.Int("size", 11, "Board size")
	budget := flag.Duration("budget", searcher.DefaultDuration, "Search time per move")
	episodes := flag.Int("episodes", 0, "Episode cap per move (0 uses the default)")
	uct := flag.Float64("c", 0, "Exploration constant (0 uses the default)")
	seed := flag.Uint64("seed", 0, "Rollout seed (0 seeds from the clock)")
	addr := flag.String("addr", ":8080", "Listen address for serve mode")
	experiment := flag.String("experiment", "exploration", "exploration or pruning")
	flag.Parse()

	options := []searcher.Option{searcher.WithDuration(*budget)}
	if *episodes > 0 {
		options = append(options, searcher.WithEpisodes(*episodes))
	}
	if *uct > 0 {
		options = append(options, searcher.WithUCT(*uct))
	}
	if *seed > 0 {
		options = append(options, searcher.WithSeed(*seed))
	}

	switch *mode {
	case "tui":
		// Search warnings on stderr would corrupt the rendered board.
		zerolog.SetGlobalLevel(zerolog.Disabled)
		if _, err := tui.NewProgram(*size, options...).Run(); err != nil {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			log.Fatal().Msgf("tui failed: %v", err)
		}
	case "serve":
		s := server.NewServer(*size, options...)
		if err := s.ListenAndServe(*addr); err != nil {
			log.Fatal().Msgf("server failed: %v", err)
		}
	case "selfplay":
		runSelfplay(*size, options)
	case "experiment":
		switch *experiment {
		case "exploration":
			experiments.RunExplorationExperiment()
		case "pruning":
			experiments.RunPruningExperiment()
		default:
			log.Fatal().Msgf("unknown experiment %q", *experiment)
		}
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func runSelfplay(size int, options []searcher.Option) {
	withMetrics := append(append([]searcher.Option{}, options...), searcher.WithMetrics())
	e := engine.LocalEngine(size,
		engine.NewSearchAgent(searcher.NewMCTS(withMetrics...)),
		engine.NewSearchAgent(searcher.NewMCTS(withMetrics...)))

	winner, gameMetric, _ := e.Run()
	log.Info().
		Stringer("winner", winner).
		Int("moves", gameMetric.TotalMoves).
		Dur("duration", gameMetric.Duration).
		Msg("selfplay game over")
}
