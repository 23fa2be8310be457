// Package simulator runs batches of automated sessions and aggregates
// the outcomes, for balance checks and regression sweeps.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/thisistayeb/QuantumBlackJack/internal/game"
	"github.com/thisistayeb/QuantumBlackJack/internal/randutil"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions int
	Seed     int64
	Workers  int
	Rules    game.Rules
	Logger   *log.Logger
}

// Statistics aggregates the outcomes of a batch of sessions.
type Statistics struct {
	Sessions    int
	Wins        map[game.Role]int
	Busts       map[game.Role]int
	Ties        int
	HouseWins   int
	TwoCardEnds int
	DealerDraws int
}

// Summary renders the statistics as a report.
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sessions: %d\n", s.Sessions)
	for _, role := range []game.Role{game.PlayerOne, game.PlayerTwo, game.Dealer} {
		fmt.Fprintf(&b, "%s: %d wins (%.1f%%), %d busts (%.1f%%)\n",
			role, s.Wins[role], percent(s.Wins[role], s.Sessions),
			s.Busts[role], percent(s.Busts[role], s.Sessions))
	}
	fmt.Fprintf(&b, "Ties: %d (%.1f%%)\n", s.Ties, percent(s.Ties, s.Sessions))
	fmt.Fprintf(&b, "House wins: %d (%.1f%%)\n", s.HouseWins, percent(s.HouseWins, s.Sessions))
	fmt.Fprintf(&b, "Two-card endings: %d (%.1f%%)\n", s.TwoCardEnds, percent(s.TwoCardEnds, s.Sessions))
	if s.Sessions > 0 {
		fmt.Fprintf(&b, "Average dealer draws: %.2f\n", float64(s.DealerDraws)/float64(s.Sessions))
	}
	return b.String()
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// Simulator runs automated sessions across a worker pool
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run executes the batch and returns aggregate statistics. Each
// session gets an independent seed derived from the batch seed, so a
// run is reproducible regardless of worker scheduling.
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{
		Wins:  make(map[game.Role]int),
		Busts: make(map[game.Role]int),
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Sessions; i++ {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playSession(seed)
			if err != nil {
				return fmt.Errorf("session seed %d: %w", seed, err)
			}

			mu.Lock()
			defer mu.Unlock()
			stats.Sessions++
			for _, winner := range result.Winners {
				stats.Wins[winner]++
			}
			for role, busted := range result.Busted {
				if busted {
					stats.Busts[role]++
				}
			}
			if result.Tie() {
				stats.Ties++
			}
			if result.HouseWins() {
				stats.HouseWins++
			}
			if result.MeasureLevel == 2 {
				stats.TwoCardEnds++
			}
			stats.DealerDraws += dealerDraws(result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.config.Logger.Info("Simulation complete",
		"sessions", stats.Sessions,
		"ties", stats.Ties,
		"houseWins", stats.HouseWins)
	return stats, nil
}

// playSession plays one session with random agents sharing the
// session's derived seed space.
func (s *Simulator) playSession(seed int64) (*game.Result, error) {
	rules := s.config.Rules
	if rules == (game.Rules{}) {
		rules = game.DefaultRules()
	}
	session, err := game.NewSession(seed, game.WithRules(rules))
	if err != nil {
		return nil, err
	}

	agentRng := randutil.New(randutil.Derive(seed, 1))
	agents := map[game.Role]game.Agent{
		game.PlayerOne: game.NewRandomAgent(agentRng),
		game.PlayerTwo: game.NewRandomAgent(agentRng),
	}
	return session.PlayAuto(agents)
}

// dealerDraws counts the classical cards the dealer drew after the
// measured hand.
func dealerDraws(result *game.Result) int {
	quantumCards := 2
	if result.MeasureLevel == 3 {
		// The dealer's slot 2 may or may not have been revealed; the
		// hand length tells us nothing on its own, so count cards
		// beyond the largest possible quantum hand as a lower bound.
		quantumCards = 3
	}
	draws := len(result.Hands[game.Dealer]) - quantumCards
	if draws < 0 {
		return 0
	}
	return draws
}
