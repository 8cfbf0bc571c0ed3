package bench

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/IlikeChooros/go-uct/pkg/mcts"
)

/*
Arena benchmark subpackage, plays a series of games between two
engine configurations over any game implementing the engine contract.
*/

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

// AgentLike picks a single action to play from the given position
type AgentLike[A mcts.ActionLike, P mcts.PlayerLike, G mcts.GameLike[A, P, G]] interface {
	Name() string
	Pick(game G) A
}

// UctAgent builds a fresh search tree for every move (the engine never
// reuses a tree between searches) and plays the best action it finds
type UctAgent[A mcts.ActionLike, P mcts.PlayerLike, G mcts.GameLike[A, P, G]] struct {
	Label       string
	Iterations  int
	Exploration float64 // 0 keeps the package default
}

func (a UctAgent[A, P, G]) Name() string {
	return a.Label
}

func (a UctAgent[A, P, G]) Pick(game G) A {
	tree := mcts.New[A, P](game.Clone())
	if a.Exploration > 0 {
		tree.SetExplorationParam(a.Exploration)
	}

	tree.Search(max(1, a.Iterations))
	action, _ := tree.BestAction()
	return action
}

type VersusArenaStats struct {
	p1Wins uint32
	p2Wins uint32
	draws  uint32
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins() + vas.Draws()
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(atomic.LoadUint32(&vas.p1Wins))
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(atomic.LoadUint32(&vas.p2Wins))
}

func (vas *VersusArenaStats) Draws() int {
	return int(atomic.LoadUint32(&vas.draws))
}

// Player 1's match score in [0, 1], draws count as half a point
func (vas *VersusArenaStats) Score() float64 {
	total := vas.Total()
	if total == 0 {
		return math.NaN()
	}
	return (float64(vas.P1Wins()) + 0.5*float64(vas.Draws())) / float64(total)
}

// Half-width of the 95% confidence interval of Score, using the normal
// approximation of the match score distribution
func (vas *VersusArenaStats) Confidence95() float64 {
	total := vas.Total()
	if total == 0 {
		return math.NaN()
	}

	p := vas.Score()
	z := distuv.UnitNormal.Quantile(0.975)
	return z * math.Sqrt(p*(1-p)/float64(total))
}

// Elo difference of player 1 over player 2 implied by the score,
// +-Inf on a one-sided match
func (vas *VersusArenaStats) Elo() float64 {
	return -400 * math.Log10(1/vas.Score()-1)
}

type VersusArena[A mcts.ActionLike, P mcts.PlayerLike, G mcts.GameLike[A, P, G]] struct {
	VersusArenaStats
	Player1  AgentLike[A, P, G]
	Player2  AgentLike[A, P, G]
	NGames   uint
	NThreads uint
	Position G
	wg       sync.WaitGroup
}

func NewVersusArena[A mcts.ActionLike, P mcts.PlayerLike, G mcts.GameLike[A, P, G]](
	position G, player1, player2 AgentLike[A, P, G],
) *VersusArena[A, P, G] {
	return &VersusArena[A, P, G]{
		Player1:  player1,
		Player2:  player2,
		NGames:   100,
		NThreads: 2,
		Position: position,
	}
}

func (va *VersusArena[A, P, G]) Setup(nGames, nThreads uint) {
	va.NGames = nGames
	va.NThreads = max(1, nThreads)
}

// Start equally distributed work between worker goroutines. The engines
// themselves stay single-threaded, each game owns its own trees.
func (va *VersusArena[A, P, G]) Start(listener ListenerLike) {
	if listener == nil {
		listener = NopListener{}
	}
	listener.OnStart(int(va.NThreads))

	log.Info().
		Str("player1", va.Player1.Name()).
		Str("player2", va.Player2.Name()).
		Uint("games", va.NGames).
		Uint("workers", va.NThreads).
		Msg("versus arena started")

	nGames := va.NGames / va.NThreads
	rest := va.NGames % va.NThreads
	for id := range va.NThreads {
		delta := uint(0)
		if id < rest {
			delta = 1
		}

		va.wg.Add(1)
		go va.worker(int(id), int(nGames+delta), listener)
	}
}

// Wait for all workers to finish and emit the summary
func (va *VersusArena[A, P, G]) Wait(listener ListenerLike) {
	va.wg.Wait()

	if listener == nil {
		listener = NopListener{}
	}
	listener.Summary(SummaryStats{
		TotalGames: va.Total(),
		P1Wins:     va.P1Wins(),
		P2Wins:     va.P2Wins(),
		Draws:      va.Draws(),
		Score:      va.Score(),
		Margin:     va.Confidence95(),
	})

	log.Info().
		Int("games", va.Total()).
		Int("p1Wins", va.P1Wins()).
		Int("p2Wins", va.P2Wins()).
		Int("draws", va.Draws()).
		Float64("score", va.Score()).
		Float64("margin95", va.Confidence95()).
		Msg("versus arena finished")
}

func (va *VersusArena[A, P, G]) worker(id, nGames int, listener ListenerLike) {
	defer va.wg.Done()

	// Randomize which configuration moves first each game
	r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))
	local := VersusArenaStats{}

	for range nGames {
		var result VersusMatchResult
		var switched bool

		if r.Int()%2 == 0 {
			result = playGame(va.Player1, va.Player2, va.Position)
		} else {
			result = playGame(va.Player2, va.Player1, va.Position)
			switched = true
		}

		switch {
		case result == VersusDraw:
			atomic.AddUint32(&va.draws, 1)
			local.draws++
		case (result == VersusPl1Win) != switched:
			atomic.AddUint32(&va.p1Wins, 1)
			local.p1Wins++
		default:
			atomic.AddUint32(&va.p2Wins, 1)
			local.p2Wins++
		}

		listener.OnGameFinished(ListenerStats{
			WorkerID:      id,
			NGames:        nGames,
			FinishedGames: va.Total(),
			P1Wins:        va.P1Wins(),
			P2Wins:        va.P2Wins(),
			Draws:         va.Draws(),
		})
	}

	log.Debug().
		Int("worker", id).
		Int("games", nGames).
		Int("p1Wins", local.P1Wins()).
		Int("p2Wins", local.P2Wins()).
		Int("draws", local.Draws()).
		Msg("arena worker finished")
}

// Play out a single game, 'first' owns the side to move in the starting
// position. Returns the result from 'first's perspective.
func playGame[A mcts.ActionLike, P mcts.PlayerLike, G mcts.GameLike[A, P, G]](
	first, second AgentLike[A, P, G], position G,
) VersusMatchResult {
	game := position.Clone()
	firstPlayer := game.Turn()

	for game.Outcome(firstPlayer) == mcts.Unfinished {
		agent := second
		if game.Turn() == firstPlayer {
			agent = first
		}
		game.Play(agent.Pick(game))
	}

	switch game.Outcome(firstPlayer) {
	case mcts.Win:
		return VersusPl1Win
	case mcts.Lose:
		return VersusPl2Win
	default:
		return VersusDraw
	}
}
