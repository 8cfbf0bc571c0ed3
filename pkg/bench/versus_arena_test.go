package bench

import (
	"math"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-uct/games/ttt"
	"github.com/IlikeChooros/go-uct/pkg/mcts"
)

func TestMain(m *testing.M) {
	mcts.SetSeedGeneratorFn(func() int64 {
		return 42
	})

	os.Exit(m.Run())
}

type countingListener struct {
	starts    atomic.Int32
	finished  atomic.Int32
	summaries atomic.Int32
	last      SummaryStats
}

func (l *countingListener) OnStart(int)                  { l.starts.Add(1) }
func (l *countingListener) OnGameFinished(ListenerStats) { l.finished.Add(1) }
func (l *countingListener) Summary(stats SummaryStats) {
	l.summaries.Add(1)
	l.last = stats
}

func newTTTArena(games, threads uint, iterations1, iterations2 int) *VersusArena[ttt.Square, ttt.Mark, *ttt.Position] {
	arena := NewVersusArena[ttt.Square, ttt.Mark](
		ttt.NewPosition(),
		UctAgent[ttt.Square, ttt.Mark, *ttt.Position]{Label: "uct-a", Iterations: iterations1},
		UctAgent[ttt.Square, ttt.Mark, *ttt.Position]{Label: "uct-b", Iterations: iterations2},
	)
	arena.Setup(games, threads)
	return arena
}

func TestArenaPlaysAllGames(t *testing.T) {
	const games = 6

	arena := newTTTArena(games, 2, 100, 100)
	listener := &countingListener{}

	arena.Start(listener)
	arena.Wait(listener)

	assert.Equal(t, games, arena.Total(), "every scheduled game must be counted exactly once")
	assert.EqualValues(t, 1, listener.starts.Load())
	assert.EqualValues(t, games, listener.finished.Load())
	assert.EqualValues(t, 1, listener.summaries.Load())
	assert.Equal(t, games, listener.last.TotalGames)
}

func TestArenaScoreWithinBounds(t *testing.T) {
	arena := newTTTArena(4, 1, 50, 50)

	arena.Start(nil)
	arena.Wait(nil)

	score := arena.Score()
	require.False(t, math.IsNaN(score), "score must not be NaN after games were played")
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, arena.Confidence95(), 0.0)
}

func TestArenaStatsMath(t *testing.T) {
	stats := VersusArenaStats{p1Wins: 6, p2Wins: 2, draws: 2}

	assert.Equal(t, 10, stats.Total())
	assert.InDelta(t, 0.7, stats.Score(), 1e-12)
	// z * sqrt(p(1-p)/n) with z ~ 1.96
	assert.InDelta(t, 1.96*0.14491, stats.Confidence95(), 1e-3)
	assert.Greater(t, stats.Elo(), 0.0)
}

func TestPlayGameReportsFirstPerspective(t *testing.T) {
	// Strong against weak: the 1-iteration agent plays near-randomly
	strong := UctAgent[ttt.Square, ttt.Mark, *ttt.Position]{Label: "strong", Iterations: 400}
	weak := UctAgent[ttt.Square, ttt.Mark, *ttt.Position]{Label: "weak", Iterations: 1}

	result := playGame[ttt.Square, ttt.Mark, *ttt.Position](strong, weak, ttt.NewPosition())
	assert.NotEqual(t, VersusPl2Win, result,
		"a searching first player should not lose tic-tac-toe to a 1-iteration opponent")
}
