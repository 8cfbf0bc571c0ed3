package bench

import (
	"fmt"
	"os"
	"sync"

	"github.com/muesli/termenv"
)

type ListenerStats struct {
	WorkerID      int
	NGames        int
	FinishedGames int
	P1Wins        int
	P2Wins        int
	Draws         int
}

type SummaryStats struct {
	TotalGames int
	P1Wins     int
	P2Wins     int
	Draws      int
	Score      float64
	Margin     float64
}

type ListenerLike interface {
	OnStart(workers int)
	OnGameFinished(stats ListenerStats)
	Summary(stats SummaryStats)
}

// NopListener discards all arena events
type NopListener struct{}

func (NopListener) OnStart(int)                  {}
func (NopListener) OnGameFinished(ListenerStats) {}
func (NopListener) Summary(SummaryStats)         {}

// TerminalListener renders a live one-line progress report and a styled
// final summary, safe to share between arena workers
type TerminalListener struct {
	mu     sync.Mutex
	output *termenv.Output
}

func NewTerminalListener() *TerminalListener {
	return &TerminalListener{output: termenv.NewOutput(os.Stdout)}
}

func (l *TerminalListener) OnStart(workers int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.output.HideCursor()
	title := l.output.String(fmt.Sprintf("versus arena, %d workers", workers)).Bold()
	fmt.Fprintln(l.output, title)
}

func (l *TerminalListener) OnGameFinished(stats ListenerStats) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.output.ClearLine()
	fmt.Fprintf(l.output, "\r%s %s %s  (%d finished)",
		l.output.String(fmt.Sprintf("P1 %d", stats.P1Wins)).Foreground(l.output.Color("2")),
		l.output.String(fmt.Sprintf("P2 %d", stats.P2Wins)).Foreground(l.output.Color("1")),
		l.output.String(fmt.Sprintf("= %d", stats.Draws)).Foreground(l.output.Color("4")),
		stats.FinishedGames,
	)
}

func (l *TerminalListener) Summary(stats SummaryStats) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.output.ClearLine()
	fmt.Fprintf(l.output, "\r%s  +%d -%d =%d of %d, score %.3f ± %.3f\n",
		l.output.String("done").Bold().Foreground(l.output.Color("2")),
		stats.P1Wins, stats.P2Wins, stats.Draws, stats.TotalGames,
		stats.Score, stats.Margin,
	)
	l.output.ShowCursor()
}
