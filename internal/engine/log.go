package engine

import "fmt"

// --- Battle log ---------------------------------------------------------

// battleLog accumulates human-readable play-by-play lines. Callers drain
// it between steps via the state machines' TakeLog methods.
type battleLog struct {
	entries []string
}

func newBattleLog() *battleLog {
	return &battleLog{entries: make([]string, 0, 16)}
}

func (l *battleLog) add(msg string) { l.entries = append(l.entries, msg) }

func (l *battleLog) addf(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// take returns the accumulated lines and resets the buffer.
func (l *battleLog) take() []string {
	out := l.entries
	l.entries = make([]string, 0, 16)
	return out
}
