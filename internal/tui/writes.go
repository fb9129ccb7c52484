package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tally/internal/state"
)

// writeQueue applies store mutations one at a time in the order Update
// issued them. Commands run on their own goroutines, so without it two quick
// keypresses could reach the store in either order.
type writeQueue struct {
	mu   sync.Mutex
	tail chan struct{} // closed once the most recently queued write finishes
}

// enqueue starts fn behind every earlier write and returns a command that
// reports its result. fn runs even if the command is never executed.
func (q *writeQueue) enqueue(store *state.Store, status string, fn func(context.Context, *state.Store) error) tea.Cmd {
	q.mu.Lock()
	prev := q.tail
	done := make(chan struct{})
	q.tail = done
	q.mu.Unlock()

	var err error
	go func() {
		defer close(done)
		if prev != nil {
			<-prev
		}
		err = fn(context.Background(), store)
	}()

	return func() tea.Msg {
		<-done
		return storeResultMsg{status: status, err: err}
	}
}
