package deleteaccount

import (
	"context"
	"sync"

	"golang.org/x/text/message"
)

// Session is one user's deletion flow: its store and the component wired to it.
type Session struct {
	UserId string
	Store  *Store
	Flow   *Flow

	// submitMu makes a concurrent submit observe the pending or terminal
	// status left by the one before it.
	submitMu sync.Mutex
}

func NewSession(userId string, props Props, effects ...Effect) *Session {
	store := NewStore(effects...)
	return &Session{
		UserId: userId,
		Store:  store,
		Flow:   NewFlow(props, BindActionCreators(store.Dispatch)),
	}
}

// Submit runs the modal submit against the current store status.
func (s *Session) Submit(ctx context.Context) bool {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()
	return s.Flow.HandleSubmit(ctx, MapStateToProps(s.Store.Root()).Status)
}

func (s *Session) View(p *message.Printer) View {
	return s.Flow.Render(s.Store.Root(), p)
}
