package deleteaccount

import (
	"context"
	"sync"
)

// DispatchFunc sends an action to a store.
type DispatchFunc func(ctx context.Context, action Action)

// Listener observes every transition, including ones that leave the state unchanged.
type Listener func(prev, next State, action Action)

// Effect runs after an action has been reduced and listeners notified.
// It may dispatch follow-up actions.
type Effect func(ctx context.Context, action Action, dispatch DispatchFunc)

type AccountSettingsState struct {
	DeleteAccount State `json:"deleteAccount"`
}

// RootState is the shape of the full store snapshot.
type RootState struct {
	AccountSettings AccountSettingsState `json:"accountSettings"`
}

// MapStateToProps selects the slice the deletion flow renders from.
func MapStateToProps(root RootState) State {
	return root.AccountSettings.DeleteAccount
}

type Store struct {
	mu        sync.Mutex
	state     State
	listeners []Listener
	effects   []Effect
}

func NewStore(effects ...Effect) *Store {
	return &Store{effects: effects}
}

func (s *Store) Root() RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RootState{AccountSettings: AccountSettingsState{DeleteAccount: s.state}}
}

func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Dispatch reduces action under the store lock. Listeners and effects run
// after the lock is released, so they may read or dispatch freely.
func (s *Store) Dispatch(ctx context.Context, action Action) {
	s.mu.Lock()
	prev := s.state
	s.state = Reduce(prev, action)
	next := s.state
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(prev, next, action)
	}
	for _, e := range s.effects {
		e(ctx, action, s.Dispatch)
	}
}

// Dispatchers are the five action creators the flow is wired to.
type Dispatchers struct {
	DeleteAccount             func(ctx context.Context, password string)
	DeleteAccountConfirmation func(ctx context.Context)
	DeleteAccountFailure      func(ctx context.Context, reason ErrorType)
	DeleteAccountReset        func(ctx context.Context)
	DeleteAccountCancel       func(ctx context.Context)
}

func BindActionCreators(dispatch DispatchFunc) Dispatchers {
	return Dispatchers{
		DeleteAccount: func(ctx context.Context, password string) {
			dispatch(ctx, DeleteAccount(password))
		},
		DeleteAccountConfirmation: func(ctx context.Context) {
			dispatch(ctx, DeleteAccountConfirmation())
		},
		DeleteAccountFailure: func(ctx context.Context, reason ErrorType) {
			dispatch(ctx, DeleteAccountFailure(reason))
		},
		DeleteAccountReset: func(ctx context.Context) {
			dispatch(ctx, DeleteAccountReset())
		},
		DeleteAccountCancel: func(ctx context.Context) {
			dispatch(ctx, DeleteAccountCancel())
		},
	}
}
