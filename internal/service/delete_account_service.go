package service

import (
	"context"
	"fmt"
	"time"

	"learner-account-be/internal/deleteaccount"
	"learner-account-be/internal/dto"
	"learner-account-be/internal/pkg/logger"
	"learner-account-be/internal/repository/memory"
)

// StateBroadcaster pushes store snapshots to a user's live connections.
type StateBroadcaster interface {
	SendState(userId string, state dto.FlowStateMessage)
}

type UserRef struct {
	Id       string
	Username string
}

type IDeleteAccountService interface {
	View(ctx context.Context, user UserRef, acceptLanguage string) (*deleteaccount.View, error)
	RequestConfirmation(ctx context.Context, user UserRef, acceptLanguage string) (*deleteaccount.View, bool, error)
	ChangePassword(ctx context.Context, user UserRef, password, acceptLanguage string) (*deleteaccount.View, error)
	Submit(ctx context.Context, user UserRef, acceptLanguage string) (*deleteaccount.View, error)
	Cancel(ctx context.Context, user UserRef, acceptLanguage string) (*deleteaccount.View, error)
	// Close ends the flow and returns where the browser must be sent.
	Close(ctx context.Context, user UserRef) string
	Snapshot(userId string) (deleteaccount.State, bool)
}

type deleteAccountService struct {
	sessions    *memory.FlowSessionRepository
	lmsAccounts ILmsAccountService
	transitions ITransitionPublisherService
	broadcaster StateBroadcaster
	logoutURL   string
	logger      logger.ILogger
}

func NewDeleteAccountService(
	sessions *memory.FlowSessionRepository,
	lmsAccounts ILmsAccountService,
	transitions ITransitionPublisherService,
	broadcaster StateBroadcaster,
	logoutURL string,
	log logger.ILogger,
) IDeleteAccountService {
	return &deleteAccountService{
		sessions:    sessions,
		lmsAccounts: lmsAccounts,
		transitions: transitions,
		broadcaster: broadcaster,
		logoutURL:   logoutURL,
		logger:      log,
	}
}

func (s *deleteAccountService) eligibility(ctx context.Context, user UserRef) (deleteaccount.Props, error) {
	props := deleteaccount.DefaultProps(s.logoutURL)

	verified, err := s.lmsAccounts.IsVerifiedAccount(ctx, user.Username)
	if err != nil {
		return props, fmt.Errorf("failed to load account status: %w", err)
	}
	linked, err := s.lmsAccounts.HasLinkedTPA(ctx)
	if err != nil {
		return props, fmt.Errorf("failed to load third party auth status: %w", err)
	}

	props.IsVerifiedAccount = verified
	props.HasLinkedTPA = linked
	return props, nil
}

func (s *deleteAccountService) newSession(user UserRef, props deleteaccount.Props) *deleteaccount.Session {
	sess := deleteaccount.NewSession(user.Id, props, deleteaccount.NewDeleteEffect(s.lmsAccounts, s.logger))
	sess.Store.Subscribe(func(prev, next deleteaccount.State, action deleteaccount.Action) {
		// requests and resets that leave the state as it was are not transitions
		if prev == next {
			return
		}
		s.onTransition(user.Id, next, action)
	})
	return sess
}

func (s *deleteAccountService) onTransition(userId string, next deleteaccount.State, action deleteaccount.Action) {
	if s.broadcaster != nil {
		s.broadcaster.SendState(userId, dto.FlowStateMessage{
			Status:    string(next.Status),
			ErrorType: string(next.ErrorType),
		})
	}
	if s.transitions != nil {
		err := s.transitions.Publish(dto.FlowTransitionMessage{
			UserId:     userId,
			Action:     string(action.Type),
			Status:     string(next.Status),
			ErrorType:  string(next.ErrorType),
			OccurredAt: time.Now(),
		})
		if err != nil {
			s.logger.Warn("DeleteAccountService", "Failed to publish transition", map[string]interface{}{
				"user_id": userId,
				"action":  action.String(),
				"error":   err.Error(),
			})
		}
	}
}

// session returns the user's flow, loading eligibility on first access.
// Idle sessions are refreshed so newly activated or unlinked accounts unlock.
func (s *deleteAccountService) session(ctx context.Context, user UserRef) (*deleteaccount.Session, error) {
	if sess, found := s.sessions.Get(user.Id); found {
		if deleteaccount.MapStateToProps(sess.Store.Root()).Status != deleteaccount.StatusNone {
			return sess, nil
		}
		props, err := s.eligibility(ctx, user)
		if err != nil {
			return nil, err
		}
		sess.Flow.SetProps(props)
		return sess, nil
	}

	props, err := s.eligibility(ctx, user)
	if err != nil {
		return nil, err
	}
	sess, created := s.sessions.GetOrCreate(user.Id, func() *deleteaccount.Session {
		return s.newSession(user, props)
	})
	if created {
		s.logger.Info("DeleteAccountService", "Deletion flow session created", map[string]interface{}{
			"user_id":     user.Id,
			"can_delete":  props.CanDelete(),
			"linked_tpa":  props.HasLinkedTPA,
			"is_verified": props.IsVerifiedAccount,
		})
	}
	return sess, nil
}

func render(sess *deleteaccount.Session, acceptLanguage string) *deleteaccount.View {
	v := sess.View(deleteaccount.NewPrinter(acceptLanguage))
	return &v
}

func (s *deleteAccountService) View(ctx context.Context, user UserRef, acceptLanguage string) (*deleteaccount.View, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return nil, err
	}
	return render(sess, acceptLanguage), nil
}

func (s *deleteAccountService) RequestConfirmation(ctx context.Context, user UserRef, acceptLanguage string) (*deleteaccount.View, bool, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return nil, false, err
	}
	opened := sess.Flow.HandleDeleteClick(ctx)
	return render(sess, acceptLanguage), opened, nil
}

func (s *deleteAccountService) ChangePassword(ctx context.Context, user UserRef, password, acceptLanguage string) (*deleteaccount.View, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return nil, err
	}
	sess.Flow.HandlePasswordChange(ctx, password)
	return render(sess, acceptLanguage), nil
}

// Submit blocks until the remote deletion call has completed. Outside an
// open modal on an eligible account the view comes back unchanged.
func (s *deleteAccountService) Submit(ctx context.Context, user UserRef, acceptLanguage string) (*deleteaccount.View, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return nil, err
	}
	sess.Submit(ctx)
	return render(sess, acceptLanguage), nil
}

func (s *deleteAccountService) Cancel(ctx context.Context, user UserRef, acceptLanguage string) (*deleteaccount.View, error) {
	sess, err := s.session(ctx, user)
	if err != nil {
		return nil, err
	}
	sess.Flow.HandleCancel(ctx)
	return render(sess, acceptLanguage), nil
}

type redirectNavigator struct {
	url string
}

func (n *redirectNavigator) Navigate(url string) {
	n.url = url
}

func (s *deleteAccountService) Close(ctx context.Context, user UserRef) string {
	nav := &redirectNavigator{url: s.logoutURL}
	if sess, found := s.sessions.Get(user.Id); found {
		sess.Flow.HandleFinalClose(nav)
		s.sessions.Delete(user.Id)
	}
	return nav.url
}

func (s *deleteAccountService) Snapshot(userId string) (deleteaccount.State, bool) {
	sess, found := s.sessions.Get(userId)
	if !found {
		return deleteaccount.State{}, false
	}
	return deleteaccount.MapStateToProps(sess.Store.Root()), true
}
