package deleteaccount

import (
	"context"
	"strings"
	"sync"
)

const (
	SupportChangeInsteadURL = "https://support.edx.org/hc/en-us/sections/115004139268-Manage-Your-Account-Settings"
	SupportActivateURL      = "https://support.edx.org/hc/en-us/articles/115000940568-How-do-I-activate-my-account-"
	SupportUnlinkURL        = "https://support.edx.org/hc/en-us/articles/207206067"
)

// Props are supplied by the parent page.
type Props struct {
	HasLinkedTPA      bool
	IsVerifiedAccount bool
	LogoutURL         string
}

// DefaultProps mirrors what the page assumes when a flag is not known yet.
func DefaultProps(logoutURL string) Props {
	return Props{HasLinkedTPA: false, IsVerifiedAccount: true, LogoutURL: logoutURL}
}

// Navigator performs the full page redirect on final close.
type Navigator interface {
	Navigate(url string)
}

// Flow holds the local password and turns user gestures into dispatched
// actions. The password lives only here.
type Flow struct {
	mu       sync.Mutex
	props    Props
	password string
	actions  Dispatchers
}

func NewFlow(props Props, actions Dispatchers) *Flow {
	return &Flow{props: props, actions: actions}
}

func (f *Flow) Props() Props {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.props
}

func (f *Flow) SetProps(props Props) {
	f.mu.Lock()
	f.props = props
	f.mu.Unlock()
}

func (f *Flow) Password() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.password
}

// CanDelete is the eligibility gate for the delete button.
func (p Props) CanDelete() bool {
	return p.IsVerifiedAccount && !p.HasLinkedTPA
}

// HandleDeleteClick opens the confirmation modal. A disabled button does
// nothing; the return value reports whether anything was dispatched.
func (f *Flow) HandleDeleteClick(ctx context.Context) bool {
	if !f.Props().CanDelete() {
		return false
	}
	f.actions.DeleteAccountConfirmation(ctx)
	return true
}

// CanSubmit reports whether the confirmation modal accepts a submit: the
// account is eligible and the modal is open and idle.
func (p Props) CanSubmit(status Status) bool {
	if !p.CanDelete() {
		return false
	}
	return status == StatusConfirming || status == StatusFailed
}

// HandleSubmit is the modal submit. Outside an open modal on an eligible
// account it does nothing; the return value reports whether anything was
// dispatched.
func (f *Flow) HandleSubmit(ctx context.Context, status Status) bool {
	if !f.Props().CanSubmit(status) {
		return false
	}
	password := f.Password()
	if password == "" {
		f.actions.DeleteAccountFailure(ctx, ErrorEmptyPassword)
		return true
	}
	f.actions.DeleteAccount(ctx, password)
	return true
}

func (f *Flow) HandleCancel(ctx context.Context) {
	f.mu.Lock()
	f.password = ""
	f.mu.Unlock()
	f.actions.DeleteAccountCancel(ctx)
}

// HandlePasswordChange stores the trimmed value and resets any error,
// on every edit.
func (f *Flow) HandlePasswordChange(ctx context.Context, value string) {
	f.mu.Lock()
	f.password = strings.TrimSpace(value)
	f.mu.Unlock()
	f.actions.DeleteAccountReset(ctx)
}

// HandleFinalClose leaves the app entirely; the account no longer exists
// to hold a session.
func (f *Flow) HandleFinalClose(nav Navigator) {
	f.mu.Lock()
	f.password = ""
	logoutURL := f.props.LogoutURL
	f.mu.Unlock()
	nav.Navigate(logoutURL)
}
