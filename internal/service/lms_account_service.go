package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// AccountTransport is the subset of the LMS transport used for account calls.
type AccountTransport interface {
	Get(ctx context.Context, rawURL string) (json.RawMessage, error)
	PostForm(ctx context.Context, rawURL string, form url.Values) (json.RawMessage, error)
}

type ILmsAccountService interface {
	// DeactivateLogout retires the caller's account. The password is
	// checked server-side only.
	DeactivateLogout(ctx context.Context, password string) error
	IsVerifiedAccount(ctx context.Context, username string) (bool, error)
	HasLinkedTPA(ctx context.Context) (bool, error)
}

type lmsAccountService struct {
	lmsBaseURL string
	transport  AccountTransport
}

func NewLmsAccountService(lmsBaseURL string, transport AccountTransport) ILmsAccountService {
	return &lmsAccountService{
		lmsBaseURL: strings.TrimRight(lmsBaseURL, "/"),
		transport:  transport,
	}
}

func (s *lmsAccountService) DeactivateLogout(ctx context.Context, password string) error {
	_, err := s.transport.PostForm(ctx, s.lmsBaseURL+"/api/user/v1/accounts/deactivate_logout/", url.Values{
		"password": {password},
	})
	return err
}

type lmsAccount struct {
	IsActive bool `json:"is_active"`
}

func (s *lmsAccountService) IsVerifiedAccount(ctx context.Context, username string) (bool, error) {
	data, err := s.transport.Get(ctx, fmt.Sprintf("%s/api/user/v1/accounts/%s", s.lmsBaseURL, url.PathEscape(username)))
	if err != nil {
		return false, err
	}
	var account lmsAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return false, fmt.Errorf("failed to decode account: %w", err)
	}
	return account.IsActive, nil
}

type tpaProviderStatus struct {
	Id        string `json:"id"`
	Connected bool   `json:"connected"`
}

func (s *lmsAccountService) HasLinkedTPA(ctx context.Context) (bool, error) {
	data, err := s.transport.Get(ctx, s.lmsBaseURL+"/api/third_party_auth/v0/providers/user_status")
	if err != nil {
		return false, err
	}
	var providers []tpaProviderStatus
	if err := json.Unmarshal(data, &providers); err != nil {
		return false, fmt.Errorf("failed to decode provider status: %w", err)
	}
	for _, p := range providers {
		if p.Connected {
			return true, nil
		}
	}
	return false, nil
}
