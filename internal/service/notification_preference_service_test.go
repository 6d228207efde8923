package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Get(ctx context.Context, rawURL string) (json.RawMessage, error) {
	args := m.Called(ctx, rawURL)
	data, _ := args.Get(0).(json.RawMessage)
	return data, args.Error(1)
}

func (m *mockTransport) Patch(ctx context.Context, rawURL string, body interface{}) (json.RawMessage, error) {
	args := m.Called(ctx, rawURL, body)
	data, _ := args.Get(0).(json.RawMessage)
	return data, args.Error(1)
}

const lms = "https://lms.example.com"

func TestGetCourseNotificationPreferences_ReturnsRawPayload(t *testing.T) {
	tr := new(mockTransport)
	payload := json.RawMessage(`{"course_id":"c1","notification_preference_config":{}}`)
	tr.On("Get", mock.Anything, lms+"/api/notifications/configurations/c1").Return(payload, nil)

	svc := NewNotificationPreferenceService(lms+"/", tr)
	got, err := svc.GetCourseNotificationPreferences(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, payload, got)
	tr.AssertExpectations(t)
}

func TestGetCourseList_UsesEnrollmentsEndpoint(t *testing.T) {
	tr := new(mockTransport)
	payload := json.RawMessage(`[{"course":{"id":"c1"}}]`)
	tr.On("Get", mock.Anything, lms+"/api/notifications/enrollments/").Return(payload, nil)

	svc := NewNotificationPreferenceService(lms, tr)
	got, err := svc.GetCourseList(context.Background())

	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestGetCourseList_PropagatesTransportError(t *testing.T) {
	tr := new(mockTransport)
	boom := errors.New("connection refused")
	tr.On("Get", mock.Anything, mock.Anything).Return(nil, boom)

	svc := NewNotificationPreferenceService(lms, tr)
	_, err := svc.GetCourseList(context.Background())

	assert.Same(t, boom, err)
}

func TestPatchAppPreferenceToggle_SnakeCasesBody(t *testing.T) {
	tr := new(mockTransport)
	want := map[string]interface{}{
		"notification_app": "discussion",
		"value":            false,
	}
	tr.On("Patch", mock.Anything, lms+"/api/notifications/configurations/c1", want).Return(json.RawMessage(`{}`), nil)

	svc := NewNotificationPreferenceService(lms, tr)
	_, err := svc.PatchAppPreferenceToggle(context.Background(), "c1", "discussion", false)

	require.NoError(t, err)
	tr.AssertExpectations(t)
}

func TestPatchPreferenceToggle_NormalizesNotificationType(t *testing.T) {
	tr := new(mockTransport)
	want := map[string]interface{}{
		"notification_app":     "app",
		"notification_type":    "email_digest",
		"notification_channel": "email",
		"value":                true,
	}
	tr.On("Patch", mock.Anything, lms+"/api/notifications/configurations/c1", want).Return(json.RawMessage(`{"updated":true}`), nil)

	svc := NewNotificationPreferenceService(lms, tr)
	got, err := svc.PatchPreferenceToggle(context.Background(), "c1", "app", "emailDigest", "email", true)

	require.NoError(t, err)
	assert.JSONEq(t, `{"updated":true}`, string(got))
	tr.AssertExpectations(t)
}

func TestPatchPreferenceToggle_EscapesCourseKey(t *testing.T) {
	tr := new(mockTransport)
	tr.On("Patch", mock.Anything, lms+"/api/notifications/configurations/course-v1:edX+DemoX+Demo_Course", mock.Anything).
		Return(json.RawMessage(`{}`), nil)

	svc := NewNotificationPreferenceService(lms, tr)
	_, err := svc.PatchPreferenceToggle(context.Background(), "course-v1:edX+DemoX+Demo_Course", "discussion", "new_comment", "web", true)

	require.NoError(t, err)
	tr.AssertExpectations(t)
}
