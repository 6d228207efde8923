package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"learner-account-be/pkg/casing"
)

// PreferenceTransport is the authenticated HTTP transport the preference
// calls go through. *lmsclient.Client satisfies it.
type PreferenceTransport interface {
	Get(ctx context.Context, rawURL string) (json.RawMessage, error)
	Patch(ctx context.Context, rawURL string, body interface{}) (json.RawMessage, error)
}

type INotificationPreferenceService interface {
	GetCourseNotificationPreferences(ctx context.Context, courseId string) (json.RawMessage, error)
	GetCourseList(ctx context.Context) (json.RawMessage, error)
	PatchAppPreferenceToggle(ctx context.Context, courseId, appId string, value interface{}) (json.RawMessage, error)
	PatchPreferenceToggle(ctx context.Context, courseId, notificationApp, notificationType, notificationChannel string, value interface{}) (json.RawMessage, error)
}

// notificationPreferenceService is a pass-through: payloads are returned
// as-is and transport errors are returned unwrapped.
type notificationPreferenceService struct {
	lmsBaseURL string
	transport  PreferenceTransport
}

func NewNotificationPreferenceService(lmsBaseURL string, transport PreferenceTransport) INotificationPreferenceService {
	return &notificationPreferenceService{
		lmsBaseURL: strings.TrimRight(lmsBaseURL, "/"),
		transport:  transport,
	}
}

func (s *notificationPreferenceService) configurationURL(courseId string) string {
	return fmt.Sprintf("%s/api/notifications/configurations/%s", s.lmsBaseURL, url.PathEscape(courseId))
}

func (s *notificationPreferenceService) GetCourseNotificationPreferences(ctx context.Context, courseId string) (json.RawMessage, error) {
	return s.transport.Get(ctx, s.configurationURL(courseId))
}

func (s *notificationPreferenceService) GetCourseList(ctx context.Context) (json.RawMessage, error) {
	return s.transport.Get(ctx, s.lmsBaseURL+"/api/notifications/enrollments/")
}

func (s *notificationPreferenceService) PatchAppPreferenceToggle(ctx context.Context, courseId, appId string, value interface{}) (json.RawMessage, error) {
	patchData := casing.SnakeKeys(map[string]interface{}{
		"notificationApp": appId,
		"value":           value,
	})
	return s.transport.Patch(ctx, s.configurationURL(courseId), patchData)
}

func (s *notificationPreferenceService) PatchPreferenceToggle(
	ctx context.Context,
	courseId, notificationApp, notificationType, notificationChannel string,
	value interface{},
) (json.RawMessage, error) {
	patchData := casing.SnakeKeys(map[string]interface{}{
		"notificationApp":     notificationApp,
		"notificationType":    casing.Snake(notificationType),
		"notificationChannel": notificationChannel,
		"value":               value,
	})
	return s.transport.Patch(ctx, s.configurationURL(courseId), patchData)
}
