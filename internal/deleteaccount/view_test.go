package deleteaccount

import (
	"context"
	"encoding/json"
	"testing"

	"learner-account-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopLogger() logger.ILogger {
	return logger.NewNopLogger()
}

func TestRender_Banners(t *testing.T) {
	p := NewPrinter("en")

	v := Render(Props{IsVerifiedAccount: true}, State{}, p)
	assert.Empty(t, v.Banners)

	v = Render(Props{IsVerifiedAccount: false, HasLinkedTPA: true}, State{}, p)
	require.Len(t, v.Banners, 2)
	assert.Equal(t, msgPleaseActivate, v.Banners[0].InstructionMessageId)
	assert.Equal(t, SupportActivateURL, v.Banners[0].SupportURL)
	assert.Equal(t, msgPleaseUnlink, v.Banners[1].InstructionMessageId)
	assert.Equal(t, SupportUnlinkURL, v.Banners[1].SupportURL)
}

func TestRender_ModalVisibility(t *testing.T) {
	tests := []struct {
		status           Status
		wantConfirmation bool
		wantSuccess      bool
	}{
		{status: StatusNone},
		{status: StatusConfirming, wantConfirmation: true},
		{status: StatusPending, wantConfirmation: true},
		{status: StatusFailed, wantConfirmation: true},
		{status: StatusDeleted, wantSuccess: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			v := Render(DefaultProps("/logout"), State{Status: tt.status}, NewPrinter("en"))
			assert.Equal(t, tt.wantConfirmation, v.ConfirmationModal.Open)
			assert.Equal(t, tt.wantSuccess, v.SuccessModal.Open)
		})
	}
}

func TestRender_LocalizedCopy(t *testing.T) {
	v := Render(DefaultProps("/logout"), State{Status: StatusFailed, ErrorType: ErrorEmptyPassword}, NewPrinter("fr-CA, en;q=0.5"))

	assert.Equal(t, "Delete My Account", v.Heading)
	assert.Equal(t, "A password is required", v.ConfirmationModal.ErrorMessage)
	assert.Len(t, v.Paragraphs, 2)
}

func TestRender_NeverCarriesPassword(t *testing.T) {
	sess := NewSession("u1", DefaultProps("/logout"))
	sess.Flow.HandlePasswordChange(context.Background(), "topsecret")

	data, err := json.Marshal(sess.View(NewPrinter("en")))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "topsecret")
}
