package nats

import (
	"testing"
	"time"

	"learner-account-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "account.ACCOUNT_DELETED", Subject(events.NewAccountDeleted("1", time.Now())))
}
