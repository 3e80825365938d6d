package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimtime/trimtime-api/internal/httperr"
	"github.com/trimtime/trimtime-api/internal/models"
)

func TestServe_FromWaiting(t *testing.T) {
	b := &models.Booking{Status: string(StatusWaiting)}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Serve(b, now))
	assert.Equal(t, string(StatusDone), b.Status)
	assert.Equal(t, now, b.UpdatedAt)
}

func TestCancel_FromWaiting(t *testing.T) {
	b := &models.Booking{Status: string(StatusWaiting)}

	require.NoError(t, Cancel(b, time.Now()))
	assert.Equal(t, string(StatusCancelled), b.Status)
}

func TestMarkNoShow_FromWaiting(t *testing.T) {
	b := &models.Booking{Status: string(StatusWaiting)}

	require.NoError(t, MarkNoShow(b, time.Now()))
	assert.Equal(t, string(StatusNoShow), b.Status)
}

func TestTransitions_TerminalStatesAreFrozen(t *testing.T) {
	terminal := []Status{StatusDone, StatusCancelled, StatusNoShow}

	for _, st := range terminal {
		b := &models.Booking{Status: string(st)}

		err := Serve(b, time.Now())
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "serve from %s", st)

		err = Cancel(b, time.Now())
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "cancel from %s", st)

		err = MarkNoShow(b, time.Now())
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "no-show from %s", st)

		// Status untouched after rejected transitions.
		assert.Equal(t, string(st), b.Status)
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusWaiting, InitialStatus())
}
