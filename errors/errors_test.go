package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := ErrValidationFailed([]string{"Transcript is empty"})
	assert.Equal(t, "[TRANSCRIPT_VALIDATION_FAILED] Transcript validation failed (Transcript is empty)", err.Error())

	raw := fmt.Errorf("connection reset")
	err = ErrDBTransactionFailed(raw)
	assert.Contains(t, err.Error(), "connection reset")
	assert.True(t, stdErrors.Is(err, raw), "raw error should be reachable through Unwrap")
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("ingest: %w", ErrParseFailed())

	assert.True(t, stdErrors.Is(wrapped, ErrParseFailed()))
	assert.False(t, stdErrors.Is(wrapped, ErrValidationFailed(nil)))
	assert.True(t, IsCode(wrapped, ErrorCode_TRANSCRIPT_PARSE_FAILED))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorCode_TRANSCRIPT_PARSE_FAILED, appErr.Code)
}

func TestAppError_WithDetailDoesNotShareMaps(t *testing.T) {
	base := ErrMeetingNotFound("a")
	other := base.WithDetail("extra", "1")

	assert.Equal(t, "a", other.Details["meeting_id"])
	_, leaked := base.Details["extra"]
	assert.False(t, leaked)
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "MEETING_NOT_ANALYZED", ErrorCode_MEETING_NOT_ANALYZED.String())
	assert.Equal(t, "UNKNOWN", ErrorCode(999).String())
}
