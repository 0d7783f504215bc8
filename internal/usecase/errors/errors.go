package errors

import (
	"errors"
	"fmt"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Meeting errors
var (
	ErrMeetingNotFound = entities.ErrMeetingNotFound
	ErrMissingAudio    = errors.New("audio file is required")
)

// TranscriptionError is returned by the upload pipeline when the
// transcription provider fails. The meeting it belongs to stays persisted
// in its pre-transcription state.
type TranscriptionError struct {
	MeetingID int64
	Provider  string
	Err       error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription of meeting %d via %s failed: %v", e.MeetingID, e.Provider, e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// StorageError is returned when the uploaded audio cannot be stored
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
