package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create inserts a new meeting and fills its ID and CreatedAt
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by ID, returning entities.ErrMeetingNotFound when absent
	FindByID(ctx context.Context, id int64) (*entities.Meeting, error)

	// List retrieves every meeting, newest first
	List(ctx context.Context) ([]*entities.Meeting, error)

	// UpdateResults writes transcript, summary and action items in one statement
	UpdateResults(ctx context.Context, meeting *entities.Meeting) error
}
