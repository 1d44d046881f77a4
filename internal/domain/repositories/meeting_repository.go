package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting record data access
type MeetingRepository interface {
	// Save persists a fully analyzed meeting in a single insert and assigns its ID
	Save(ctx context.Context, meeting *entities.MeetingRecord) error

	// GetAll retrieves every meeting, newest upload first
	GetAll(ctx context.Context) ([]*entities.MeetingRecord, error)

	// GetByID retrieves one meeting by its numeric ID
	GetByID(ctx context.Context, id int64) (*entities.MeetingRecord, error)

	// DeleteByID removes one meeting by its numeric ID
	DeleteByID(ctx context.Context, id int64) error

	// Search retrieves meetings whose filename, transcription text or
	// executive summary contains the query as a case-sensitive substring,
	// newest upload first
	Search(ctx context.Context, query string) ([]*entities.MeetingRecord, error)
}
