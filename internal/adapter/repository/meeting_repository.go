package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "github.com/johnquangdev/meeting-analyzer/errors"
	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
	"github.com/johnquangdev/meeting-analyzer/internal/domain/repositories"
)

// meetingRow is the persistence model for one analyzed meeting. Analysis
// results are stored as JSON documents so the schema stays stable as the
// analysis shapes evolve; NULL means the stage produced nothing.
type meetingRow struct {
	ID             int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Filename       string         `gorm:"column:filename;not null"`
	UploadDate     string         `gorm:"column:upload_date;not null"`
	Transcription  datatypes.JSON `gorm:"column:transcription"`
	Summary        datatypes.JSON `gorm:"column:summary"`
	Sentiment      datatypes.JSON `gorm:"column:sentiment"`
	Topics         datatypes.JSON `gorm:"column:topics"`
	Speakers       datatypes.JSON `gorm:"column:speakers"`
	KnowledgeGraph datatypes.JSON `gorm:"column:knowledge_graph"`
	FileSize       int64          `gorm:"column:file_size"`
	Duration       float64        `gorm:"column:duration"`
}

func (meetingRow) TableName() string {
	return "meetings"
}

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Save persists a fully analyzed meeting in a single insert
func (r *meetingRepository) Save(ctx context.Context, meeting *entities.MeetingRecord) error {
	if meeting == nil {
		return apperrors.ErrInvalidArgument("meeting cannot be nil")
	}

	row, err := toRow(meeting)
	if err != nil {
		return apperrors.ErrDBQueryFailed("save meeting", err)
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return apperrors.ErrDBQueryFailed("save meeting", err)
	}
	meeting.ID = row.ID
	return nil
}

// GetAll retrieves every meeting, newest upload first. A row whose stored
// JSON no longer parses fails the whole read rather than surfacing partial
// results.
func (r *meetingRepository) GetAll(ctx context.Context) ([]*entities.MeetingRecord, error) {
	var rows []meetingRow
	if err := r.db.WithContext(ctx).
		Order("upload_date DESC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.ErrDBQueryFailed("list meetings", err)
	}
	return fromRows(rows)
}

// GetByID retrieves one meeting by its numeric ID
func (r *meetingRepository) GetByID(ctx context.Context, id int64) (*entities.MeetingRecord, error) {
	var row meetingRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("meeting")
		}
		return nil, apperrors.ErrDBQueryFailed("get meeting", err)
	}
	meeting, err := fromRow(&row)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("get meeting", err)
	}
	return meeting, nil
}

// DeleteByID removes one meeting by its numeric ID
func (r *meetingRepository) DeleteByID(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&meetingRow{})
	if result.Error != nil {
		return apperrors.ErrDBQueryFailed("delete meeting", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound("meeting")
	}
	return nil
}

// Search retrieves meetings matching the query as a case-sensitive substring
// of the filename or of the serialized transcription and summary columns.
// SQLite's LIKE is case-insensitive for ASCII, so matching uses instr().
func (r *meetingRepository) Search(ctx context.Context, query string) ([]*entities.MeetingRecord, error) {
	var rows []meetingRow
	if err := r.db.WithContext(ctx).
		Where(
			"instr(filename, ?) > 0 OR instr(COALESCE(CAST(transcription AS TEXT), ''), ?) > 0 OR instr(COALESCE(CAST(summary AS TEXT), ''), ?) > 0",
			query, query, query,
		).
		Order("upload_date DESC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.ErrDBQueryFailed("search meetings", err)
	}
	return fromRows(rows)
}

func toRow(meeting *entities.MeetingRecord) (*meetingRow, error) {
	row := &meetingRow{
		ID:         meeting.ID,
		Filename:   meeting.Filename,
		UploadDate: meeting.UploadDate,
		FileSize:   meeting.FileSize,
		Duration:   meeting.Duration,
	}

	var err error
	if meeting.Transcription != nil {
		if row.Transcription, err = marshalColumn("transcription", meeting.Transcription); err != nil {
			return nil, err
		}
	}
	if meeting.Summary != nil {
		if row.Summary, err = marshalColumn("summary", meeting.Summary); err != nil {
			return nil, err
		}
	}
	if meeting.Sentiment != nil {
		if row.Sentiment, err = marshalColumn("sentiment", meeting.Sentiment); err != nil {
			return nil, err
		}
	}
	if meeting.Topics != nil {
		if row.Topics, err = marshalColumn("topics", meeting.Topics); err != nil {
			return nil, err
		}
	}
	if meeting.Speakers != nil {
		if row.Speakers, err = marshalColumn("speakers", meeting.Speakers); err != nil {
			return nil, err
		}
	}
	if meeting.KnowledgeGraph != nil {
		if row.KnowledgeGraph, err = marshalColumn("knowledge_graph", meeting.KnowledgeGraph); err != nil {
			return nil, err
		}
	}
	return row, nil
}

// marshalColumn serializes one analysis result; absent results never reach
// here and stay SQL NULL
func marshalColumn(name string, value interface{}) (datatypes.JSON, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", name, err)
	}
	return datatypes.JSON(data), nil
}

func fromRows(rows []meetingRow) ([]*entities.MeetingRecord, error) {
	meetings := make([]*entities.MeetingRecord, 0, len(rows))
	for i := range rows {
		meeting, err := fromRow(&rows[i])
		if err != nil {
			return nil, apperrors.ErrDBQueryFailed("decode meeting", err)
		}
		meetings = append(meetings, meeting)
	}
	return meetings, nil
}

func fromRow(row *meetingRow) (*entities.MeetingRecord, error) {
	meeting := &entities.MeetingRecord{
		ID:         row.ID,
		Filename:   row.Filename,
		UploadDate: row.UploadDate,
		FileSize:   row.FileSize,
		Duration:   row.Duration,
	}

	if err := unmarshalColumn("transcription", row.Transcription, &meeting.Transcription); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("summary", row.Summary, &meeting.Summary); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("sentiment", row.Sentiment, &meeting.Sentiment); err != nil {
		return nil, err
	}
	if len(row.Topics) > 0 {
		if err := json.Unmarshal(row.Topics, &meeting.Topics); err != nil {
			return nil, fmt.Errorf("row %d: unmarshal topics: %w", row.ID, err)
		}
	}
	if err := unmarshalColumn("speakers", row.Speakers, &meeting.Speakers); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("knowledge_graph", row.KnowledgeGraph, &meeting.KnowledgeGraph); err != nil {
		return nil, err
	}
	return meeting, nil
}

func unmarshalColumn(name string, data datatypes.JSON, target interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return nil
}
