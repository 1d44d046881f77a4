package entities

import "time"

// UploadDateFormat is the storage format for MeetingRecord.UploadDate.
const UploadDateFormat = "2006-01-02 15:04:05"

// MeetingRecord aggregates every analysis output for one processed upload.
// It is created once, at the end of the pipeline, with all fields populated
// at the same time; optional analysis fields are either fully present or nil.
type MeetingRecord struct {
	ID             int64           `json:"id"`
	Filename       string          `json:"filename"`
	UploadDate     string          `json:"upload_date"`
	Transcription  *Transcription  `json:"transcription,omitempty"`
	Summary        *Summary        `json:"summary,omitempty"`
	Sentiment      *Sentiment      `json:"sentiment,omitempty"`
	Topics         []Topic         `json:"topics,omitempty"`
	Speakers       *Speakers       `json:"speakers,omitempty"`
	KnowledgeGraph *KnowledgeGraph `json:"knowledge_graph,omitempty"`
	FileSize       int64           `json:"file_size"`
	Duration       float64         `json:"duration"`
}

// NewMeetingRecord creates an unsaved record with the upload timestamp set
func NewMeetingRecord(filename string, fileSize int64, duration float64) *MeetingRecord {
	return &MeetingRecord{
		Filename:   filename,
		UploadDate: time.Now().Format(UploadDateFormat),
		FileSize:   fileSize,
		Duration:   duration,
	}
}

// MeetingCategory returns the LLM-assigned category, or "" when no summary exists
func (m *MeetingRecord) MeetingCategory() string {
	if m.Summary == nil {
		return ""
	}
	return m.Summary.MeetingCategory
}
