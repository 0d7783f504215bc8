package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Meeting is one uploaded audio session and the text derived from it.
//
// A meeting is persisted twice: once right after the audio is stored
// (Transcript, Summary and ActionItems are nil) and once when the
// pipeline finishes, at which point all three are written together.
type Meeting struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       *string        `json:"title" gorm:"type:varchar(250)"`
	Filename    string         `json:"filename" gorm:"type:varchar(500);not null"`
	Transcript  *string        `json:"transcript" gorm:"type:text"`
	Summary     *string        `json:"summary" gorm:"type:text"`
	ActionItems *string        `json:"action_items" gorm:"type:text"`
	Metadata    datatypes.JSON `json:"-" gorm:"type:jsonb;default:'{}'"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// UploadMetadata describes the stored audio behind a meeting
type UploadMetadata struct {
	OriginalFilename string `json:"original_filename,omitempty"`
	ContentType      string `json:"content_type,omitempty"`
	SizeBytes        int64  `json:"size_bytes"`
	StorageBackend   string `json:"storage_backend,omitempty"`
}

// NewMeeting creates a meeting in its pre-transcription state
func NewMeeting(title *string, filename string, meta UploadMetadata) *Meeting {
	m := &Meeting{
		Title:    title,
		Filename: filename,
	}
	if raw, err := json.Marshal(meta); err == nil {
		m.Metadata = datatypes.JSON(raw)
	}
	return m
}

// UploadMetadata decodes the stored upload metadata
func (m *Meeting) UploadMetadata() UploadMetadata {
	var meta UploadMetadata
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &meta)
	}
	return meta
}

// IsFinalized reports whether the pipeline has written the derived text
func (m *Meeting) IsFinalized() bool {
	return m.Transcript != nil
}

// Finalize sets the transcript and summary fields in one step
func (m *Meeting) Finalize(transcript, summary, actionItems string) {
	m.Transcript = &transcript
	m.Summary = &summary
	m.ActionItems = &actionItems
}
