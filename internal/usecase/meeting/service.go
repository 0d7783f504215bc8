package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	pkgai "github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

// Transcriber converts stored audio into plain text
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, model, filename string, audio io.Reader) (string, error)
}

// ChatCompleter runs one chat completion and returns the generated text
type ChatCompleter interface {
	Name() string
	ChatCompletion(ctx context.Context, req pkgai.ChatRequest) (string, error)
}

// Service defines meeting use cases
type Service interface {
	// Upload stores the audio, records the meeting, transcribes and
	// summarizes it and returns the finalized meeting
	Upload(ctx context.Context, input UploadInput) (*entities.Meeting, error)
	GetMeeting(ctx context.Context, id int64) (*entities.Meeting, error)
	ListMeetings(ctx context.Context) ([]*entities.Meeting, error)
}

// UploadInput represents input for an audio upload
type UploadInput struct {
	Title            *string
	OriginalFilename string
	ContentType      string
	Size             int64
	Content          io.Reader
}

// Options carries the provider parameters used by the pipeline
type Options struct {
	TranscriptionModel string
	SummaryModel       string
	SummaryMaxTokens   int
	SummaryTemperature float64
	CacheTTL           time.Duration
}

type service struct {
	repo        repositories.MeetingRepository
	store       storage.Store
	cache       cache.Store
	transcriber Transcriber
	summarizer  ChatCompleter
	opts        Options
	logger      *zap.Logger
}

// NewService creates a new meeting service. cacheStore may be nil.
func NewService(
	repo repositories.MeetingRepository,
	store storage.Store,
	cacheStore cache.Store,
	transcriber Transcriber,
	summarizer ChatCompleter,
	opts Options,
	logger *zap.Logger,
) Service {
	return &service{
		repo:        repo,
		store:       store,
		cache:       cacheStore,
		transcriber: transcriber,
		summarizer:  summarizer,
		opts:        opts,
		logger:      logger,
	}
}

var _ Service = (*service)(nil)

// Upload runs the whole pipeline. It is detached from the caller's
// cancellation: once the audio is accepted it runs to completion or failure.
func (s *service) Upload(ctx context.Context, input UploadInput) (*entities.Meeting, error) {
	if input.Content == nil {
		return nil, usecaseErrors.ErrMissingAudio
	}
	ctx = context.WithoutCancel(ctx)

	name := storage.NewAudioFilename(input.OriginalFilename)
	stored, written, err := s.store.Save(ctx, name, input.Content, input.Size, input.ContentType)
	if err != nil {
		return nil, &usecaseErrors.StorageError{Op: "save", Err: err}
	}

	meeting := entities.NewMeeting(input.Title, stored, entities.UploadMetadata{
		OriginalFilename: input.OriginalFilename,
		ContentType:      input.ContentType,
		SizeBytes:        written,
		StorageBackend:   s.store.Backend(),
	})
	if err := s.repo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("📥 Audio stored, meeting created",
			zap.Int64("meeting_id", meeting.ID),
			zap.String("filename", meeting.Filename),
			zap.Int64("size_bytes", written),
		)
	}

	transcript, err := s.transcribe(ctx, meeting.Filename)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Transcription failed",
				zap.Int64("meeting_id", meeting.ID),
				zap.String("provider", s.transcriber.Name()),
				zap.Error(err),
			)
		}
		return nil, &usecaseErrors.TranscriptionError{
			MeetingID: meeting.ID,
			Provider:  s.transcriber.Name(),
			Err:       err,
		}
	}

	summary, actionItems, err := s.summarize(ctx, transcript)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Summarization failed, storing empty summary",
				zap.Int64("meeting_id", meeting.ID),
				zap.String("provider", s.summarizer.Name()),
				zap.Error(err),
			)
		}
		summary, actionItems = "", ""
	}

	meeting.Finalize(transcript, summary, actionItems)
	if err := s.repo.UpdateResults(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to store meeting results: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Meeting processed",
			zap.Int64("meeting_id", meeting.ID),
			zap.Int("transcript_chars", len(transcript)),
		)
	}

	s.cachePut(ctx, meeting)
	return meeting, nil
}

// transcribe reads the stored audio back and sends it to the provider
func (s *service) transcribe(ctx context.Context, stored string) (string, error) {
	audio, err := s.store.Open(ctx, stored)
	if err != nil {
		return "", err
	}
	defer audio.Close()

	return s.transcriber.Transcribe(ctx, s.opts.TranscriptionModel, path.Base(stored), audio)
}

// GetMeeting returns one meeting, served from the read cache when finalized
func (s *service) GetMeeting(ctx context.Context, id int64) (*entities.Meeting, error) {
	if m, ok := s.cacheGet(ctx, id); ok {
		return m, nil
	}

	meeting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cachePut(ctx, meeting)
	return meeting, nil
}

// ListMeetings returns every meeting, newest first
func (s *service) ListMeetings(ctx context.Context) ([]*entities.Meeting, error) {
	return s.repo.List(ctx)
}

func cacheKey(id int64) string {
	return "meeting:" + strconv.FormatInt(id, 10)
}

// cacheGet is best effort; any failure reads through to the repository
func (s *service) cacheGet(ctx context.Context, id int64) (*entities.Meeting, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, cacheKey(id))
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Cache read failed", zap.Int64("meeting_id", id), zap.Error(err))
		}
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var rec cachedMeeting
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		if s.logger != nil {
			s.logger.Warn("Ignoring unreadable cache entry", zap.Int64("meeting_id", id), zap.Error(err))
		}
		return nil, false
	}
	return rec.toEntity(), true
}

// cachePut only stores finalized meetings; they never change afterwards
func (s *service) cachePut(ctx context.Context, m *entities.Meeting) {
	if s.cache == nil || m == nil || !m.IsFinalized() {
		return
	}
	raw, err := json.Marshal(newCachedMeeting(m))
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(m.ID), string(raw), s.opts.CacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("Cache write failed", zap.Int64("meeting_id", m.ID), zap.Error(err))
	}
}

// cachedMeeting keeps the metadata column that the API JSON hides
type cachedMeeting struct {
	ID          int64           `json:"id"`
	Title       *string         `json:"title"`
	Filename    string          `json:"filename"`
	Transcript  *string         `json:"transcript"`
	Summary     *string         `json:"summary"`
	ActionItems *string         `json:"action_items"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newCachedMeeting(m *entities.Meeting) cachedMeeting {
	return cachedMeeting{
		ID:          m.ID,
		Title:       m.Title,
		Filename:    m.Filename,
		Transcript:  m.Transcript,
		Summary:     m.Summary,
		ActionItems: m.ActionItems,
		Metadata:    json.RawMessage(m.Metadata),
		CreatedAt:   m.CreatedAt,
	}
}

func (c cachedMeeting) toEntity() *entities.Meeting {
	return &entities.Meeting{
		ID:          c.ID,
		Title:       c.Title,
		Filename:    c.Filename,
		Transcript:  c.Transcript,
		Summary:     c.Summary,
		ActionItems: c.ActionItems,
		Metadata:    []byte(c.Metadata),
		CreatedAt:   c.CreatedAt,
	}
}
