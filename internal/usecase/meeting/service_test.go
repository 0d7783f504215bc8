package meeting

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	pkgai "github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

// fakeRepo is an in-memory MeetingRepository
type fakeRepo struct {
	mu       sync.Mutex
	nextID   int64
	clock    time.Time
	meetings map[int64]entities.Meeting
	finds    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clock:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		meetings: make(map[int64]entities.Meeting),
	}
}

func (r *fakeRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.clock = r.clock.Add(time.Second)
	m.ID = r.nextID
	m.CreatedAt = r.clock
	r.meetings[m.ID] = *m
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	m, ok := r.meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	return &m, nil
}

func (r *fakeRepo) List(_ context.Context) ([]*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakeRepo) UpdateResults(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.meetings[m.ID]
	if !ok {
		return entities.ErrMeetingNotFound
	}
	stored.Transcript = m.Transcript
	stored.Summary = m.Summary
	stored.ActionItems = m.ActionItems
	r.meetings[m.ID] = stored
	return nil
}

type fakeTranscriber struct {
	text     string
	err      error
	gotModel string
	gotName  string
	gotAudio string
}

func (f *fakeTranscriber) Name() string { return "fake-stt" }

func (f *fakeTranscriber) Transcribe(_ context.Context, model, filename string, audio io.Reader) (string, error) {
	data, _ := io.ReadAll(audio)
	f.gotModel, f.gotName, f.gotAudio = model, filename, string(data)
	return f.text, f.err
}

type fakeChat struct {
	reply  string
	err    error
	gotReq pkgai.ChatRequest
}

func (f *fakeChat) Name() string { return "fake-llm" }

func (f *fakeChat) ChatCompletion(_ context.Context, req pkgai.ChatRequest) (string, error) {
	f.gotReq = req
	return f.reply, f.err
}

type fixture struct {
	svc   Service
	repo  *fakeRepo
	stt   *fakeTranscriber
	chat  *fakeChat
	root  string
	cache *cache.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	mem := cache.NewMemoryStore()
	t.Cleanup(func() { mem.Close() })

	f := &fixture{
		repo:  newFakeRepo(),
		stt:   &fakeTranscriber{text: "we discussed the roadmap"},
		chat:  &fakeChat{reply: `{"summary": "ok", "decisions": [], "action_items": []}`},
		root:  root,
		cache: mem,
	}
	f.svc = NewService(f.repo, store, mem, f.stt, f.chat, Options{
		TranscriptionModel: "whisper-1",
		SummaryModel:       "gpt-3.5-turbo",
		SummaryMaxTokens:   600,
		SummaryTemperature: 0.2,
		CacheTTL:           time.Minute,
	}, nil)
	return f
}

func (f *fixture) upload(t *testing.T, name string, title *string) (*entities.Meeting, error) {
	t.Helper()
	return f.svc.Upload(context.Background(), UploadInput{
		Title:            title,
		OriginalFilename: name,
		ContentType:      "audio/wav",
		Size:             int64(len("RIFF-data")),
		Content:          strings.NewReader("RIFF-data"),
	})
}

func strPtr(s string) *string { return &s }

func TestUpload_StructuredSummary(t *testing.T) {
	f := newFixture(t)
	f.chat.reply = "Here you go:\n{\"summary\": \"Team aligned on Q3 goals.\", \"decisions\": [\"Adopt new roadmap\"], \"action_items\": [\"Alice to draft doc by Friday\"]}"

	m, err := f.upload(t, "standup.mp3", strPtr("Weekly sync"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if got := *m.Summary; got != "Team aligned on Q3 goals.\n\nKey decisions:\n- Adopt new roadmap" {
		t.Errorf("summary = %q", got)
	}
	if got := *m.ActionItems; got != "- Alice to draft doc by Friday" {
		t.Errorf("action_items = %q", got)
	}
	if *m.Transcript != "we discussed the roadmap" {
		t.Errorf("transcript = %q", *m.Transcript)
	}
	if m.Title == nil || *m.Title != "Weekly sync" {
		t.Errorf("title = %v", m.Title)
	}

	// Stored record matches the returned one
	stored, err := f.repo.FindByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if *stored.Summary != *m.Summary || *stored.ActionItems != *m.ActionItems {
		t.Errorf("stored record differs from response")
	}
}

func TestUpload_StoresAudioBeforeTranscription(t *testing.T) {
	f := newFixture(t)

	m, err := f.upload(t, "clip.MP4", nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if !strings.HasSuffix(m.Filename, ".MP4") {
		t.Errorf("filename %q does not keep the extension", m.Filename)
	}
	if !strings.HasPrefix(m.Filename, f.root) {
		t.Errorf("filename %q is not under the storage root %q", m.Filename, f.root)
	}
	data, err := os.ReadFile(m.Filename)
	if err != nil || string(data) != "RIFF-data" {
		t.Errorf("stored file = %q, %v", data, err)
	}

	if f.stt.gotAudio != "RIFF-data" {
		t.Errorf("transcriber received %q", f.stt.gotAudio)
	}
	if f.stt.gotModel != "whisper-1" {
		t.Errorf("transcriber model = %q", f.stt.gotModel)
	}
	if !strings.HasSuffix(f.stt.gotName, ".MP4") || strings.Contains(f.stt.gotName, "/") {
		t.Errorf("transcriber filename = %q", f.stt.gotName)
	}

	meta := m.UploadMetadata()
	if meta.OriginalFilename != "clip.MP4" || meta.SizeBytes != 9 || meta.StorageBackend != "local" {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestUpload_DefaultExtension(t *testing.T) {
	f := newFixture(t)

	m, err := f.upload(t, "recording", nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasSuffix(m.Filename, storage.DefaultAudioExtension) {
		t.Errorf("filename %q lacks default extension", m.Filename)
	}
}

func TestUpload_UniqueFilenames(t *testing.T) {
	f := newFixture(t)

	a, err := f.upload(t, "same.wav", nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	b, err := f.upload(t, "same.wav", nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if a.Filename == b.Filename {
		t.Fatalf("both uploads stored at %q", a.Filename)
	}
}

func TestUpload_TranscriptionFailureKeepsRecord(t *testing.T) {
	f := newFixture(t)
	f.stt.err = errors.New("provider unavailable")

	m, err := f.upload(t, "call.ogg", strPtr("Retro"))
	if m != nil {
		t.Errorf("Upload() returned a meeting on failure")
	}

	var terr *usecaseErrors.TranscriptionError
	if !errors.As(err, &terr) {
		t.Fatalf("Upload() error = %v, want TranscriptionError", err)
	}
	if !strings.Contains(err.Error(), "provider unavailable") {
		t.Errorf("error %q does not carry the cause", err)
	}

	stored, err := f.svc.GetMeeting(context.Background(), terr.MeetingID)
	if err != nil {
		t.Fatalf("GetMeeting() error = %v", err)
	}
	if stored.Filename == "" {
		t.Error("partial record has no filename")
	}
	if stored.Transcript != nil || stored.Summary != nil || stored.ActionItems != nil {
		t.Errorf("partial record has derived fields: %+v", stored)
	}
	if stored.Title == nil || *stored.Title != "Retro" {
		t.Errorf("title = %v", stored.Title)
	}
}

func TestUpload_SummarizationFailureIsSoft(t *testing.T) {
	f := newFixture(t)
	f.chat.err = errors.New("rate limited")

	m, err := f.upload(t, "call.wav", nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if *m.Transcript != "we discussed the roadmap" {
		t.Errorf("transcript = %q", *m.Transcript)
	}
	if *m.Summary != "" || *m.ActionItems != "" {
		t.Errorf("summary = %q, action_items = %q, want empty", *m.Summary, *m.ActionItems)
	}
}

func TestUpload_WrongShapeIsSoft(t *testing.T) {
	f := newFixture(t)
	f.chat.reply = `{"summary": ["not", "a", "string"]}`

	m, err := f.upload(t, "call.wav", nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if *m.Summary != "" || *m.ActionItems != "" {
		t.Errorf("summary = %q, action_items = %q, want empty", *m.Summary, *m.ActionItems)
	}
}

func TestUpload_UnstructuredFallback(t *testing.T) {
	f := newFixture(t)
	f.chat.reply = "Meeting went well, no decisions made."

	m, err := f.upload(t, "call.wav", nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if *m.Summary != "Meeting went well, no decisions made." {
		t.Errorf("summary = %q", *m.Summary)
	}
	if *m.ActionItems != "" {
		t.Errorf("action_items = %q", *m.ActionItems)
	}
}

func TestUpload_SummaryRequest(t *testing.T) {
	f := newFixture(t)

	if _, err := f.upload(t, "call.wav", nil); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	req := f.chat.gotReq
	if req.Model != "gpt-3.5-turbo" || req.MaxTokens != 600 || req.Temperature != 0.2 {
		t.Errorf("request params = %+v", req)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(req.Messages))
	}
	if req.Messages[0].Role != "system" || req.Messages[0].Content != summarySystemPrompt {
		t.Errorf("system message = %+v", req.Messages[0])
	}
	user := req.Messages[1].Content
	if !strings.Contains(user, "Meeting transcript:\n\nwe discussed the roadmap\n\n") {
		t.Errorf("user prompt does not embed the transcript: %q", user)
	}
	if !strings.HasSuffix(user, "Output in JSON with fields: summary, decisions (array), action_items (array).") {
		t.Errorf("user prompt suffix: %q", user)
	}
}

func TestUpload_MissingContent(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Upload(context.Background(), UploadInput{OriginalFilename: "x.wav"})
	if !errors.Is(err, usecaseErrors.ErrMissingAudio) {
		t.Fatalf("Upload() error = %v, want ErrMissingAudio", err)
	}
	if len(f.repo.meetings) != 0 {
		t.Errorf("repository has %d records", len(f.repo.meetings))
	}
}

func TestUpload_IgnoresCallerCancellation(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Upload(ctx, UploadInput{
		OriginalFilename: "call.wav",
		Content:          strings.NewReader("RIFF"),
	})
	if err != nil {
		t.Fatalf("Upload() with cancelled context error = %v", err)
	}
}

func TestListMeetings_NewestFirst(t *testing.T) {
	f := newFixture(t)

	var ids []int64
	for _, title := range []string{"A", "B", "C"} {
		m, err := f.upload(t, "x.wav", strPtr(title))
		if err != nil {
			t.Fatalf("Upload(%s) error = %v", title, err)
		}
		ids = append(ids, m.ID)
	}

	list, err := f.svc.ListMeetings(context.Background())
	if err != nil {
		t.Fatalf("ListMeetings() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	want := []string{"C", "B", "A"}
	for i, m := range list {
		if *m.Title != want[i] {
			t.Errorf("list[%d].title = %q, want %q", i, *m.Title, want[i])
		}
	}
}

func TestGetMeeting_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetMeeting(context.Background(), 404)
	if !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("GetMeeting() error = %v, want ErrMeetingNotFound", err)
	}
}

func TestGetMeeting_ServesFinalizedFromCache(t *testing.T) {
	f := newFixture(t)

	m, err := f.upload(t, "call.wav", strPtr("Cached"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	got, err := f.svc.GetMeeting(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetMeeting() error = %v", err)
	}
	if f.repo.finds != 0 {
		t.Errorf("repository hit %d times, want 0", f.repo.finds)
	}
	if *got.Title != "Cached" || *got.Summary != *m.Summary {
		t.Errorf("cached meeting = %+v", got)
	}
	if got.UploadMetadata().OriginalFilename != "call.wav" {
		t.Errorf("cached metadata lost: %s", got.Metadata)
	}
}

func TestGetMeeting_PartialRecordNotCached(t *testing.T) {
	f := newFixture(t)
	f.stt.err = errors.New("boom")

	_, err := f.upload(t, "call.wav", nil)
	var terr *usecaseErrors.TranscriptionError
	if !errors.As(err, &terr) {
		t.Fatalf("Upload() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := f.svc.GetMeeting(context.Background(), terr.MeetingID); err != nil {
			t.Fatalf("GetMeeting() error = %v", err)
		}
	}
	if f.repo.finds != 2 {
		t.Errorf("repository hit %d times, want 2", f.repo.finds)
	}
	if _, ok, _ := f.cache.Get(context.Background(), cacheKey(terr.MeetingID)); ok {
		t.Error("partial record was cached")
	}
}
