package analysis

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-analyzer/errors"
	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
	"github.com/johnquangdev/meeting-analyzer/internal/usecase/audio"
	pkgai "github.com/johnquangdev/meeting-analyzer/pkg/ai"
)

type fakeRepo struct {
	saved  []*entities.MeetingRecord
	nextID int64
}

func (f *fakeRepo) Save(_ context.Context, m *entities.MeetingRecord) error {
	f.nextID++
	m.ID = f.nextID
	f.saved = append(f.saved, m)
	return nil
}

func (f *fakeRepo) GetAll(context.Context) ([]*entities.MeetingRecord, error) { return f.saved, nil }
func (f *fakeRepo) GetByID(context.Context, int64) (*entities.MeetingRecord, error) {
	return nil, apperrors.ErrNotFound("meeting")
}
func (f *fakeRepo) DeleteByID(context.Context, int64) error { return nil }
func (f *fakeRepo) Search(context.Context, string) ([]*entities.MeetingRecord, error) {
	return nil, nil
}

type fakeTranscriber struct {
	response *pkgai.TranscriptionResponse
	err      error
}

func (f *fakeTranscriber) Transcribe(context.Context, io.Reader, string) (*pkgai.TranscriptionResponse, error) {
	return f.response, f.err
}

// fakeCompleter routes each prompt to a canned response by stage marker
type fakeCompleter struct {
	summaryJSON   string
	summaryErr    error
	sentimentJSON string
	sentimentErr  error
	speakersJSON  string
	speakersErr   error
	graphJSON     string
	graphErr      error
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "comprehensive summary"):
		return f.summaryJSON, f.summaryErr
	case strings.Contains(prompt, "emotional tone"):
		return f.sentimentJSON, f.sentimentErr
	case strings.Contains(prompt, "identify different speakers"):
		return f.speakersJSON, f.speakersErr
	case strings.Contains(prompt, "knowledge graph structure"):
		return f.graphJSON, f.graphErr
	}
	return "", fmt.Errorf("unexpected prompt: %.60s", prompt)
}

func (f *fakeCompleter) ModelName() string { return "fake-model" }

func happyCompleter() *fakeCompleter {
	return &fakeCompleter{
		summaryJSON: `{
			"executive_summary": "Daily standup covering the release.",
			"key_topics": ["release", "qa"],
			"decisions": ["Ship after QA signs off"],
			"action_items": [{"item": "follow up with QA", "responsible_party": "Alice"}],
			"important_quotes": ["QA is almost done."],
			"meeting_category": "standup"
		}`,
		sentimentJSON: `{
			"overall_sentiment": "positive",
			"confidence": 0.7,
			"positive_moments": ["release on track"],
			"negative_moments": [],
			"contentious_topics": [],
			"emotional_highlights": []
		}`,
		speakersJSON: `{
			"estimated_speakers": 2,
			"speaker_segments": [{"text": "Good morning everyone.", "speaker": "Speaker A"}],
			"confidence": 0.6
		}`,
		graphJSON: `{
			"nodes": [{"id": "t1", "label": "release", "type": "topic", "weight": 8}],
			"edges": []
		}`,
	}
}

// writeUploadWAV writes PCM WAV content under the given name; ffmpeg keys on
// content, not extension, so a .mp4 name with WAV bytes normalizes fine
func writeUploadWAV(t *testing.T, path string, seconds float64) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	const sampleRate = 16000
	enc := gowav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, int(seconds*sampleRate)),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = (i % 128) * 50
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func requireFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
}

func newTestService(repo *fakeRepo, tr *fakeTranscriber, c *fakeCompleter) Service {
	processor := audio.NewProcessor(600, zap.NewNop())
	return NewService(repo, processor, tr, c, zap.NewNop())
}

func TestProcessUpload_EndToEnd(t *testing.T) {
	requireFFmpeg(t)

	dir := t.TempDir()
	uploadPath := filepath.Join(dir, "standup.mp4")
	writeUploadWAV(t, uploadPath, 180)

	transcriber := &fakeTranscriber{
		response: &pkgai.TranscriptionResponse{
			Text:     "Good morning everyone. QA is almost done, Alice will follow up with QA before the release.",
			Language: "en",
			Segments: []pkgai.TranscriptionSegment{
				{ID: 0, Start: 0, End: 5.0, Text: "Good morning everyone."},
				{ID: 1, Start: 5.0, End: 12.0, Text: "QA is almost done, Alice will follow up with QA before the release."},
			},
		},
	}
	repo := &fakeRepo{}

	svc := newTestService(repo, transcriber, happyCompleter())
	record, err := svc.ProcessUpload(context.Background(), uploadPath, "standup.mp4", 1<<20)
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "standup.mp4", record.Filename)
	assert.InDelta(t, 180, record.Duration, 1.0)

	require.NotNil(t, record.Summary)
	require.Len(t, record.Summary.ActionItems, 1)
	assert.Equal(t, "follow up with QA", record.Summary.ActionItems[0].Item)
	assert.Equal(t, "Alice", record.Summary.ActionItems[0].ResponsibleParty)

	require.NotNil(t, record.Sentiment)
	assert.NotNil(t, record.Sentiment.ModelAnalysis)

	require.NotNil(t, record.Speakers)
	assert.Equal(t, 2, record.Speakers.EstimatedSpeakers)

	require.NotNil(t, record.KnowledgeGraph)
	assert.Len(t, record.KnowledgeGraph.Nodes, 1)

	assert.NotEmpty(t, record.Topics)
	assert.LessOrEqual(t, len(record.Topics), 5)
}

func TestProcessUpload_SummaryFailureIsFatal(t *testing.T) {
	requireFFmpeg(t)

	dir := t.TempDir()
	uploadPath := filepath.Join(dir, "standup.wav")
	writeUploadWAV(t, uploadPath, 2)

	completer := happyCompleter()
	completer.summaryErr = fmt.Errorf("model overloaded")

	repo := &fakeRepo{}
	transcriber := &fakeTranscriber{response: &pkgai.TranscriptionResponse{Text: "Short sync.", Language: "en"}}

	svc := newTestService(repo, transcriber, completer)
	_, err := svc.ProcessUpload(context.Background(), uploadPath, "standup.wav", 1024)
	require.Error(t, err)

	appErr, ok := err.(apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode_AI_SUMMARY_FAILED, appErr.Code)
	assert.Empty(t, repo.saved, "nothing may be persisted when the summary fails")
}

func TestProcessUpload_EnrichmentFailuresDegrade(t *testing.T) {
	requireFFmpeg(t)

	dir := t.TempDir()
	uploadPath := filepath.Join(dir, "retro.wav")
	writeUploadWAV(t, uploadPath, 2)

	completer := happyCompleter()
	completer.sentimentErr = fmt.Errorf("quota exceeded")
	completer.speakersErr = fmt.Errorf("quota exceeded")
	completer.graphErr = fmt.Errorf("quota exceeded")

	repo := &fakeRepo{}
	transcriber := &fakeTranscriber{
		response: &pkgai.TranscriptionResponse{
			Text:     "The retro went well, great team effort.",
			Language: "en",
			Segments: []pkgai.TranscriptionSegment{{ID: 0, Start: 0, End: 3, Text: "The retro went well, great team effort."}},
		},
	}

	svc := newTestService(repo, transcriber, completer)
	record, err := svc.ProcessUpload(context.Background(), uploadPath, "retro.wav", 1024)
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	require.NotNil(t, record.Sentiment)
	assert.Nil(t, record.Sentiment.ModelAnalysis)
	assert.NotEmpty(t, record.Sentiment.Lexical.Label)

	require.NotNil(t, record.Speakers)
	assert.Equal(t, 1, record.Speakers.EstimatedSpeakers)
	assert.InDelta(t, 0.1, record.Speakers.Confidence, 0.0001)

	require.NotNil(t, record.KnowledgeGraph)
	assert.Empty(t, record.KnowledgeGraph.Nodes)
	assert.NotNil(t, record.KnowledgeGraph.Edges)
}

func TestProcessUpload_TranscriptionFailureIsFatal(t *testing.T) {
	requireFFmpeg(t)

	dir := t.TempDir()
	uploadPath := filepath.Join(dir, "call.wav")
	writeUploadWAV(t, uploadPath, 2)

	repo := &fakeRepo{}
	transcriber := &fakeTranscriber{err: fmt.Errorf("service unavailable")}

	svc := newTestService(repo, transcriber, happyCompleter())
	_, err := svc.ProcessUpload(context.Background(), uploadPath, "call.wav", 1024)
	require.Error(t, err)

	appErr, ok := err.(apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode_AI_TRANSCRIPTION_FAILED, appErr.Code)
	assert.Empty(t, repo.saved)
}

func TestProcessUpload_RejectsUnsupportedUpload(t *testing.T) {
	dir := t.TempDir()
	uploadPath := filepath.Join(dir, "slides.pdf")
	require.NoError(t, os.WriteFile(uploadPath, []byte("%PDF-1.4 fake"), 0o644))

	svc := newTestService(&fakeRepo{}, &fakeTranscriber{}, happyCompleter())
	_, err := svc.ProcessUpload(context.Background(), uploadPath, "slides.pdf", 1024)
	require.Error(t, err)

	appErr, ok := err.(apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode_UPLOAD_UNSUPPORTED_TYPE, appErr.Code)
}
