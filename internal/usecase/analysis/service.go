package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-analyzer/errors"
	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
	domainrepo "github.com/johnquangdev/meeting-analyzer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-analyzer/internal/usecase/audio"
	pkgai "github.com/johnquangdev/meeting-analyzer/pkg/ai"
)

// Transcriber converts an audio stream into timed text
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*pkgai.TranscriptionResponse, error)
}

// Service runs the full analysis pipeline over one upload
type Service interface {
	ProcessUpload(ctx context.Context, uploadPath string, originalFilename string, fileSize int64) (*entities.MeetingRecord, error)
}

type analysisService struct {
	meetingRepo domainrepo.MeetingRepository
	processor   *audio.Processor
	transcriber Transcriber
	completer   pkgai.ChatCompleter
	parser      *Parser
	logger      *zap.Logger
}

// NewService constructs the analysis pipeline service. The completer is the
// summary and enrichment LLM; model selection happens at construction time
// in main, not per request.
func NewService(
	meetingRepo domainrepo.MeetingRepository,
	processor *audio.Processor,
	transcriber Transcriber,
	completer pkgai.ChatCompleter,
	logger *zap.Logger,
) Service {
	return &analysisService{
		meetingRepo: meetingRepo,
		processor:   processor,
		transcriber: transcriber,
		completer:   completer,
		parser:      NewParser(),
		logger:      logger,
	}
}

// ProcessUpload validates, normalizes, transcribes and analyzes one uploaded
// recording, then persists all results as a single record. Transcription and
// summary failures abort with nothing persisted; the enrichment stages
// degrade to their defaults. Stages run strictly in order.
func (s *analysisService) ProcessUpload(ctx context.Context, uploadPath string, originalFilename string, fileSize int64) (*entities.MeetingRecord, error) {
	if err := s.processor.ValidateUpload(uploadPath, originalFilename); err != nil {
		return nil, err
	}

	wavPath, err := s.processor.Normalize(ctx, uploadPath)
	if err != nil {
		return nil, err
	}
	defer os.Remove(wavPath)

	duration, err := s.processor.Duration(wavPath)
	if err != nil {
		return nil, err
	}

	transcription, err := s.transcribe(ctx, wavPath)
	if err != nil {
		return nil, err
	}
	s.logger.Info("transcription complete",
		zap.String("filename", originalFilename),
		zap.String("language", transcription.Language),
		zap.Int("segments", len(transcription.Segments)))

	summary, err := s.summarize(ctx, transcription.Text)
	if err != nil {
		return nil, err
	}

	sentiment := s.analyzeSentiment(ctx, transcription.Text)
	topics := s.extractTopics(transcription.Text)
	speakers := s.identifySpeakers(ctx, transcription)
	graph := s.buildKnowledgeGraph(ctx, summary, topics)

	record := entities.NewMeetingRecord(originalFilename, fileSize, duration)
	record.Transcription = transcription
	record.Summary = summary
	record.Sentiment = sentiment
	record.Topics = topics
	record.Speakers = speakers
	record.KnowledgeGraph = graph

	if err := s.meetingRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("meeting processed",
		zap.Int64("id", record.ID),
		zap.String("filename", originalFilename),
		zap.Float64("duration", duration))
	return record, nil
}

// transcribe sends the normalized audio to the speech-to-text API. Long
// recordings are cut into chunks and the partial transcriptions stitched
// back together in order.
func (s *analysisService) transcribe(ctx context.Context, wavPath string) (*entities.Transcription, error) {
	chunkPaths, err := s.processor.SplitIntoChunks(wavPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, path := range chunkPaths {
			if path != wavPath {
				os.Remove(path)
			}
		}
	}()

	result := &entities.Transcription{Segments: []entities.Segment{}}
	for _, path := range chunkPaths {
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.ErrInternal(fmt.Errorf("open audio chunk: %w", err))
		}
		resp, err := s.transcriber.Transcribe(ctx, f, "audio.wav")
		f.Close()
		if err != nil {
			return nil, apperrors.ErrTranscriptionFailed(err)
		}

		if result.Text != "" {
			result.Text += " "
		}
		result.Text += resp.Text
		if result.Language == "" {
			result.Language = resp.Language
		}
		for _, seg := range resp.Segments {
			result.Segments = append(result.Segments, entities.Segment{
				ID:    len(result.Segments),
				Start: seg.Start,
				End:   seg.End,
				Text:  seg.Text,
			})
		}
	}
	if result.Language == "" {
		result.Language = "unknown"
	}
	return result, nil
}

// summarize is the one mandatory LLM stage; any failure discards the upload
func (s *analysisService) summarize(ctx context.Context, transcription string) (*entities.Summary, error) {
	content, err := s.completer.CompleteJSON(ctx, summaryPrompt(transcription))
	if err != nil {
		return nil, apperrors.ErrSummaryFailed(err)
	}
	summary, err := s.parser.ParseSummary(content)
	if err != nil {
		return nil, apperrors.ErrSummaryFailed(err)
	}
	return summary, nil
}

// analyzeSentiment always yields the lexical score; the model breakdown is
// attached only when the remote call and its parse succeed
func (s *analysisService) analyzeSentiment(ctx context.Context, transcription string) *entities.Sentiment {
	sentiment := &entities.Sentiment{
		Lexical: ScoreSentiment(transcription),
	}

	content, err := s.completer.CompleteJSON(ctx, sentimentPrompt(excerpt(transcription)))
	if err != nil {
		s.logger.Warn("model sentiment analysis failed", zap.Error(err))
		return sentiment
	}
	modelSentiment, err := s.parser.ParseModelSentiment(content)
	if err != nil {
		s.logger.Warn("model sentiment response invalid", zap.Error(err))
		return sentiment
	}
	sentiment.ModelAnalysis = modelSentiment
	return sentiment
}

func (s *analysisService) extractTopics(transcription string) []entities.Topic {
	return ExtractTopics(transcription, maxTopics)
}

// identifySpeakers asks the analysis LLM for speaker attribution when the
// transcription has segment data; everything else falls back to the
// single-speaker default
func (s *analysisService) identifySpeakers(ctx context.Context, transcription *entities.Transcription) *entities.Speakers {
	if len(transcription.Segments) == 0 {
		return entities.DefaultSpeakers()
	}

	content, err := s.completer.CompleteJSON(ctx, speakersPrompt(excerpt(transcription.Text)))
	if err != nil {
		s.logger.Warn("speaker identification failed", zap.Error(err))
		return entities.DefaultSpeakers()
	}
	speakers, err := s.parser.ParseSpeakers(content)
	if err != nil {
		s.logger.Warn("speaker identification response invalid", zap.Error(err))
		return entities.DefaultSpeakers()
	}
	return speakers
}

// buildKnowledgeGraph derives concept connections from the summary and
// topics; failures degrade to an empty graph, never nil
func (s *analysisService) buildKnowledgeGraph(ctx context.Context, summary *entities.Summary, topics []entities.Topic) *entities.KnowledgeGraph {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn("knowledge graph input marshal failed", zap.Error(err))
		return entities.EmptyKnowledgeGraph()
	}
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		s.logger.Warn("knowledge graph input marshal failed", zap.Error(err))
		return entities.EmptyKnowledgeGraph()
	}

	content, err := s.completer.CompleteJSON(ctx, knowledgeGraphPrompt(string(summaryJSON), string(topicsJSON)))
	if err != nil {
		s.logger.Warn("knowledge graph generation failed", zap.Error(err))
		return entities.EmptyKnowledgeGraph()
	}
	graph, err := s.parser.ParseKnowledgeGraph(content)
	if err != nil {
		s.logger.Warn("knowledge graph response invalid", zap.Error(err))
		return entities.EmptyKnowledgeGraph()
	}
	return graph
}
