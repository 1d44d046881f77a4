package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-analyzer/errors"
	meetingdto "github.com/johnquangdev/meeting-analyzer/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-analyzer/internal/domain/entities"
	"github.com/johnquangdev/meeting-analyzer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-analyzer/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-analyzer/internal/usecase/graph"
	"github.com/johnquangdev/meeting-analyzer/pkg/config"
)

// Meeting handles the upload, history and knowledge graph endpoints
type Meeting struct {
	service     analysis.Service
	meetingRepo repositories.MeetingRepository
	cfg         *config.Config
	logger      *zap.Logger
}

// NewMeetingHandler creates the meeting handler
func NewMeetingHandler(
	service analysis.Service,
	meetingRepo repositories.MeetingRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *Meeting {
	return &Meeting{
		service:     service,
		meetingRepo: meetingRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// Upload accepts a multipart recording, runs the analysis pipeline and
// returns the persisted record
func (h *Meeting) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if h.cfg.Upload.MaxBytes > 0 && fileHeader.Size > h.cfg.Upload.MaxBytes {
		return HandleError(h.logger, c, errors.ErrUploadTooLarge(fileHeader.Size))
	}

	uploadPath, err := h.spoolUpload(fileHeader.Filename, fileHeader)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	defer os.Remove(uploadPath)

	record, err := h.service.ProcessUpload(c.Request().Context(), uploadPath, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, record)
}

// List returns the meeting history, newest first, optionally narrowed by a
// substring query and a category filter
func (h *Meeting) List(c echo.Context) error {
	var req meetingdto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, err)
	}

	var meetings []*entities.MeetingRecord
	var err error
	if req.Query != "" {
		meetings, err = h.meetingRepo.Search(c.Request().Context(), req.Query)
	} else {
		meetings, err = h.meetingRepo.GetAll(c.Request().Context())
	}
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if req.Category != "" {
		filtered := make([]*entities.MeetingRecord, 0, len(meetings))
		for _, m := range meetings {
			if strings.EqualFold(m.MeetingCategory(), req.Category) {
				filtered = append(filtered, m)
			}
		}
		meetings = filtered
	}

	return HandleSuccess(h.logger, c, meetings)
}

// Get returns one meeting by ID
func (h *Meeting) Get(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.meetingRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meeting)
}

// Delete removes one meeting by ID
func (h *Meeting) Delete(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingRepo.DeleteByID(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": id})
}

// Graph returns the stored knowledge graph of one meeting
func (h *Meeting) Graph(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.meetingRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	kg := meeting.KnowledgeGraph
	if kg == nil {
		kg = entities.EmptyKnowledgeGraph()
	}
	return HandleSuccess(h.logger, c, kg)
}

// CombinedGraph merges the knowledge graphs of all meetings into one view
func (h *Meeting) CombinedGraph(c echo.Context) error {
	meetings, err := h.meetingRepo.GetAll(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, graph.BuildCombined(meetings))
}

// Stats aggregates dashboard metrics over the whole history
func (h *Meeting) Stats(c echo.Context) error {
	meetings, err := h.meetingRepo.GetAll(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	stats := meetingdto.StatsResponse{TotalMeetings: len(meetings)}
	scored := 0
	polaritySum := 0.0
	for _, m := range meetings {
		stats.TotalDuration += m.Duration
		if m.Summary != nil {
			stats.TotalActionItems += len(m.Summary.ActionItems)
		}
		if m.Sentiment != nil {
			polaritySum += m.Sentiment.Lexical.Polarity
			scored++
		}
	}
	if scored > 0 {
		stats.AveragePolarity = polaritySum / float64(scored)
	}

	return HandleSuccess(h.logger, c, stats)
}

// spoolUpload copies the multipart part to a scratch file, keeping the
// original extension for the media tooling
func (h *Meeting) spoolUpload(originalFilename string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", errors.ErrInvalidPayload()
	}
	defer src.Close()

	ext := filepath.Ext(originalFilename)
	scratch := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%s%s", uuid.New().String(), ext))
	tmp, err := os.Create(scratch)
	if err != nil {
		return "", errors.ErrInternal(err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.ErrInternal(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.ErrInternal(err)
	}
	return tmp.Name(), nil
}

func parseMeetingID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidArgument("invalid meeting id")
	}
	return id, nil
}

