package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-summarizer/errors"
	meetingDTO "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
	meetingUsecase "github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// Upload handles POST /api/meetings/upload
// @Summary      Upload meeting audio
// @Description  Stores the audio, transcribes it and summarizes the transcript. Blocks until both provider calls finish.
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "Meeting audio"
// @Param        title  formData  string  false  "Meeting title"
// @Success      200    {object}  meeting.MeetingResponse  "Finalized meeting"
// @Failure      400    {object}  map[string]interface{}  "Missing file or invalid title"
// @Failure      500    {object}  map[string]interface{}  "Transcription error"
// @Router       /api/meetings/upload [post]
func (h *Meeting) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrMissingAudioFile(err))
	}

	// FormFile parsed the multipart body, so PostForm holds its fields.
	// Query string values are not a title.
	var req meetingDTO.UploadMeetingRequest
	if values, ok := c.Request().PostForm["title"]; ok && len(values) > 0 {
		title := values[0]
		req.Title = &title
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrMissingAudioFile(err))
	}
	defer file.Close()

	m, err := h.meetingService.Upload(c.Request().Context(), meetingUsecase.UploadInput{
		Title:            req.Title,
		OriginalFilename: fileHeader.Filename,
		ContentType:      fileHeader.Header.Get(echo.HeaderContentType),
		Size:             fileHeader.Size,
		Content:          file,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(m))
}

// GetMeeting handles GET /api/meetings/:id
// @Summary      Get a meeting
// @Description  Returns one meeting, including records whose transcription failed
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse  "Meeting"
// @Failure      400  {object}  map[string]interface{}  "Invalid meeting ID"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /api/meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	m, err := h.loadMeeting(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(m))
}

// ExportMeetingDocument handles GET /api/meetings/:id/docx
// @Summary      Export one meeting
// @Description  Downloads a meeting as a Word document with its summary, action items and transcript
// @Tags         Meetings
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {file}    binary  "Document"
// @Failure      400  {object}  map[string]interface{}  "Invalid meeting ID"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /api/meetings/{id}/docx [get]
func (h *Meeting) ExportMeetingDocument(c echo.Context) error {
	m, err := h.loadMeeting(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	doc, err := presenter.ToMeetingDocument(m)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrMeetingDocumentFailed(m.ID, err))
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return HandleError(h.logger, c, apperrors.ErrMeetingDocumentFailed(m.ID, err))
	}

	filename := fmt.Sprintf("meeting-%d.docx", m.ID)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, docxContentType, buf.Bytes())
}

// loadMeeting resolves the :id path parameter into a meeting
func (h *Meeting) loadMeeting(c echo.Context) (*entities.Meeting, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.ErrInvalidMeetingID(raw)
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
			return nil, apperrors.ErrMeetingNotFound(id)
		}
		return nil, apperrors.ErrDBQueryFailed("get meeting", err)
	}
	return m, nil
}

// ListMeetings handles GET /api/meetings
// @Summary      List meetings
// @Description  Returns every meeting, newest first
// @Tags         Meetings
// @Produce      json
// @Success      200  {array}   meeting.MeetingResponse  "Meetings"
// @Failure      500  {object}  map[string]interface{}  "Failed to list meetings"
// @Router       /api/meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	meetings, err := h.meetingService.ListMeetings(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("list meetings", err))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingListResponse(meetings))
}

// ExportMeetings handles GET /api/meetings/export
// @Summary      Export meetings
// @Description  Downloads every meeting as an xlsx workbook, newest first
// @Tags         Meetings
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary  "Workbook"
// @Failure      500  {object}  map[string]interface{}  "Failed to export meetings"
// @Router       /api/meetings/export [get]
func (h *Meeting) ExportMeetings(c echo.Context) error {
	meetings, err := h.meetingService.ListMeetings(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("list meetings", err))
	}

	wb, err := presenter.ToMeetingWorkbook(meetings)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrExportFailed(err))
	}
	defer wb.Close()

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrExportFailed(err))
	}

	filename := fmt.Sprintf("meetings-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	if h.logger != nil {
		h.logger.Info("📤 Meetings exported", zap.Int("count", len(meetings)))
	}
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
