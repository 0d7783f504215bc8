package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	usecaseErrors "github.com/johnquangdev/meeting-summarizer/internal/usecase/errors"
)

// Response shapes
type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID reads the id set by the RequestID middleware, falling back
// to the incoming X-Request-ID header
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes data as the bare response body using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, data)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	appErr := toAppError(err)
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps usecase errors onto their HTTP representation.
// Unknown errors become ErrInternal.
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var transcriptionErr *usecaseErrors.TranscriptionError
	if stdErrors.As(err, &transcriptionErr) {
		return errors.ErrAITranscriptionFailed(transcriptionErr.Err).
			WithDetail("provider", transcriptionErr.Provider)
	}

	var storageErr *usecaseErrors.StorageError
	if stdErrors.As(err, &storageErr) {
		return errors.ErrStorageFailed(storageErr.Op, storageErr.Err)
	}

	if stdErrors.Is(err, usecaseErrors.ErrMissingAudio) {
		return errors.ErrMissingAudioFile(err)
	}
	return errors.ErrInternal(err)
}
