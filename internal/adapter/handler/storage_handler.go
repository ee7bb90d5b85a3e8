package handler

import (
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-companion/errors"
	meetingdto "github.com/johnquangdev/meeting-companion/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-companion/internal/infrastructure/storage"
)

// maxTranscriptUploadSize caps uploaded transcript files at 10 MB
const maxTranscriptUploadSize = 10 << 20

// Storage handles transcript file upload requests
type Storage struct {
	minioClient *storage.MinIOClient
	logger      *zap.Logger
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(minioClient *storage.MinIOClient, logger *zap.Logger) *Storage {
	return &Storage{
		minioClient: minioClient,
		logger:      logger,
	}
}

// UploadTranscript handles POST /uploads/transcript. The file is relayed
// to object storage and a presigned URL is returned so the client can
// reference it when saving a meeting.
func (h *Storage) UploadTranscript(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("file is required"))
	}
	if fileHeader.Size > maxTranscriptUploadSize {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("file exceeds 10MB limit"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxTranscriptUploadSize))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}

	ctx := c.Request().Context()
	objectName, err := h.minioClient.UploadTranscript(ctx, userID, fileHeader.Filename, string(content))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrStorageFailed("upload", err))
	}

	url, err := h.minioClient.GetFileURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrStorageFailed("presign", err))
	}

	if h.logger != nil {
		h.logger.Info("transcript uploaded",
			zap.String("object_name", objectName),
			zap.String("user_id", userID.String()),
			zap.Int64("size", fileHeader.Size),
		)
	}

	return HandleSuccess(h.logger, c, meetingdto.UploadResponse{
		ObjectName: objectName,
		URL:        url,
	})
}
