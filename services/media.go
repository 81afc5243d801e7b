package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/services/repositories"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
)

const maxLessonMediaSize = 20 * 1024 * 1024

// allowedMediaTypes maps detected content types to the folder they are stored in.
var allowedMediaTypes = map[string]string{
	"audio/mpeg":  "audio",
	"audio/wav":   "audio",
	"audio/ogg":   "audio",
	"audio/mp4":   "audio",
	"audio/x-m4a": "audio",
	"image/jpeg":  "images",
	"image/png":   "images",
	"image/webp":  "images",
}

type MediaService struct {
	appContext.DefaultService

	db         *PostgresService
	content    *repositories.ContentRepository
	contentSvc *ContentService
	storage    ObjectStore
}

const MEDIA_SVC = "media_svc"

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.content = svc.db.Content()
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.storage = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// UploadLessonMedia attaches an audio clip or image to a lesson, replacing
// any previous attachment.
func (svc *MediaService) UploadLessonMedia(ctx context.Context, viewer shared.Viewer, lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	lesson, err := svc.contentSvc.ownedLesson(viewer, lessonID)
	if err != nil {
		return nil, err
	}

	if file.Size > maxLessonMediaSize {
		return nil, shared.NewBadRequestError(nil, "Media file too large. Maximum size: 20MB")
	}

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Failed to read uploaded file")
	}
	defer src.Close()

	contentType, folder, err := detectMediaType(src)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("lessons/%s/%s/%s%s", lesson.ID, folder, uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))
	if err := svc.storage.UploadFile(ctx, objectName, src, file.Size, contentType); err != nil {
		return nil, shared.NewInternalError(err, "Failed to store media file")
	}

	previous := lesson.MediaObject
	lesson.MediaObject = objectName
	lesson.MediaContentType = contentType
	if err := svc.content.UpdateLesson(lesson); err != nil {
		return nil, svc.db.HandleError(err)
	}

	if previous != "" {
		if err := svc.storage.DeleteFile(ctx, previous); err != nil {
			log.WithError(err).WithField("object", previous).Warn("Failed to delete replaced lesson media")
		}
	}

	url, err := svc.storage.GetFileURL(ctx, objectName, mediaURLExpiry)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to sign media URL")
	}

	log.WithFields(log.Fields{
		"lesson_id":    lesson.ID,
		"object":       objectName,
		"content_type": contentType,
		"size":         file.Size,
	}).Info("Lesson media uploaded")

	return &dto.MediaUploadResponse{
		LessonID:    lesson.ID,
		ObjectName:  objectName,
		ContentType: contentType,
		Size:        file.Size,
		URL:         url,
		ExpiresAt:   time.Now().Add(mediaURLExpiry),
	}, nil
}

// detectMediaType sniffs the upload and rewinds it for storage.
func detectMediaType(src multipart.File) (string, string, error) {
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", "", shared.NewBadRequestError(err, "Failed to read uploaded file")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", "", shared.NewInternalError(err, "Failed to read uploaded file")
	}

	for candidate := mtype; candidate != nil; candidate = candidate.Parent() {
		contentType := candidate.String()
		if i := strings.Index(contentType, ";"); i >= 0 {
			contentType = contentType[:i]
		}
		if folder, ok := allowedMediaTypes[contentType]; ok {
			return contentType, folder, nil
		}
	}
	return "", "", shared.NewBadRequestError(nil, "Unsupported media type "+mtype.String()+". Supported: MP3, WAV, OGG, M4A, JPG, PNG, WEBP")
}
