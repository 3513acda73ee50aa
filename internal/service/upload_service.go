package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/creator-campaign-api/internal/models"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
)

type uploadStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
}

type uploadSessionStore interface {
	Get(ctx context.Context, id string) (*models.WizardSession, error)
	Update(ctx context.Context, id string, fn func(*models.WizardSession) bool) error
}

// UploadConfig bounds attachment uploads.
type UploadConfig struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
	PublicPrefix     string
}

// UploadService stores portfolio and insight screenshots for a wizard
// session. Upload failures are reported to the caller but never touch the
// submit-time validation errors.
type UploadService struct {
	storage  uploadStorage
	sessions uploadSessionStore
	logger   *zap.Logger
	cfg      UploadConfig
}

// NewUploadService constructs an UploadService.
func NewUploadService(storage uploadStorage, sessions uploadSessionStore, cfg UploadConfig, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSizeBytes <= 0 {
		cfg.MaxFileSizeBytes = 10 * 1024 * 1024
	}
	if cfg.PublicPrefix == "" {
		cfg.PublicPrefix = "/uploads"
	}
	return &UploadService{storage: storage, sessions: sessions, logger: logger, cfg: cfg}
}

// Store saves the uploaded files and records their URLs on the session.
func (s *UploadService) Store(ctx context.Context, sessionID string, files []*multipart.FileHeader) ([]string, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ErrSessionNotFound
	}
	if session.Step != models.StepForm {
		return nil, apperrors.ErrStepOrder
	}
	if len(files) == 0 {
		return nil, apperrors.Clone(apperrors.ErrValidation, "no files provided")
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		if header.Size > s.cfg.MaxFileSizeBytes {
			return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("file %s exceeds the size limit", header.Filename))
		}
		if !s.mimeAllowed(header.Header.Get("Content-Type")) {
			return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("file type of %s is not allowed", header.Filename))
		}

		src, err := header.Open()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to read upload")
		}
		filename := fmt.Sprintf("%s/%s/%s%s",
			time.Now().UTC().Format("2006/01"), sessionID, uuid.NewString(), safeExtension(header.Filename))
		relPath, err := s.storage.SaveStream(filename, src)
		src.Close() //nolint:errcheck
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to store upload")
		}
		urls = append(urls, s.cfg.PublicPrefix+"/"+relPath)
	}

	err = s.sessions.Update(ctx, sessionID, func(live *models.WizardSession) bool {
		live.UploadURLs = append(live.UploadURLs, urls...)
		return true
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
	}
	return urls, nil
}

func (s *UploadService) mimeAllowed(contentType string) bool {
	if len(s.cfg.AllowedMIMEs) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AllowedMIMEs {
		if strings.EqualFold(strings.TrimSpace(allowed), contentType) {
			return true
		}
	}
	return false
}

func safeExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 {
		return ""
	}
	return ext
}
