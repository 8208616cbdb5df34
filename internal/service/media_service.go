package service

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/educhain/educhain-server/internal/cloudinary"
	"github.com/educhain/educhain-server/internal/config"
)

// Media validation errors.
var (
	ErrFileTooLarge    = errors.New("file exceeds upload limit")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// MediaService stores avatar images. Uploads go to Cloudinary when
// credentials are configured, otherwise to local disk under the upload
// directory (demo mode).
type MediaService struct {
	cfg        *config.Config
	cloudinary *cloudinary.Client
	log        zerolog.Logger
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config, log zerolog.Logger) *MediaService {
	s := &MediaService{
		cfg: cfg,
		log: log.With().Str("component", "media_service").Logger(),
	}
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		s.cloudinary = cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	}
	return s
}

// StoreAvatar validates and persists an avatar image, returning the URL
// clients should render. Content type is sniffed from the bytes, not
// trusted from the request.
func (s *MediaService) StoreAvatar(data []byte) (string, error) {
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", ErrFileTooLarge
	}
	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", ErrUnsupportedFile
	}

	filename := uuid.New().String() + ext

	if s.cloudinary != nil {
		result, err := s.cloudinary.UploadBytes(data, filename)
		if err != nil {
			return "", err
		}
		s.log.Info().Str("public_id", result.PublicID).Int("bytes", result.Bytes).Msg("Avatar uploaded")
		return result.SecureURL, nil
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(s.cfg.UploadDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	s.log.Info().Str("path", path).Msg("Avatar stored locally")
	return "/uploads/" + filename, nil
}
