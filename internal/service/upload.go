package service

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	maxRecipeImageSize = 5 * 1024 * 1024
	maxAvatarImageSize = 2 * 1024 * 1024
)

// UploadService stores uploaded images on local disk under the uploads
// tree, which the router serves statically at /uploads/*.
type UploadService struct {
	baseDir string
}

func NewUploadService(baseDir string) *UploadService {
	return &UploadService{baseDir: baseDir}
}

// SaveRecipeImage validates and stores a recipe image (5MB cap) and
// returns the public URL path.
func (s *UploadService) SaveRecipeImage(filename string, data []byte) (string, error) {
	return s.save("recipes", filename, data, maxRecipeImageSize)
}

// SaveAvatarImage validates and stores an avatar image (2MB cap) and
// returns the public URL path.
func (s *UploadService) SaveAvatarImage(filename string, data []byte) (string, error) {
	return s.save("avatars", filename, data, maxAvatarImageSize)
}

func (s *UploadService) save(subdir, filename string, data []byte, maxSize int) (string, error) {
	if len(data) == 0 {
		return "", validationError("no file uploaded")
	}
	if len(data) > maxSize {
		return "", validationError("file too large, maximum size is %d bytes", maxSize)
	}

	// Sniff the content instead of trusting the client's content type.
	contentType := http.DetectContentType(data)
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return "", validationError("invalid file type, only JPEG, PNG and WebP images are allowed")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		ext = extensionFor(contentType)
	}

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/uploads/" + subdir + "/" + name, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
