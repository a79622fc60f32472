package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// FileStorage accepts an uploaded file and returns a retrievable URL.
// The rest of the application treats the returned URL as an opaque string.
type FileStorage interface {
	// SaveFile stores the file under an optional subdirectory and returns its URL
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file given its URL
	DeleteFile(fileURL string) error
}

// LocalStorage stores files on the local filesystem and serves them via a base URL.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a LocalStorage rooted at basePath.
// baseURL is prepended to returned file paths so clients can fetch them.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SaveFile saves an uploaded file under subPath with a collision-free name
// and returns the URL it can be fetched from.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}

	relPath := uniqueFilename
	if subPath != "" {
		relPath = subPath + "/" + uniqueFilename
	}

	if ls.baseURL != "" {
		return ls.baseURL + "/" + relPath, nil
	}
	return relPath, nil
}

// DeleteFile removes a stored file given its URL
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	relPath := fileURL
	if ls.baseURL != "" {
		relPath = strings.TrimPrefix(fileURL, ls.baseURL+"/")
	}

	fullPath := filepath.Join(ls.basePath, filepath.FromSlash(relPath))
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete stored file")
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	return nil
}
