package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// BlobStore uploads a blob under a key and returns its public URL.
type BlobStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// UploadService streams multipart payloads into the blob store.
type UploadService struct {
	blobs    BlobStore
	maxFiles int
}

// NewUploadService creates a new upload service
func NewUploadService(blobs BlobStore, maxFiles int) *UploadService {
	return &UploadService{blobs: blobs, maxFiles: maxFiles}
}

// UploadedFile describes one stored file in the response.
type UploadedFile struct {
	Fieldname    string `json:"fieldname"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
}

// UploadResult is the response body of a successful upload.
type UploadResult struct {
	Fields map[string]string `json:"fields"`
	Files  []UploadedFile    `json:"files"`
}

// spooledFile is a file part parked in a temp file, waiting for upload.
type spooledFile struct {
	path        string
	fieldname   string
	filename    string
	contentType string
}

// Process consumes a multipart stream part by part. Value parts become
// fields; file parts are spooled to request-scoped temp files and then
// uploaded concurrently, each under a collision-resistant key
// "<uuid>-<originalName>". The response waits for all uploads or the first
// failure. A payload exceeding the handler's byte limit surfaces as
// ErrTooLarge; everything else is a generic failure.
func (s *UploadService) Process(ctx context.Context, form *multipart.Reader) (*UploadResult, error) {
	result := &UploadResult{Fields: map[string]string{}}

	var spooled []spooledFile
	defer func() {
		for _, sp := range spooled {
			if err := os.Remove(sp.path); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Warn().Err(err).Str("path", sp.path).Msg("Failed to remove temp file")
			}
		}
	}()

	for {
		part, err := form.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, classifyUploadErr(err)
		}

		if part.FileName() == "" {
			value, err := io.ReadAll(part)
			if err != nil {
				return nil, classifyUploadErr(err)
			}
			result.Fields[part.FormName()] = string(value)
			continue
		}

		if len(spooled) >= s.maxFiles {
			return nil, fmt.Errorf("%w: at most %d files per upload", ErrValidation, s.maxFiles)
		}

		sp, err := spoolPart(part)
		if err != nil {
			return nil, err
		}
		spooled = append(spooled, sp)
	}

	result.Files = make([]UploadedFile, len(spooled))
	g, gctx := errgroup.WithContext(ctx)
	for i, sp := range spooled {
		g.Go(func() error {
			f, err := os.Open(sp.path)
			if err != nil {
				return fmt.Errorf("failed to open temp file: %w", err)
			}
			defer f.Close()

			key := uuid.New().String() + "-" + sp.filename
			url, err := s.blobs.Upload(gctx, key, f, sp.contentType)
			if err != nil {
				return err
			}
			result.Files[i] = UploadedFile{
				Fieldname:    sp.fieldname,
				OriginalName: sp.filename,
				URL:          url,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// spoolPart drains one file part into a temp file.
func spoolPart(part *multipart.Part) (spooledFile, error) {
	tmp, err := os.CreateTemp("", "cammask-upload-*")
	if err != nil {
		return spooledFile{}, fmt.Errorf("failed to create temp file: %w", err)
	}

	sp := spooledFile{
		path:        tmp.Name(),
		fieldname:   part.FormName(),
		filename:    filepath.Base(part.FileName()),
		contentType: part.Header.Get("Content-Type"),
	}
	if sp.contentType == "" {
		sp.contentType = "application/octet-stream"
	}

	_, err = io.Copy(tmp, part)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(sp.path); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", sp.path).Msg("Failed to remove temp file")
		}
		return spooledFile{}, classifyUploadErr(err)
	}
	return sp, nil
}

// classifyUploadErr separates the body-size limit from all other multipart
// failures.
func classifyUploadErr(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return fmt.Errorf("upload exceeds %d bytes: %w", maxBytes.Limit, ErrTooLarge)
	}
	return fmt.Errorf("failed to read multipart payload: %w", err)
}
