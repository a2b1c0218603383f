// Package uploads stores multipart photo attachments on disk before the
// owning database row is created. A failed write aborts the whole request.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resline/laundromat-go/internal/models"
)

var (
	// ErrNotImage is returned when an uploaded file is not an image
	ErrNotImage = errors.New("only image files are allowed")

	// ErrTooLarge is returned when a file exceeds the per-file size cap
	ErrTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrTooMany is returned when a request carries more files than allowed
	ErrTooMany = errors.New("too many files in upload")
)

// Saver writes uploaded photos into a photos subdirectory of Dir
type Saver struct {
	Dir         string
	MaxFileSize int64
	MaxFiles    int
}

// NewSaver creates a Saver and ensures the photos directory exists
func NewSaver(dir string, maxFileSize int64, maxFiles int) (*Saver, error) {
	photosDir := filepath.Join(dir, "photos")
	if err := os.MkdirAll(photosDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Saver{Dir: dir, MaxFileSize: maxFileSize, MaxFiles: maxFiles}, nil
}

// SavePhotos stores every file under the given multipart field and returns
// their attachment records. Validation runs over all files before any write,
// so a rejected upload leaves nothing on disk.
func (s *Saver) SavePhotos(r *http.Request, field string) ([]models.PhotoAttachment, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			// A plain form post without files is a valid zero-photo submission
			if errors.Is(err, http.ErrNotMultipart) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to parse multipart form: %w", err)
		}
	}

	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > s.MaxFiles {
		return nil, ErrTooMany
	}

	for _, header := range files {
		if err := s.validate(header); err != nil {
			return nil, err
		}
	}

	attachments := make([]models.PhotoAttachment, 0, len(files))
	for _, header := range files {
		attachment, err := s.store(header)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}

	return attachments, nil
}

func (s *Saver) validate(header *multipart.FileHeader) error {
	if header.Size > s.MaxFileSize {
		return fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, header.Filename, header.Size)
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	// Sniff the actual content rather than trusting the declared type
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read upload %s: %w", header.Filename, err)
	}
	if !strings.HasPrefix(http.DetectContentType(buf[:n]), "image/") {
		return fmt.Errorf("%w: %s", ErrNotImage, header.Filename)
	}

	return nil
}

func (s *Saver) store(header *multipart.FileHeader) (models.PhotoAttachment, error) {
	src, err := header.Open()
	if err != nil {
		return models.PhotoAttachment{}, fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
	}
	defer src.Close()

	filename := generateFilename(header.Filename)
	dstPath := filepath.Join(s.Dir, "photos", filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return models.PhotoAttachment{}, fmt.Errorf("failed to create %s: %w", dstPath, err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dstPath)
		return models.PhotoAttachment{}, fmt.Errorf("failed to write %s: %w", dstPath, err)
	}

	return models.PhotoAttachment{
		Filename:     filename,
		OriginalName: header.Filename,
		Path:         "/uploads/photos/" + filename,
		Size:         size,
	}, nil
}

// generateFilename builds a collision-resistant name: timestamp plus a random
// suffix, preserving the original extension.
func generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("laundry-%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
