package uploads

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func buildRequest(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("photos", name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func newTestSaver(t *testing.T) *Saver {
	t.Helper()
	saver, err := NewSaver(t.TempDir(), 10*1024*1024, 10)
	if err != nil {
		t.Fatalf("Failed to create saver: %v", err)
	}
	return saver
}

func TestSavePhotos(t *testing.T) {
	saver := newTestSaver(t)
	body, contentType := buildRequest(t, map[string][]byte{"washing.png": pngBytes(t)})

	req := httptest.NewRequest("POST", "/api/laundry", body)
	req.Header.Set("Content-Type", contentType)

	attachments, err := saver.SavePhotos(req, "photos")
	if err != nil {
		t.Fatalf("SavePhotos failed: %v", err)
	}
	if len(attachments) != 1 {
		t.Fatalf("Expected 1 attachment, got %d", len(attachments))
	}

	a := attachments[0]
	if a.OriginalName != "washing.png" {
		t.Errorf("OriginalName = %q, want washing.png", a.OriginalName)
	}
	if matched := regexp.MustCompile(`^laundry-\d+-[0-9a-f]{12}\.png$`).MatchString(a.Filename); !matched {
		t.Errorf("Filename %q does not match expected shape", a.Filename)
	}
	if a.Path != "/uploads/photos/"+a.Filename {
		t.Errorf("Path = %q, want /uploads/photos/%s", a.Path, a.Filename)
	}

	stored := filepath.Join(saver.Dir, "photos", a.Filename)
	info, err := os.Stat(stored)
	if err != nil {
		t.Fatalf("Stored file missing: %v", err)
	}
	if info.Size() != a.Size {
		t.Errorf("Size mismatch: attachment says %d, disk has %d", a.Size, info.Size())
	}
}

func TestSavePhotosRejectsNonImage(t *testing.T) {
	saver := newTestSaver(t)
	body, contentType := buildRequest(t, map[string][]byte{
		"notes.txt": []byte("this is definitely not an image"),
	})

	req := httptest.NewRequest("POST", "/api/laundry", body)
	req.Header.Set("Content-Type", contentType)

	_, err := saver.SavePhotos(req, "photos")
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("Expected ErrNotImage, got %v", err)
	}

	// A rejected upload must leave nothing behind
	entries, err := os.ReadDir(filepath.Join(saver.Dir, "photos"))
	if err != nil {
		t.Fatalf("Failed to read photos dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty photos dir after rejection, found %d files", len(entries))
	}
}

func TestSavePhotosRejectsMixedBatchEntirely(t *testing.T) {
	saver := newTestSaver(t)
	body, contentType := buildRequest(t, map[string][]byte{
		"good.png": pngBytes(t),
		"bad.txt":  []byte("plain text payload"),
	})

	req := httptest.NewRequest("POST", "/api/laundry", body)
	req.Header.Set("Content-Type", contentType)

	if _, err := saver.SavePhotos(req, "photos"); !errors.Is(err, ErrNotImage) {
		t.Fatalf("Expected ErrNotImage, got %v", err)
	}

	entries, _ := os.ReadDir(filepath.Join(saver.Dir, "photos"))
	if len(entries) != 0 {
		t.Errorf("Validation should run before any write; found %d stored files", len(entries))
	}
}

func TestSavePhotosEnforcesFileSizeCap(t *testing.T) {
	saver, err := NewSaver(t.TempDir(), 16, 10) // 16 byte cap
	if err != nil {
		t.Fatalf("Failed to create saver: %v", err)
	}

	body, contentType := buildRequest(t, map[string][]byte{"big.png": pngBytes(t)})
	req := httptest.NewRequest("POST", "/api/laundry", body)
	req.Header.Set("Content-Type", contentType)

	if _, err := saver.SavePhotos(req, "photos"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Expected ErrTooLarge, got %v", err)
	}
}

func TestSavePhotosEnforcesFileCount(t *testing.T) {
	saver, err := NewSaver(t.TempDir(), 10*1024*1024, 1)
	if err != nil {
		t.Fatalf("Failed to create saver: %v", err)
	}

	body, contentType := buildRequest(t, map[string][]byte{
		"one.png": pngBytes(t),
		"two.png": pngBytes(t),
	})
	req := httptest.NewRequest("POST", "/api/laundry", body)
	req.Header.Set("Content-Type", contentType)

	if _, err := saver.SavePhotos(req, "photos"); !errors.Is(err, ErrTooMany) {
		t.Fatalf("Expected ErrTooMany, got %v", err)
	}
}

func TestSavePhotosURLEncodedForm(t *testing.T) {
	saver := newTestSaver(t)

	// A submission without photos arrives as a plain url-encoded form
	body := strings.NewReader("name=Thandi&contact=0820000000&clothes_count=5")
	req := httptest.NewRequest("POST", "/api/laundry", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	attachments, err := saver.SavePhotos(req, "photos")
	if err != nil {
		t.Fatalf("SavePhotos failed on a url-encoded no-photo request: %v", err)
	}
	if attachments != nil {
		t.Errorf("Expected nil attachments for form without files, got %v", attachments)
	}
}

func TestSavePhotosNoFiles(t *testing.T) {
	saver := newTestSaver(t)
	body, contentType := buildRequest(t, map[string][]byte{})

	req := httptest.NewRequest("POST", "/api/laundry", body)
	req.Header.Set("Content-Type", contentType)

	attachments, err := saver.SavePhotos(req, "photos")
	if err != nil {
		t.Fatalf("SavePhotos failed: %v", err)
	}
	if attachments != nil {
		t.Errorf("Expected nil attachments for empty upload, got %v", attachments)
	}
}
