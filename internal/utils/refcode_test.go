package utils

import (
	"errors"
	"regexp"
	"testing"
)

var refPattern = regexp.MustCompile(`^LAU\d{6}$`)

func TestGenerateReferenceNumberFormat(t *testing.T) {
	code, err := GenerateReferenceNumber(func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}

	if !refPattern.MatchString(code) {
		t.Errorf("Reference %q does not match LAU + 6 digits", code)
	}
}

func TestGenerateReferenceNumberRetriesOnCollision(t *testing.T) {
	seen := make(map[string]bool)
	calls := 0

	exists := func(code string) (bool, error) {
		calls++
		// First two candidates are reported as taken
		if calls <= 2 {
			seen[code] = true
			return true, nil
		}
		return false, nil
	}

	code, err := GenerateReferenceNumber(exists)
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}

	if seen[code] {
		t.Errorf("Generator returned a code already reported as taken: %s", code)
	}
	if !refPattern.MatchString(code) {
		t.Errorf("Retry candidate %q does not match LAU + 6 digits", code)
	}
	if calls != 3 {
		t.Errorf("Expected 3 uniqueness checks, got %d", calls)
	}
}

func TestGenerateReferenceNumberGivesUp(t *testing.T) {
	_, err := GenerateReferenceNumber(func(string) (bool, error) { return true, nil })
	if err == nil {
		t.Fatal("Expected error when every candidate collides")
	}
}

func TestGenerateReferenceNumberPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection lost")
	_, err := GenerateReferenceNumber(func(string) (bool, error) { return false, storeErr })
	if err == nil || !errors.Is(err, storeErr) {
		t.Fatalf("Expected wrapped store error, got %v", err)
	}
}
