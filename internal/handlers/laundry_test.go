package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/resline/laundromat-go/internal/models"
)

func TestParsePhotoSelection(t *testing.T) {
	ids, err := parsePhotoSelection("[1,4,9]")
	if err != nil {
		t.Fatalf("parsePhotoSelection failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 4 || ids[2] != 9 {
		t.Errorf("ids = %v, want [1 4 9]", ids)
	}
}

func TestParsePhotoSelectionMalformed(t *testing.T) {
	for _, input := range []string{"not json", `{"id":1}`, `["a","b"]`} {
		_, err := parsePhotoSelection(input)
		if !errors.Is(err, errInvalidPhotoSelection) {
			t.Errorf("parsePhotoSelection(%q) = %v, want errInvalidPhotoSelection", input, err)
		}
	}
}

func TestStatusUpdateValuesCompleted(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	values := statusUpdateValues(models.StatusCompleted, now)

	if values["status"] != models.StatusCompleted {
		t.Errorf("status = %v, want Completed", values["status"])
	}
	if values["date_completed"] != now {
		t.Errorf("date_completed = %v, want %v", values["date_completed"], now)
	}
}

func TestStatusUpdateValuesClearsCompletionDate(t *testing.T) {
	now := time.Now().UTC()

	for _, target := range []models.Status{models.StatusPending, models.StatusInProgress} {
		values := statusUpdateValues(target, now)

		if values["status"] != target {
			t.Errorf("status = %v, want %v", values["status"], target)
		}
		if values["date_completed"] != nil {
			t.Errorf("Transition to %s must clear date_completed, got %v", target, values["date_completed"])
		}
	}
}
