package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/resline/laundromat-go/internal/models"
)

func collectedRequest() *models.LaundryRequest {
	completed := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	collected := completed.Add(2 * time.Hour)
	return &models.LaundryRequest{
		ID:                  7,
		Name:                "Thandi",
		Surname:             "Mokoena",
		Contact:             "0820000000",
		Commune:             "B",
		Room:                "12",
		ClothesCount:        5,
		Status:              models.StatusCollected,
		ReferenceNumber:     "LAU123456",
		DateSubmitted:       completed.Add(-48 * time.Hour),
		DateCompleted:       &completed,
		CollectionName:      "Sipho Dlamini",
		CollectionContact:   "0830000000",
		CollectionIDNumber:  "9001015800087",
		CollectionSignature: "S Dlamini",
		CollectionDate:      &collected,
	}
}

func TestGenerate(t *testing.T) {
	pdf, err := Generate(collectedRequest())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("Generated PDF is empty")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("Output does not look like a PDF (starts with %q)", pdf[:4])
	}
}

func TestGenerateRejectsUncollected(t *testing.T) {
	req := collectedRequest()
	req.Status = models.StatusCompleted

	if _, err := Generate(req); err == nil {
		t.Fatal("Expected error for a request that has not been collected")
	}
}
