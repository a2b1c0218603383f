package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/resline/laundromat-go/internal/models"
	"github.com/resline/laundromat-go/internal/services/receipt"
	"github.com/resline/laundromat-go/internal/websocket"
	"gorm.io/gorm"
)

// verifyReference looks up a request by reference code. It answers only for
// requests that are ready; an unknown code and a not-yet-ready request get
// the same response so nothing leaks about other people's laundry.
func (r *Router) verifyReference(w http.ResponseWriter, req *http.Request) {
	reference := mux.Vars(req)["reference"]

	var record models.LaundryRequest
	err := r.db.Where("reference_number = ? AND status = ?", reference, models.StatusCompleted).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Invalid reference number or laundry not ready for collection")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to verify reference")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// completeCollection records the collecting party and moves the request to
// its terminal state. The whole hand-over is a single conditional update so
// the database decides any verify-then-collect race.
func (r *Router) completeCollection(w http.ResponseWriter, req *http.Request) {
	var body struct {
		LaundryID uint   `json:"laundryId"`
		Name      string `json:"name"`
		Contact   string `json:"contact"`
		IDNumber  string `json:"idNumber"`
		Signature string `json:"signature"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if body.LaundryID == 0 || body.Name == "" || body.Contact == "" ||
		body.IDNumber == "" || body.Signature == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	now := time.Now().UTC()
	result := r.db.Model(&models.LaundryRequest{}).
		Where("id = ? AND status = ?", body.LaundryID, models.StatusCompleted).
		Updates(map[string]interface{}{
			"status":               models.StatusCollected,
			"collection_name":      body.Name,
			"collection_contact":   body.Contact,
			"collection_id_number": body.IDNumber,
			"collection_signature": body.Signature,
			"collection_date":      now,
		})
	if result.Error != nil {
		log.Printf("Error completing collection: %v", result.Error)
		respondError(w, http.StatusInternalServerError, "Failed to complete collection")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Laundry not found or not ready for collection")
		return
	}

	log.Printf("🧺 Request %d collected by %s", body.LaundryID, body.Name)

	var reference string
	if record, err := r.loadRequest(body.LaundryID); err == nil {
		reference = record.ReferenceNumber
	}
	r.hub.Broadcast(websocket.Event{
		Type:      websocket.EventCollected,
		ID:        body.LaundryID,
		Reference: reference,
		Status:    string(models.StatusCollected),
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Collection completed successfully",
		"collectionDate": now,
	})
}

// listCollections returns all collected records, newest collection first
func (r *Router) listCollections(w http.ResponseWriter, req *http.Request) {
	records, err := r.collectedRecords("")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch collection records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// listMyCollections scopes the collection list to one student when the caller
// identifies themselves; without a student_id it falls back to the full list
func (r *Router) listMyCollections(w http.ResponseWriter, req *http.Request) {
	records, err := r.collectedRecords(req.URL.Query().Get("student_id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch collection records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (r *Router) collectedRecords(studentID string) ([]models.LaundryRequest, error) {
	query := r.db.Where("status = ?", models.StatusCollected).
		Order("collection_date DESC")
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var records []models.LaundryRequest
	if err := query.Find(&records).Error; err != nil {
		log.Printf("Error fetching collection records: %v", err)
		return nil, err
	}
	return records, nil
}

// collectionReceipt renders a printable PDF receipt for a collected record
func (r *Router) collectionReceipt(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var record models.LaundryRequest
	err = r.db.Where("id = ? AND status = ?", id, models.StatusCollected).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Collection record not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch collection record")
		return
	}

	pdf, err := receipt.Generate(&record)
	if err != nil {
		log.Printf("Error generating receipt for request %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=receipt-%s.pdf", record.ReferenceNumber))
	w.Write(pdf)
}
