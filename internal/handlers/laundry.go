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
	"github.com/resline/laundromat-go/internal/services/notify"
	"github.com/resline/laundromat-go/internal/uploads"
	"github.com/resline/laundromat-go/internal/utils"
	"github.com/resline/laundromat-go/internal/websocket"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// createLaundry registers a direct laundry drop-off with optional photos
func (r *Router) createLaundry(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	name := req.FormValue("name")
	surname := req.FormValue("surname")
	contact := req.FormValue("contact")
	commune := req.FormValue("commune")
	room := req.FormValue("room")

	clothesCount, err := strconv.Atoi(req.FormValue("clothes_count"))
	if name == "" || surname == "" || contact == "" || commune == "" || err != nil {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if clothesCount <= 0 {
		respondError(w, http.StatusBadRequest, "Clothes count must be a positive number")
		return
	}

	// Photos are written to disk before the record exists; a failed upload
	// aborts the whole submission
	attachments, err := r.savePhotos(w, req)
	if err != nil {
		return
	}

	record, err := r.insertRequest(models.LaundryRequest{
		Name:         name,
		Surname:      surname,
		Contact:      contact,
		Commune:      commune,
		Room:         room,
		ClothesCount: clothesCount,
	}, attachments)
	if err != nil {
		log.Printf("Error creating request: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create request")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"record":  record,
		"message": "Laundry drop-off registered successfully",
	})
}

// quickLaundry registers a drop-off using a saved profile, with photos taken
// either from the saved photo library or from a fresh upload
func (r *Router) quickLaundry(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	studentID := req.FormValue("student_id")
	clothesCount, err := strconv.Atoi(req.FormValue("clothes_count"))
	if studentID == "" || err != nil {
		respondError(w, http.StatusBadRequest, "Student ID and clothes count are required")
		return
	}
	if clothesCount <= 0 {
		respondError(w, http.StatusBadRequest, "Clothes count must be a positive number")
		return
	}

	var profile models.UserProfile
	if err := r.db.Where("student_id = ?", studentID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Profile not found. Please create a profile first.")
			return
		}
		log.Printf("Error fetching profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	var attachments []models.PhotoAttachment
	if req.FormValue("use_saved_photos") == "true" && req.FormValue("selected_photo_ids") != "" {
		attachments, err = r.resolveSavedPhotos(studentID, req.FormValue("selected_photo_ids"))
		if err != nil {
			if errors.Is(err, errInvalidPhotoSelection) {
				respondError(w, http.StatusBadRequest, "Invalid saved photo selection")
				return
			}
			log.Printf("Error fetching saved photos: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch saved photos")
			return
		}
	} else {
		attachments, err = r.savePhotos(w, req)
		if err != nil {
			return
		}
	}

	record, err := r.insertRequest(models.LaundryRequest{
		StudentID:    studentID,
		Name:         profile.Name,
		Surname:      profile.Surname,
		Contact:      profile.Contact,
		Commune:      profile.Commune,
		Room:         profile.Room,
		ClothesCount: clothesCount,
	}, attachments)
	if err != nil {
		log.Printf("Error creating quick request: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create request")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"record":  record,
		"message": "Quick laundry submission successful!",
	})
}

// listLaundry returns all laundry requests, newest submission first
func (r *Router) listLaundry(w http.ResponseWriter, req *http.Request) {
	var requests []models.LaundryRequest
	if err := r.db.Order("date_submitted DESC").Find(&requests).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

// updateStatus applies a status transition and, on entry to Completed,
// triggers the ready notification
func (r *Router) updateStatus(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var body struct {
		Status models.Status `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || !body.Status.IsValidTarget() {
		respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	result := r.db.Model(&models.LaundryRequest{}).
		Where("id = ?", id).
		Updates(statusUpdateValues(body.Status, time.Now().UTC()))
	if result.Error != nil {
		log.Printf("Error updating request %d: %v", id, result.Error)
		respondError(w, http.StatusInternalServerError, "Failed to update request")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Request not found")
		return
	}

	// Every transition is logged for audit
	log.Printf("🔁 Request %d -> %s", id, body.Status)

	notified := false
	if body.Status == models.StatusCompleted {
		notified = r.sendReadyNotification(uint(id))
	}

	var reference string
	if record, err := r.loadRequest(uint(id)); err == nil {
		reference = record.ReferenceNumber
	}
	r.hub.Broadcast(websocket.Event{
		Type:      websocket.EventStatusChanged,
		ID:        uint(id),
		Reference: reference,
		Status:    string(body.Status),
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "Request updated successfully",
		"notificationSent": notified,
	})
}

// statusUpdateValues builds the column updates for one status transition.
// Completed stamps date_completed; every other target clears it.
func statusUpdateValues(target models.Status, now time.Time) map[string]interface{} {
	values := map[string]interface{}{
		"status":         target,
		"date_completed": nil,
	}
	if target == models.StatusCompleted {
		values["date_completed"] = now
	}
	return values
}

// sendReadyNotification generates the ready link for a completed request.
// Best effort: failures are logged and never fail the status update.
func (r *Router) sendReadyNotification(id uint) bool {
	record, err := r.loadRequest(id)
	if err != nil {
		log.Printf("Error fetching request %d for notification: %v", id, err)
		return false
	}

	message := notify.ReadyMessage(record, r.cfg.PublicURL)
	link, err := r.sender.Send(record.Contact, message)
	if err != nil {
		log.Printf("❌ Failed to notify %s (%s): %v", record.Name, record.Contact, err)
		return false
	}

	if err := r.db.Model(&models.LaundryRequest{}).
		Where("id = ?", id).
		Update("whatsapp_sent", true).Error; err != nil {
		log.Printf("Error marking notification for request %d: %v", id, err)
	}

	log.Printf("📱 WhatsApp link generated for %s (%s)", record.Name, record.Contact)
	log.Printf("🔗 Link: %s", link)
	return true
}

func (r *Router) loadRequest(id uint) (*models.LaundryRequest, error) {
	var record models.LaundryRequest
	if err := r.db.First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// insertRequest generates a unique reference number and persists a new
// Pending record
func (r *Router) insertRequest(record models.LaundryRequest, attachments []models.PhotoAttachment) (*models.LaundryRequest, error) {
	reference, err := utils.GenerateReferenceNumber(r.referenceExists)
	if err != nil {
		return nil, err
	}

	record.ReferenceNumber = reference
	record.Status = models.StatusPending
	record.DateSubmitted = time.Now().UTC()

	if len(attachments) > 0 {
		photos, err := json.Marshal(attachments)
		if err != nil {
			return nil, err
		}
		record.Photos = datatypes.JSON(photos)
	}

	if err := r.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Router) referenceExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.LaundryRequest{}).
		Where("reference_number = ?", code).
		Count(&count).Error
	return count > 0, err
}

// savePhotos runs the upload saver and writes the client error itself when
// the upload is rejected. Callers return immediately on error.
func (r *Router) savePhotos(w http.ResponseWriter, req *http.Request) ([]models.PhotoAttachment, error) {
	attachments, err := r.saver.SavePhotos(req, "photos")
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrNotImage),
			errors.Is(err, uploads.ErrTooLarge),
			errors.Is(err, uploads.ErrTooMany):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error saving photos: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to save photos")
		}
		return nil, err
	}
	return attachments, nil
}

// errInvalidPhotoSelection marks a malformed selected_photo_ids value, as
// opposed to a failure reading the store
var errInvalidPhotoSelection = errors.New("invalid saved photo selection")

// parsePhotoSelection decodes the selected_photo_ids form value
func parsePhotoSelection(selectedIDs string) ([]uint, error) {
	var ids []uint
	if err := json.Unmarshal([]byte(selectedIDs), &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPhotoSelection, err)
	}
	return ids, nil
}

// resolveSavedPhotos loads previously saved photos, constrained to the
// student that owns them
func (r *Router) resolveSavedPhotos(studentID, selectedIDs string) ([]models.PhotoAttachment, error) {
	ids, err := parsePhotoSelection(selectedIDs)
	if err != nil {
		return nil, err
	}

	var saved []models.SavedPhoto
	if err := r.db.Where("student_id = ? AND id IN ?", studentID, ids).Find(&saved).Error; err != nil {
		return nil, err
	}

	attachments := make([]models.PhotoAttachment, 0, len(saved))
	for _, photo := range saved {
		var attachment models.PhotoAttachment
		if err := json.Unmarshal([]byte(photo.PhotoData), &attachment); err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}
