package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/resline/laundromat-go/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertProfile creates or updates a student profile. Submitting an existing
// student ID overwrites the stored fields; it never creates a duplicate.
func (r *Router) upsertProfile(w http.ResponseWriter, req *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(req.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if profile.StudentID == "" || profile.Name == "" || profile.Surname == "" ||
		profile.Contact == "" || profile.Commune == "" || profile.Room == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	var existing int64
	if err := r.db.Model(&models.UserProfile{}).
		Where("student_id = ?", profile.StudentID).
		Count(&existing).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "surname", "contact", "commune", "room", "updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		log.Printf("Error saving profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Profile saved successfully",
		"studentId": profile.StudentID,
		"isNew":     existing == 0,
	})
}

// getProfile returns a profile by student ID
func (r *Router) getProfile(w http.ResponseWriter, req *http.Request) {
	studentID := mux.Vars(req)["student_id"]

	var profile models.UserProfile
	if err := r.db.Where("student_id = ?", studentID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Profile not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// uploadProfilePhotos stores photos for reuse in later submissions
func (r *Router) uploadProfilePhotos(w http.ResponseWriter, req *http.Request) {
	studentID := mux.Vars(req)["student_id"]

	attachments, err := r.savePhotos(w, req)
	if err != nil {
		return
	}
	if len(attachments) == 0 {
		respondError(w, http.StatusBadRequest, "No photos uploaded")
		return
	}

	for _, attachment := range attachments {
		data, err := json.Marshal(attachment)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to save photos")
			return
		}
		saved := models.SavedPhoto{
			StudentID: studentID,
			PhotoName: attachment.OriginalName,
			PhotoPath: attachment.Path,
			PhotoData: datatypes.JSON(data),
		}
		if err := r.db.Create(&saved).Error; err != nil {
			log.Printf("Error saving photo record: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to save photos")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Photos saved successfully",
		"photos":  attachments,
	})
}

// listProfilePhotos returns a student's saved photos, newest first
func (r *Router) listProfilePhotos(w http.ResponseWriter, req *http.Request) {
	studentID := mux.Vars(req)["student_id"]

	var photos []models.SavedPhoto
	if err := r.db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&photos).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch photos")
		return
	}

	respondJSON(w, http.StatusOK, photos)
}
