package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/resline/laundromat-go/internal/services/notify"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// whatsappStatus reports the readiness of the notification channel
func (r *Router) whatsappStatus(w http.ResponseWriter, req *http.Request) {
	ready := r.sender.Ready()
	status := "Ready - WhatsApp links generated"
	if !ready {
		status = "Not connected"
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ready":  ready,
		"status": status,
	})
}

// buildLink renders the requested message template for a record and returns
// the click-to-chat link
func (r *Router) buildLink(req *http.Request) (string, int, string) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		return "", http.StatusBadRequest, "Invalid request ID"
	}

	record, err := r.loadRequest(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", http.StatusNotFound, "Request not found"
		}
		return "", http.StatusInternalServerError, "Failed to fetch request"
	}

	var message string
	switch req.URL.Query().Get("messageType") {
	case "status_update":
		message = notify.StatusMessage(record)
	default:
		message = notify.ReadyMessage(record, r.cfg.PublicURL)
	}

	link, err := r.sender.Send(record.Contact, message)
	if err != nil {
		log.Printf("Error generating WhatsApp link for request %d: %v", id, err)
		return "", http.StatusInternalServerError, "Failed to generate WhatsApp link"
	}
	return link, 0, ""
}

// whatsappLink returns a click-to-chat link for a record
func (r *Router) whatsappLink(w http.ResponseWriter, req *http.Request) {
	link, status, msg := r.buildLink(req)
	if status != 0 {
		respondError(w, status, msg)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"whatsappLink": link,
		"message":      "WhatsApp link generated successfully",
	})
}

// whatsappLinkQR returns the same link rendered as a scannable QR PNG
func (r *Router) whatsappLinkQR(w http.ResponseWriter, req *http.Request) {
	link, status, msg := r.buildLink(req)
	if status != 0 {
		respondError(w, status, msg)
		return
	}

	png, err := qrcode.Encode(link, qrcode.Medium, 300)
	if err != nil {
		log.Printf("Error encoding QR: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
