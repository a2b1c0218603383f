package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/resline/laundromat-go/internal/config"
	"github.com/resline/laundromat-go/internal/database"
	"github.com/resline/laundromat-go/internal/middleware"
	"github.com/resline/laundromat-go/internal/services/notify"
	"github.com/resline/laundromat-go/internal/uploads"
	"github.com/resline/laundromat-go/internal/websocket"
)

// Router wraps the mux router and the handler dependencies
type Router struct {
	*mux.Router
	db     *database.DB
	cfg    *config.Config
	hub    *websocket.Hub
	saver  *uploads.Saver
	sender notify.Sender
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *websocket.Hub, saver *uploads.Saver, sender notify.Sender) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		hub:    hub,
		saver:  saver,
		sender: sender,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Profile routes
	api.HandleFunc("/profile", r.upsertProfile).Methods("POST")
	api.HandleFunc("/profile/{student_id}", r.getProfile).Methods("GET")
	api.HandleFunc("/profile/{student_id}/photos", r.uploadProfilePhotos).Methods("POST")
	api.HandleFunc("/profile/{student_id}/photos", r.listProfilePhotos).Methods("GET")

	// Laundry routes; specific paths before the {id} matcher
	api.HandleFunc("/laundry/quick", r.quickLaundry).Methods("POST")
	api.HandleFunc("/laundry/verify/{reference}", r.verifyReference).Methods("GET")
	api.HandleFunc("/laundry/collect", r.completeCollection).Methods("POST")
	api.HandleFunc("/laundry", r.createLaundry).Methods("POST")
	api.HandleFunc("/laundry", r.listLaundry).Methods("GET")
	api.HandleFunc("/laundry/{id:[0-9]+}", r.updateStatus).Methods("PUT")

	// Collection records
	api.HandleFunc("/collections", r.listCollections).Methods("GET")
	api.HandleFunc("/collections/my", r.listMyCollections).Methods("GET")
	api.HandleFunc("/collections/{id:[0-9]+}/receipt", r.collectionReceipt).Methods("GET")

	// Notification channel
	api.HandleFunc("/whatsapp/status", r.whatsappStatus).Methods("GET")
	api.HandleFunc("/whatsapp/link/{id:[0-9]+}", r.whatsappLink).Methods("GET")
	api.HandleFunc("/whatsapp/link/{id:[0-9]+}/qr", r.whatsappLinkQR).Methods("GET")

	// Admin live feed
	r.HandleFunc("/ws/admin", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWS(r.hub, w, req)
	})

	// Uploaded photos served back by relative path
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	// Static files from the built frontend
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.FrontendDir)))

	return r
}

// Handler returns the router wrapped with shared middleware
func (r *Router) Handler() http.Handler {
	return middleware.CORS(middleware.RequestLog(r.Router))
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"service": "laundromat",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
