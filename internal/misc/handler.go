package misc

import (
	"encoding/json"
	"net/http"

	"github.com/hossin-jomm/creative-backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// ContactInfo is the WhatsApp widget configuration served to the public UI.
type ContactInfo struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

type Handler struct {
	versionInfo string
	contactInfo ContactInfo
}

func NewHandler(versionInfo string, contactInfo ContactInfo) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		contactInfo: contactInfo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	router.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	router.HandleFunc("/api/site/contact", handler.handleGetContactInfo).Methods("GET", "OPTIONS").Name("site-contact")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleGetContactInfo(w http.ResponseWriter, _ *http.Request) {
	resp, err := json.Marshal(handler.contactInfo)
	if err != nil {
		log.Errorf("marshal contact info: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}
