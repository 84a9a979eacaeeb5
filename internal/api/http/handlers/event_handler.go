package handlers

import (
	"context"
	"net/http"

	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"go.uber.org/zap"
)

type EventService interface {
	ScrapeEvent(ctx context.Context, eventURL string) ([]models.ScrapedPlayer, error)
	EventPlacings(ctx context.Context, id models.EventID) (models.EventPlacings, error)
}

type EventHandler struct {
	log     *zap.Logger
	service EventService
}

type scrapeResponse struct {
	Success bool                   `json:"success"`
	Names   []models.ScrapedPlayer `json:"names"`
}

type placingsResponse struct {
	Success   bool                  `json:"success"`
	Data      []models.EventPlacing `json:"data"`
	Truncated bool                  `json:"truncated"`
}

var scrapeFailed = map[string]bool{"success": false}

func NewEventHandler(log *zap.Logger, service EventService) *EventHandler {
	return &EventHandler{log: log, service: service}
}

// ScrapeEvent answers GET /v1/event?link=<event page url>. Every failure is
// reported as {"success":false} with status 200.
func (h *EventHandler) ScrapeEvent(w http.ResponseWriter, r *http.Request) {
	link := requiredQuery(r, "link")
	if link == "" {
		writeJSON(w, http.StatusOK, scrapeFailed)
		return
	}

	players, err := h.service.ScrapeEvent(r.Context(), link)
	if err != nil {
		h.log.Error("scrape event failed", zap.Error(err), zap.String("link", link))
		writeJSON(w, http.StatusOK, scrapeFailed)
		return
	}

	if players == nil {
		players = []models.ScrapedPlayer{}
	}
	writeJSON(w, http.StatusOK, scrapeResponse{Success: true, Names: players})
}

// GetPlacings answers GET /v2/bcp-event?eventId=<id>.
func (h *EventHandler) GetPlacings(w http.ResponseWriter, r *http.Request) {
	eventID := requiredQuery(r, "eventId")
	if eventID == "" {
		writeText(w, http.StatusBadRequest, "eventId is required")
		return
	}

	placings, err := h.service.EventPlacings(r.Context(), models.EventID(eventID))
	if err != nil {
		h.log.Error("event placings failed", zap.Error(err), zap.String("event_id", eventID))
		writeText(w, http.StatusInternalServerError, "Error fetching BCP data: "+err.Error())
		return
	}

	records := placings.Records
	if records == nil {
		records = []models.EventPlacing{}
	}
	writeJSON(w, http.StatusOK, placingsResponse{
		Success:   true,
		Data:      records,
		Truncated: placings.Truncated,
	})
}
