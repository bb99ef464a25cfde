package api

import (
	"encoding/json"
	"net/http"

	"github.com/hackercoop/coop/internal/notify"
)

type BoopHandler struct {
	notifier *notify.Discord
}

func NewBoopHandler(notifier *notify.Discord) *BoopHandler {
	return &BoopHandler{notifier: notifier}
}

type boopRequest struct {
	Content string `json:"content"`
}

// Boop relays a message to the community Discord channel. Applicants hit
// this from the homework instructions as a say-hello exercise.
func (h *BoopHandler) Boop(w http.ResponseWriter, r *http.Request) {
	var req boopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Content == "" {
		req.Content = r.URL.Query().Get("content")
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Missing `content` field.")
		return
	}

	status, err := h.notifier.Send(r.Context(), req.Content)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, map[string]any{"status": status, "message": req.Content}, http.StatusOK)
}
