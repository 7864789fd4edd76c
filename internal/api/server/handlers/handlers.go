package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bz888/gemchat/internal/chat"
	"github.com/bz888/gemchat/internal/logger"
)

// ChatWidget is the part of chat.Widget the relay needs.
type ChatWidget interface {
	Send(ctx context.Context, text string) (chat.Message, error)
	Transcript() []chat.Message
	Pending() bool
}

type Handler struct {
	widget ChatWidget
}

func NewHandler(widget ChatWidget) *Handler {
	return &Handler{widget: widget}
}

func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	localLogger := logger.NewLogger("ChatHandler")

	var clientReq ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&clientReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	reply, err := h.widget.Send(r.Context(), clientReq.Text)
	switch {
	case errors.Is(err, chat.ErrEmptyDraft):
		http.Error(w, "text is empty", http.StatusBadRequest)
		return
	case errors.Is(err, chat.ErrPending):
		localLogger.Warn("Rejected chat request while pending")
		http.Error(w, "a request is already pending", http.StatusConflict)
		return
	case err != nil:
		localLogger.Error("Chat failed: ", err)
		http.Error(w, "Failed to process request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, ChatResponse{ProcessedText: reply.Text, Message: reply})
}

func (h *Handler) TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, TranscriptResponse{Messages: h.widget.Transcript()})
}

func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, StatusResponse{
		ServerWorking: true,
		Pending:       h.widget.Pending(),
		Messages:      len(h.widget.Transcript()),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response: "+err.Error(), http.StatusInternalServerError)
	}
}
