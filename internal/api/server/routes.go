package server

import (
	"net/http"

	"github.com/bz888/gemchat/internal/api/server/handlers"
)

func registerRoutes(mux *http.ServeMux, handler *handlers.Handler) {
	mux.HandleFunc("POST /chat", handler.ChatHandler)
	mux.HandleFunc("GET /transcript", handler.TranscriptHandler)
	mux.HandleFunc("GET /status", handler.StatusHandler)
}
