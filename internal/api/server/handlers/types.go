package handlers

import (
	"github.com/bz888/gemchat/internal/chat"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Text string `json:"text"`
}

// ChatResponse answers POST /chat with the bot reply of that turn.
type ChatResponse struct {
	ProcessedText string       `json:"processedText"`
	Message       chat.Message `json:"message"`
}

type TranscriptResponse struct {
	Messages []chat.Message `json:"messages"`
}

type StatusResponse struct {
	ServerWorking bool `json:"server_working"`
	Pending       bool `json:"pending"`
	Messages      int  `json:"messages"`
}
