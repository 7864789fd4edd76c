package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bz888/gemchat/internal/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatWidget struct {
	mock.Mock
}

func (m *MockChatWidget) Send(ctx context.Context, text string) (chat.Message, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(chat.Message), args.Error(1)
}

func (m *MockChatWidget) Transcript() []chat.Message {
	args := m.Called()
	return args.Get(0).([]chat.Message)
}

func (m *MockChatWidget) Pending() bool {
	args := m.Called()
	return args.Bool(0)
}

func postChat(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ChatHandler(rec, req)
	return rec
}

func TestChatHandlerReturnsReply(t *testing.T) {
	widget := new(MockChatWidget)
	reply := chat.NewBotMessage("Hi there")
	widget.On("Send", mock.Anything, "Hello").Return(reply, nil)

	rec := postChat(t, NewHandler(widget), `{"text":"Hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Hi there", resp.ProcessedText)
	assert.Equal(t, reply.ID, resp.Message.ID)
	assert.Equal(t, chat.SenderBot, resp.Message.Sender)
	widget.AssertExpectations(t)
}

func TestChatHandlerErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{name: "blank text", body: `{"text":"   "}`, err: chat.ErrEmptyDraft, code: http.StatusBadRequest},
		{name: "pending", body: `{"text":"again"}`, err: chat.ErrPending, code: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			widget := new(MockChatWidget)
			widget.On("Send", mock.Anything, mock.Anything).Return(chat.Message{}, tt.err)

			rec := postChat(t, NewHandler(widget), tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestChatHandlerBadJSON(t *testing.T) {
	widget := new(MockChatWidget)

	rec := postChat(t, NewHandler(widget), `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	widget.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestTranscriptAndStatusHandlers(t *testing.T) {
	widget := new(MockChatWidget)
	messages := []chat.Message{chat.NewUserMessage("Hello"), chat.NewBotMessage("Hi there")}
	widget.On("Transcript").Return(messages)
	widget.On("Pending").Return(false)
	h := NewHandler(widget)

	rec := httptest.NewRecorder()
	h.TranscriptHandler(rec, httptest.NewRequest(http.MethodGet, "/transcript", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var transcript TranscriptResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&transcript))
	require.Len(t, transcript.Messages, 2)
	assert.Equal(t, "Hello", transcript.Messages[0].Text)
	assert.Equal(t, chat.SenderUser, transcript.Messages[0].Sender)
	assert.Equal(t, "Hi there", transcript.Messages[1].Text)

	rec = httptest.NewRecorder()
	h.StatusHandler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	var status StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.True(t, status.ServerWorking)
	assert.False(t, status.Pending)
	assert.Equal(t, 2, status.Messages)
}
