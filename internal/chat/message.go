package chat

import (
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry. It is never modified after creation.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func newMessage(sender Sender, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

func NewUserMessage(text string) Message {
	return newMessage(SenderUser, text)
}

func NewBotMessage(text string) Message {
	return newMessage(SenderBot, text)
}
