// Package chat holds the conversation state of the chat widget and the
// single request/response cycle that extends it.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bz888/gemchat/internal/logger"
)

const (
	// NoResponseText replaces a successful reply that carried no text.
	NoResponseText = "No response"
	// ErrorText replaces a reply that could not be obtained at all.
	ErrorText = "Error fetching response"
)

var (
	ErrEmptyDraft = errors.New("chat: draft is empty")
	ErrPending    = errors.New("chat: a request is already pending")
)

// Generator turns one prompt into one reply. An empty reply with a nil error
// means the endpoint answered without any text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Option func(*Widget)

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(w *Widget) {
		w.timeout = d
	}
}

// Widget owns the draft, the transcript and the pending flag. It is safe for
// concurrent use; Submit blocks for the duration of the request.
type Widget struct {
	mu         sync.Mutex
	generator  Generator
	timeout    time.Duration
	draft      string
	transcript []Message
	pending    bool
	listeners  []func()

	localLogger *logger.Logger
}

// NewWidget panics if generator is nil.
func NewWidget(generator Generator, opts ...Option) *Widget {
	if generator == nil {
		panic("chat: nil Generator")
	}
	w := &Widget{
		generator:   generator,
		localLogger: logger.NewLogger("chat"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnChange registers fn to run after every state change. Listeners run on the
// goroutine that made the change, without the widget lock held.
func (w *Widget) OnChange(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

func (w *Widget) SetDraft(text string) {
	w.mu.Lock()
	changed := w.draft != text
	w.draft = text
	w.mu.Unlock()

	if changed {
		w.notify()
	}
}

func (w *Widget) Draft() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Transcript returns a copy of the messages in display order.
func (w *Widget) Transcript() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.transcript))
	copy(out, w.transcript)
	return out
}

func (w *Widget) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Submit sends the current draft. See Send.
func (w *Widget) Submit(ctx context.Context) (Message, error) {
	w.mu.Lock()
	text := w.draft
	err := w.beginLocked(text)
	w.mu.Unlock()

	if err != nil {
		return Message{}, err
	}
	return w.run(ctx, text)
}

// Send appends text as a user message, clears the draft and blocks until
// the bot reply is appended, which it returns. Blank text is rejected with
// ErrEmptyDraft and a second call while one is in flight with ErrPending;
// neither touches the state. Request failures are not returned: they become
// the ErrorText reply.
func (w *Widget) Send(ctx context.Context, text string) (Message, error) {
	w.mu.Lock()
	err := w.beginLocked(text)
	w.mu.Unlock()

	if err != nil {
		return Message{}, err
	}
	return w.run(ctx, text)
}

func (w *Widget) beginLocked(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyDraft
	}
	if w.pending {
		return ErrPending
	}
	w.transcript = append(w.transcript, NewUserMessage(text))
	w.draft = ""
	w.pending = true
	return nil
}

func (w *Widget) run(ctx context.Context, text string) (Message, error) {
	w.notify()
	defer w.release()

	reply := NewBotMessage(w.fetch(ctx, text))

	w.mu.Lock()
	w.transcript = append(w.transcript, reply)
	w.mu.Unlock()

	return reply, nil
}

func (w *Widget) fetch(ctx context.Context, text string) string {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	reply, err := w.generator.Generate(ctx, text)
	if err != nil {
		w.localLogger.Error("Error fetching response: ", err)
		return ErrorText
	}
	if reply == "" {
		return NoResponseText
	}
	return reply
}

func (w *Widget) release() {
	w.mu.Lock()
	w.pending = false
	w.mu.Unlock()
	w.notify()
}

func (w *Widget) notify() {
	w.mu.Lock()
	listeners := make([]func(), len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
