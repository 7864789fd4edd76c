package ui

import (
	"strings"

	"github.com/bz888/gemchat/internal/chat"
	"github.com/rivo/tview"
)

const loadingText = "Loading..."

const helpText = `[yellow::]Commands:[-]
- /help: Display this help message
- /debug: Toggle the debug console
- /bye: Exit the application

`

var senderLabels = map[chat.Sender]string{
	chat.SenderUser: "[red::]You:[-]",
	chat.SenderBot:  "[green::]Bot:[-]",
}

// renderTranscript lays the messages out top to bottom in tview colour
// markup. Message text is escaped so it cannot inject tags. The loading line
// is present only while pending.
func renderTranscript(messages []chat.Message, pending bool) string {
	var b strings.Builder
	for _, msg := range messages {
		b.WriteString(senderLabels[msg.Sender])
		b.WriteString("\n")
		b.WriteString(tview.Escape(msg.Text))
		b.WriteString("\n\n")
	}
	if pending {
		b.WriteString("[yellow::i]" + loadingText + "[-::-]\n")
	}
	return b.String()
}
