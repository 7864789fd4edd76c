package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/bz888/gemchat/internal/chat"
	"github.com/bz888/gemchat/internal/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const title = "Gemini Chat"

type UI struct {
	app    *tview.Application
	widget *chat.Widget
	dev    bool
	ctx    context.Context

	mainFlex     *tview.Flex
	header       *tview.TextView
	textView     *tview.TextView
	inputField   *tview.InputField
	sendButton   *tview.Button
	debugConsole *tview.TextView

	// notice is local command output shown under the transcript until the
	// next submit. Only touched on the event loop.
	notice string

	localLogger *logger.Logger
}

// NewUI builds the layout around widget. The debug console is created here so
// it can be handed to logger.InitLogger before Run.
func NewUI(widget *chat.Widget, dev bool) *UI {
	u := &UI{
		app:         tview.NewApplication(),
		widget:      widget,
		dev:         dev,
		ctx:         context.Background(),
		localLogger: logger.NewLogger("views"),
	}
	u.app.EnablePaste(true)
	u.app.EnableMouse(true)

	u.debugConsole = u.initDebugConsole()
	u.header = initHeader()
	u.textView = initChatViewer()
	u.inputField = u.initChatInput()
	u.sendButton = u.initSendButton()
	u.mainFlex = u.initLayout()

	// Listeners can fire on the event loop itself (typing updates the
	// draft), and QueueUpdateDraw waits for the loop, so never block here.
	widget.OnChange(func() {
		go u.app.QueueUpdateDraw(u.refresh)
	})
	u.refresh()
	return u
}

func initHeader() *tview.TextView {
	header := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText(title)
	header.SetTextColor(tcell.ColorAqua)
	return header
}

func initChatViewer() *tview.TextView {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	textView.SetTitle("Conversation").SetBorder(true)
	textView.SetScrollable(true)
	textView.ScrollToEnd()
	return textView
}

func (u *UI) initChatInput() *tview.InputField {
	input := tview.NewInputField().
		SetPlaceholder("Type your question...").
		SetChangedFunc(u.widget.SetDraft)

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			u.submit()
		case tcell.KeyTab:
			u.app.SetFocus(u.sendButton)
		case tcell.KeyEscape:
			u.app.SetFocus(u.textView)
		}
	})
	return input
}

func (u *UI) initSendButton() *tview.Button {
	button := tview.NewButton("Send").SetSelectedFunc(u.submit)
	button.SetExitFunc(func(key tcell.Key) {
		u.app.SetFocus(u.inputField)
	})
	return button
}

func (u *UI) initDebugConsole() *tview.TextView {
	console := tview.NewTextView().
		SetChangedFunc(func() {
			go u.app.Draw()
		}).
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	console.SetTitle("Debugger").SetBorder(true)
	console.ScrollToEnd()
	return console
}

func (u *UI) initLayout() *tview.Flex {
	u.textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyTab:
			u.app.SetFocus(u.inputField)
			return nil
		}
		return event
	})

	inputRow := tview.NewFlex().
		AddItem(u.inputField, 0, 1, true).
		AddItem(u.sendButton, 10, 0, false)
	inputRow.SetBorder(true).SetTitle("Question")

	subFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(u.header, 1, 0, false).
		AddItem(u.textView, 0, 1, false).
		AddItem(inputRow, 3, 0, true)
	mainFlex := tview.NewFlex().
		AddItem(subFlex, 0, 2, true)

	if u.dev {
		mainFlex.AddItem(u.debugConsole, 0, 1, false)
	}
	return mainFlex
}

func (u *UI) GetDebugConsole() (*tview.TextView, error) {
	if u.debugConsole == nil {
		return nil, errors.New("debug console not initialized")
	}
	return u.debugConsole, nil
}

// Run blocks until the user quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	u.ctx = ctx
	go func() {
		<-ctx.Done()
		u.app.Stop()
	}()

	return u.app.SetRoot(u.mainFlex, true).SetFocus(u.inputField).Run()
}

func (u *UI) submit() {
	content := u.inputField.GetText()
	if strings.TrimSpace(content) == "" {
		return
	}

	switch strings.TrimSpace(content) {
	case "/help":
		u.notice = helpText
		u.inputField.SetText("")
		u.refresh()
		return
	case "/bye", "/quit", "/exit":
		u.quitApp()
		return
	case "/debug":
		u.inputField.SetText("")
		u.toggleDebugConsole()
		return
	}

	if u.widget.Pending() {
		u.localLogger.Warn("Ignoring submit while a request is pending")
		return
	}
	u.notice = ""
	u.inputField.SetDisabled(true)

	go func() {
		if _, err := u.widget.Send(u.ctx, content); err != nil {
			u.localLogger.Warn("Submit rejected: ", err)
			u.app.QueueUpdateDraw(u.refresh)
		}
	}()
}

// refresh redraws the conversation from widget state. It must run on the
// event loop once the application is running.
func (u *UI) refresh() {
	pending := u.widget.Pending()

	u.textView.SetText(renderTranscript(u.widget.Transcript(), pending) + u.notice)
	u.textView.ScrollToEnd()

	if u.inputField.GetText() != u.widget.Draft() {
		u.inputField.SetText(u.widget.Draft())
	}
	u.inputField.SetDisabled(pending)
}

func (u *UI) toggleDebugConsole() {
	if u.dev {
		u.localLogger.Info("Debug console disabled")
		u.mainFlex.RemoveItem(u.debugConsole)
	} else {
		u.mainFlex.AddItem(u.debugConsole, 0, 1, false)
	}
	u.dev = !u.dev
	logger.SetDev(u.dev)
	if u.dev {
		u.localLogger.Info("Debug console enabled")
	}
}

func (u *UI) quitApp() {
	u.notice = "Bye bye\n"
	u.refresh()
	u.localLogger.Info("Shutting down gracefully.")
	u.app.Stop()
}
