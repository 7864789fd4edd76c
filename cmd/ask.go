package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bz888/gemchat/internal/chat"
	"github.com/bz888/gemchat/internal/logger"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [text...]",
	Short: "Send one message and print the exchange",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := logger.InitLogger(cfg.Dev, cfg.LogPath, nil); err != nil {
		return err
	}
	defer logger.Close()

	widget, err := newWidget()
	if err != nil {
		return err
	}

	if _, err := widget.Send(cmd.Context(), strings.Join(args, " ")); err != nil {
		if errors.Is(err, chat.ErrEmptyDraft) {
			return errors.New("nothing to send")
		}
		return err
	}

	out := cmd.OutOrStdout()
	for _, msg := range widget.Transcript() {
		label := "You"
		if msg.Sender == chat.SenderBot {
			label = "Bot"
		}
		fmt.Fprintf(out, "%s: %s\n", label, msg.Text)
	}
	return nil
}
