package cmd

import (
	"github.com/bz888/gemchat/internal/api/server"
	"github.com/bz888/gemchat/internal/api/server/handlers"
	"github.com/bz888/gemchat/internal/logger"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose one chat session over a local JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logger.InitLogger(cfg.Dev, cfg.LogPath, nil); err != nil {
		return err
	}
	defer logger.Close()

	widget, err := newWidget()
	if err != nil {
		return err
	}

	return server.New(cfg.Addr, handlers.NewHandler(widget)).Run(cmd.Context())
}
