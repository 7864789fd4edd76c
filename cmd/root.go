package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bz888/gemchat/internal/api/client"
	"github.com/bz888/gemchat/internal/chat"
	"github.com/bz888/gemchat/internal/config"
	"github.com/bz888/gemchat/internal/logger"
	"github.com/bz888/gemchat/internal/ui"
	"github.com/spf13/cobra"
)

var (
	cfg     config.Config
	loadErr error
)

var rootCmd = &cobra.Command{
	Use:           "gemchat",
	Short:         "Terminal chat with the Gemini generateContent API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := checkLoad(cmd); err != nil {
			return err
		}
		cfg.Resolve()
		return nil
	},
	RunE: runInteractive,
}

func init() {
	cfg, loadErr = config.Load()
	config.BindFlags(rootCmd.PersistentFlags(), &cfg)

	rootCmd.AddCommand(askCmd, serveCmd)
}

// checkLoad reports an environment error unless a flag replaced the value.
// Only GEMINI_TIMEOUT can fail to load.
func checkLoad(cmd *cobra.Command) error {
	if loadErr == nil || cmd.Flags().Changed("timeout") {
		return nil
	}
	return fmt.Errorf("%w (override with --timeout)", loadErr)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newWidget() (*chat.Widget, error) {
	c, err := client.NewClient(client.ClientConfig{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
	})
	if err != nil {
		return nil, err
	}
	return chat.NewWidget(c, chat.WithTimeout(cfg.Timeout)), nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	widget, err := newWidget()
	if err != nil {
		return err
	}

	u := ui.NewUI(widget, cfg.Dev)
	debugConsole, err := u.GetDebugConsole()
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg.Dev, cfg.LogPath, debugConsole); err != nil {
		return err
	}
	defer logger.Close()

	return u.Run(cmd.Context())
}
