package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gitea.demsh.org/demsh/leczair"
)

var (
	settingsPath string
	debug        bool
)

var rootCmd = &cobra.Command{
	Use:   "leczair",
	Short: "leczair - a small IRC bot",
	Long: `leczair connects to one IRC server, joins the configured channels and
answers chat commands. Settings come from a YAML or JSON file and can be
overridden with LECZAIR_* environment variables.

Admins (see "admins" in the settings) can send the bot:
  reconfigure   re-read the settings and apply nick and channel changes
  reload        re-read the settings and reconnect
  restart       same as reload`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "settings.json", "path to the settings file")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "log wire traffic")
}

func newLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		level = "debug"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}

func run(cmd *cobra.Command, args []string) error {
	loader := func() (*leczair.Settings, error) {
		return leczair.LoadSettings(settingsPath)
	}
	settings, err := loader()
	if err != nil {
		return err
	}
	logger, err := newLogger(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := leczair.NewBot(settings,
		leczair.SetLogger(leczair.NewZapLogger(logger.Sugar())),
		leczair.SettingsLoader(loader),
	)
	bot.Start(ctx)
	<-ctx.Done()
	logger.Info("shutting down")
	if err := bot.Stop(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
