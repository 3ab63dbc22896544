// Package cli provides CLI commands for the escalate bot: the chat command
// tree users run from Discord and the local admin commands.
package cli

import (
	"context"
	"fmt"
	"os/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/escalate/internal/config"
	"github.com/example/escalate/internal/ctxutil"
	"github.com/example/escalate/internal/db"
	"github.com/example/escalate/internal/logging"
	"github.com/example/escalate/internal/wire"
)

var (
	configPath string

	// loadedConfig is set once at startup by Bootstrap.
	loadedConfig *config.Config

	logger = zap.NewNop().Sugar()

	// globalActorID identifies the operator running local commands.
	globalActorID string
)

// BindGlobalFlags adds the --config flag and the startup hook to the root
// command.
func BindGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the bot config file")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return Bootstrap()
	}
}

// Bootstrap loads the config file and points the database and logger at it.
func Bootstrap() error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	l, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	wire.SetLogger(l)

	if cfg.Database != "" {
		db.SetPath(cfg.Database)
	}

	loadedConfig = cfg
	DetectAndStoreActor()
	return nil
}

// DetectAndStoreActor records the local OS user as the actor for audit entries.
func DetectAndStoreActor() {
	u, err := user.Current()
	if err != nil {
		globalActorID = "cli"
		return
	}
	globalActorID = "cli:" + u.Username
}

// NewContext creates a context.Background() with the current actor and, when
// given, the guild embedded. CLI commands should use this instead of
// context.Background() directly.
func NewContext(guildID string) context.Context {
	ctx := context.Background()
	if globalActorID != "" {
		ctx = ctxutil.WithActorID(ctx, globalActorID)
	}
	if guildID != "" {
		ctx = ctxutil.WithGuildID(ctx, guildID)
	}
	return ctx
}
