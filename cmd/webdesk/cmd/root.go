package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/server"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
)

var (
	storeBackend string
	storePath    string

	cfg    *config.Config
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "webdesk",
	Short: "Desktop shell backend",
	Long: `webdesk serves the state of a browser-rendered desktop shell: windows,
desktop icons, a virtual file system, power state and personal data.

Configuration comes from the environment (PORT, STORE_BACKEND, STORE_PATH,
LOG_LEVEL, ...); the flags below override the store selection.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if storeBackend != "" {
			loaded.Store.Backend = storeBackend
		}
		if storePath != "" {
			loaded.Store.Path = storePath
		}
		cfg = loaded

		logger, err = logging.New(logging.FromConfig(cfg.Logging, os.Stderr))
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "store backend: memory, file, sqlite or redis")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "directory or database file for the file and sqlite backends")
}

// openStore opens the configured store for one-shot commands
func openStore(ctx context.Context) (*store.Store, func(), error) {
	st, err := server.OpenStore(ctx, cfg, logger, nil)
	if err != nil {
		return nil, nil, err
	}
	return st, func() {
		if err := st.Close(); err != nil {
			logger.Warn("Failed to close store", zap.Error(err))
		}
		logger.Sync()
	}, nil
}
