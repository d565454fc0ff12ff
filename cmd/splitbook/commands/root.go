package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"splitbook/internal/config"
	"splitbook/internal/repo"
	"splitbook/internal/session"
	"splitbook/internal/storage"
	"splitbook/internal/storage/memory"
	"splitbook/internal/storage/sqlite"
	"splitbook/pkg/logging"
)

var (
	dbPath  string
	backend string
	port    string

	store      storage.Store
	repository *repo.Repository
	sessions   *session.Manager
	listenAddr string
)

func Execute() error {
	root := &cobra.Command{
		Use:           "splitbook",
		Short:         "Track shared group expenses and who owes whom",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup()

			cfg := config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if backend != "" {
				cfg.Backend = backend
			}
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			switch cfg.Backend {
			case "memory":
				store = memory.New()
			default:
				s, err := sqlite.New(cfg.DBPath)
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				store = s
			}

			repository = repo.Open(cmd.Context(), store)
			sessions = session.NewManager(store)
			listenAddr = ":" + cfg.Port
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if err := repository.Flush(cmd.Context()); err != nil {
				slog.Error("Final flush failed", "error", err)
			}
			return store.Close()
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default $DB_PATH or ./data/splitbook.db)")
	root.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: sqlite or memory (default $DB_BACKEND or sqlite)")
	root.PersistentFlags().StringVar(&port, "port", "", "HTTP listen port for serve (default $PORT or 8080)")

	root.AddCommand(serveCmd(), balancesCmd(), totalsCmd(), exportCmd())
	return root.Execute()
}
