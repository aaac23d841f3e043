package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/martijn/clientsapi/internal/core/repository"
	"github.com/martijn/clientsapi/internal/core/service"
	"github.com/martijn/clientsapi/internal/infrastructure/mongodb"
	"github.com/martijn/clientsapi/internal/infrastructure/sqlite"
	"github.com/martijn/clientsapi/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clientsapi",
	Short: "Clients API - loyalty-program client records",
	Long: `clientsapi stores loyalty-program client records and serves them over a JSON API.

It provides:
- Create, list, read, update and delete of client records
- MongoDB storage, or an embedded SQLite file for local use
- The same routes under /api/clients and /clients
- Command line access to the same records`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = newLogger(cfg.LogLevel)
		slog.SetDefault(logger)

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/clientsapi/config.yml, optional)")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// openRepository connects the configured storage backend
func openRepository(ctx context.Context, cfg *config.Config) (repository.ClientRepository, error) {
	switch cfg.Backend {
	case config.BackendMongoDB:
		db, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		logger.Info("connected to mongodb", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)
		return mongodb.NewClientRepository(db, cfg.MongoCollection), nil
	case config.BackendSQLite:
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		logger.Info("opened sqlite database", "path", cfg.SQLitePath)
		return sqlite.NewClientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}

// initServices initializes all services
func initServices(ctx context.Context) (*Services, error) {
	clientRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Services{
		ClientRepo:    clientRepo,
		ClientService: service.NewClientService(clientRepo),
	}, nil
}

// Services holds all initialized services
type Services struct {
	ClientRepo    repository.ClientRepository
	ClientService *service.ClientService
}

// Close closes all resources
func (s *Services) Close(ctx context.Context) {
	if s.ClientRepo != nil {
		if err := s.ClientRepo.Close(ctx); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
}
