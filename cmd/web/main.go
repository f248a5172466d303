package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/hm-tools/stay-atlas/pkg/server"
	"github.com/hm-tools/stay-atlas/pkg/services/config"
	"github.com/hm-tools/stay-atlas/pkg/services/report"
	"github.com/hm-tools/stay-atlas/pkg/store/postgres"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the stay-atlas reporting server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "stay-atlas.yaml",
		"Path to the stay-atlas config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := config.NewRegistry(cfg.ProfilesPath)
	if err != nil {
		return fmt.Errorf("failed to load connection profiles: %w", err)
	}

	ctx := logger.WithContext(cmd.Context())
	dsn, err := registry.GetDSN(ctx, cfg.Profile)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %q: %w", cfg.Profile, err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	st, err := postgres.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	profiles, _ := registry.GetProfiles(ctx)
	logger.Info().Strs("profiles", profiles).Str("active", cfg.Profile).
		Msg("connection profiles loaded")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports: report.NewGenerator(st, cfg.TopN),
			Logger:  logger,
		},
	})

	return api.Start()
}
