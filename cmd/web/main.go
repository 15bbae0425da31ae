package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
	"github.com/biztools/revenue-atlas/pkg/server"
	"github.com/biztools/revenue-atlas/pkg/services/config"
	"github.com/biztools/revenue-atlas/pkg/services/report"
	csvstore "github.com/biztools/revenue-atlas/pkg/store/csv"
)

var (
	dataPath string
	cfgPath  string
	addr     string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Revenue Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&dataPath, "data", "d", "data.csv",
		"Path to the transaction record file")
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the report parameters file (optional)")
	rootCmd.Flags().StringVarP(&addr, "addr", "a", ":8080",
		"Address for the server to listen on")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	store, err := csvstore.NewStore(dataPath)
	if err != nil {
		return fmt.Errorf("failed to load record store: %w", err)
	}

	var params domain.ReportParams
	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load report config: %w", err)
		}
		params = cfg.Params()
		logger.Info().Msgf("Report parameters loaded from `%s`.", cfgPath)
	}

	generator := report.NewGenerator(store)

	api := server.NewWebAPI(logger, server.Config{
		Addr:          addr,
		DefaultParams: params,
		Dependencies: server.Dependencies{
			Report: generator,
		},
	})

	return api.Start()
}
