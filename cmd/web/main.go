package main

import (
	"fmt"
	"os"
	"time"

	"github.com/de-tools/storage-audit/pkg/server"
	"github.com/de-tools/storage-audit/pkg/services/audit"
	"github.com/de-tools/storage-audit/pkg/services/azure"
	"github.com/de-tools/storage-audit/pkg/services/scope"
	"github.com/de-tools/storage-audit/pkg/services/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	addr         string
	profile      string
	subscription string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve storage security audit reports over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Address to listen on")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", azure.DefaultProfile, "Azure config profile to authenticate with")
	rootCmd.Flags().StringVar(&subscription, "subscription", "", "Subscription ID to audit (defaults to the profile's subscription)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := azure.LoadConfig(profile)
	if err != nil {
		return fmt.Errorf("failed to load Azure profile %q: %w", profile, err)
	}

	if subscription == "" {
		subscription = cfg.SubscriptionID
	}
	if subscription == "" {
		return fmt.Errorf("no subscription: pass --subscription or set one in profile %q", profile)
	}

	validator, err := scope.NewValidator(cfg.Credentials)
	if err != nil {
		return err
	}
	explorer, err := storage.NewExplorer(subscription, cfg.Credentials)
	if err != nil {
		return err
	}

	logger.Info().
		Str("profile", profile).
		Str("subscription", subscription).
		Msg("serving audit reports")

	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Audit:  audit.NewRunner(subscription, validator, explorer),
			Logger: logger,
		},
	})

	return api.Start()
}
