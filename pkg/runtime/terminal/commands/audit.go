package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/storage-audit/pkg/runtime/terminal/export"
	"github.com/de-tools/storage-audit/pkg/services/audit"
	"github.com/de-tools/storage-audit/pkg/services/azure"
	"github.com/de-tools/storage-audit/pkg/services/scope"
	"github.com/de-tools/storage-audit/pkg/services/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultOutput = "storage-report.html"

// Settings mirror the audit flags so they can also come from a config file.
type Settings struct {
	Subscription string `mapstructure:"subscription"`
	Profile      string `mapstructure:"profile"`
	Output       string `mapstructure:"output"`
}

type AuditCmd struct {
	subscription string
	profile      string
	output       string
	configPath   string
	verbose      bool
}

func NewAuditCmd() *cobra.Command {
	ac := &AuditCmd{}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit storage accounts of a subscription and write the HTML report",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.subscription, "subscription", "", "Subscription ID to audit (defaults to the profile's subscription)")
	cmd.Flags().StringVar(&ac.profile, "profile", azure.DefaultProfile, "Azure config profile to authenticate with")
	cmd.Flags().StringVarP(&ac.output, "output", "o", defaultOutput, "Path of the generated HTML report")
	cmd.Flags().StringVar(&ac.configPath, "config", "", "Optional config file supplying the same settings as the flags")
	cmd.Flags().BoolVarP(&ac.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func (ac *AuditCmd) run(cmd *cobra.Command, args []string) error {
	logger := newLogger(ac.verbose)

	if ac.configPath != "" {
		if err := ac.applyConfigFile(); err != nil {
			return err
		}
	}

	cfg, err := azure.LoadConfig(ac.profile)
	if err != nil {
		return fmt.Errorf("failed to load Azure profile %q: %w", ac.profile, err)
	}

	subscription := ac.subscription
	if subscription == "" {
		subscription = cfg.SubscriptionID
	}
	if subscription == "" {
		return fmt.Errorf("no subscription: pass --subscription or set one in profile %q", ac.profile)
	}

	validator, err := scope.NewValidator(cfg.Credentials)
	if err != nil {
		return err
	}
	explorer, err := storage.NewExplorer(subscription, cfg.Credentials)
	if err != nil {
		return err
	}

	ctx := logger.WithContext(cmd.Context())
	logger.Debug().Str("subscription", subscription).Msg("starting audit")

	report, err := audit.NewRunner(subscription, validator, explorer).Run(ctx)
	if err != nil {
		return err
	}

	if err := export.WriteFile(ac.output, report); err != nil {
		return err
	}

	logger.Info().Str("path", ac.output).Msg("report written")
	return nil
}

// applyConfigFile fills settings the flags left empty. Flags win over the
// file so a shared config can still be overridden per run.
func (ac *AuditCmd) applyConfigFile() error {
	v := viper.New()
	v.SetConfigFile(ac.configPath)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if ac.subscription == "" {
		ac.subscription = settings.Subscription
	}
	if ac.profile == azure.DefaultProfile && settings.Profile != "" {
		ac.profile = settings.Profile
	}
	if ac.output == defaultOutput && settings.Output != "" {
		ac.output = settings.Output
	}
	return nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(level)
}
