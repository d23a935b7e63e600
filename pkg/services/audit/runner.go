// Package audit sequences one audit run: validate the subscription,
// enumerate its storage accounts, evaluate each account against the rule
// table, and assemble the report.
package audit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/de-tools/storage-audit/pkg/services/rules"
	"github.com/de-tools/storage-audit/pkg/services/scope"
	"github.com/de-tools/storage-audit/pkg/services/storage"
	"github.com/rs/zerolog"
)

// ErrNoAccounts aborts a run over a subscription with nothing to audit.
var ErrNoAccounts = errors.New("no storage accounts visible in the subscription")

type Runner interface {
	Run(ctx context.Context) (*domain.AuditReport, error)
}

type runner struct {
	subscriptionID string
	validator      scope.Validator
	explorer       storage.Explorer
}

func NewRunner(subscriptionID string, validator scope.Validator, explorer storage.Explorer) Runner {
	return &runner{
		subscriptionID: subscriptionID,
		validator:      validator,
		explorer:       explorer,
	}
}

// Run drives the audit end to end. Failures before enumeration completes are
// fatal and produce no report; per-account fetch failures degrade that
// account's rows and the run continues. Every enumerated account appears in
// both report sections exactly once.
func (r *runner) Run(ctx context.Context) (*domain.AuditReport, error) {
	logger := zerolog.Ctx(ctx)

	subscriptionName, err := r.validator.Validate(ctx, r.subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("scope validation failed: %w", err)
	}

	accounts, err := r.explorer.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumeration failed: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("subscription %s: %w", r.subscriptionID, ErrNoAccounts)
	}

	// Rows are sorted by account name so the same subscription state always
	// renders the same report body.
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })

	report := &domain.AuditReport{
		Subscription:     r.subscriptionID,
		SubscriptionName: subscriptionName,
		GeneratedAt:      time.Now().UTC(),
		AccountRows:      make([]domain.ResourceRow, 0, len(accounts)),
		BlobRows:         make([]domain.ResourceRow, 0, len(accounts)),
	}

	for _, acct := range accounts {
		report.AccountRows = append(report.AccountRows, r.auditAccount(ctx, acct, logger))
		report.BlobRows = append(report.BlobRows, r.auditBlobService(ctx, acct, logger))
	}

	logger.Info().
		Str("subscription", r.subscriptionID).
		Int("accounts", len(accounts)).
		Msg("audit completed")

	return report, nil
}

// auditAccount evaluates the account-level settings. When the fetch fails,
// the row keeps the already-known descriptor with every setting reported as
// an unknown warning.
func (r *runner) auditAccount(ctx context.Context, acct domain.StorageAccount, logger *zerolog.Logger) domain.ResourceRow {
	sec, err := r.explorer.GetAccountSecurity(ctx, acct)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("account", acct.Name).
			Msg("account properties unavailable, reporting unknown settings")
		return domain.ResourceRow{Account: acct, Verdicts: rules.Unknown(len(rules.AccountColumns))}
	}
	return domain.ResourceRow{Account: acct, Verdicts: rules.ForAccount(sec)}
}

// auditBlobService evaluates the blob-service settings. A failed fetch marks
// the row with the underlying error instead of verdicts.
func (r *runner) auditBlobService(ctx context.Context, acct domain.StorageAccount, logger *zerolog.Logger) domain.ResourceRow {
	protection, err := r.explorer.GetBlobProtection(ctx, acct)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("account", acct.Name).
			Msg("blob service properties unavailable, marking row")
		return domain.ResourceRow{Account: acct, FetchErr: err.Error()}
	}
	return domain.ResourceRow{Account: acct, Verdicts: rules.ForBlobService(protection)}
}
