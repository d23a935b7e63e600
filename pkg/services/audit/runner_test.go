package audit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/de-tools/storage-audit/pkg/services/rules"
	"github.com/de-tools/storage-audit/pkg/services/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) ListAccounts(ctx context.Context) ([]domain.StorageAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StorageAccount), args.Error(1)
}

func (m *mockExplorer) GetAccountSecurity(ctx context.Context, acct domain.StorageAccount) (domain.AccountSecurity, error) {
	args := m.Called(ctx, acct)
	return args.Get(0).(domain.AccountSecurity), args.Error(1)
}

func (m *mockExplorer) GetBlobProtection(ctx context.Context, acct domain.StorageAccount) (domain.BlobProtection, error) {
	args := m.Called(ctx, acct)
	return args.Get(0).(domain.BlobProtection), args.Error(1)
}

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(ctx context.Context, subscriptionID string) (string, error) {
	args := m.Called(ctx, subscriptionID)
	return args.String(0), args.Error(1)
}

const testSubscription = "00000000-0000-0000-0000-000000000000"

func account(name string) domain.StorageAccount {
	return domain.StorageAccount{Name: name, ResourceGroup: "rg", Location: "westeurope"}
}

func healthySecurity() domain.AccountSecurity {
	return domain.AccountSecurity{HTTPSOnly: true}
}

func TestRun_HappyPathSortsRowsByName(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	validator := new(mockValidator)

	validator.On("Validate", ctx, testSubscription).Return("Production", nil)
	explorer.On("ListAccounts", ctx).Return([]domain.StorageAccount{
		account("zeta"), account("alpha"), account("mid"),
	}, nil)
	explorer.On("GetAccountSecurity", ctx, mock.Anything).Return(healthySecurity(), nil)
	explorer.On("GetBlobProtection", ctx, mock.Anything).Return(domain.BlobProtection{}, nil)

	report, err := NewRunner(testSubscription, validator, explorer).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Production", report.SubscriptionName)
	require.Len(t, report.AccountRows, 3)
	require.Len(t, report.BlobRows, 3)

	var names []string
	for _, row := range report.AccountRows {
		names = append(names, row.Account.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)

	for _, row := range report.AccountRows {
		assert.Len(t, row.Verdicts, len(rules.AccountColumns))
		assert.Empty(t, row.FetchErr)
	}
	for _, row := range report.BlobRows {
		assert.Len(t, row.Verdicts, len(rules.BlobColumns))
	}
}

func TestRun_BlobFetchFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	validator := new(mockValidator)

	accounts := []domain.StorageAccount{account("a"), account("b"), account("c")}
	validator.On("Validate", ctx, testSubscription).Return("Production", nil)
	explorer.On("ListAccounts", ctx).Return(accounts, nil)
	explorer.On("GetAccountSecurity", ctx, mock.Anything).Return(healthySecurity(), nil)

	explorer.On("GetBlobProtection", ctx, account("b")).
		Return(domain.BlobProtection{}, fmt.Errorf("GET blob service: 500"))
	explorer.On("GetBlobProtection", ctx, account("a")).Return(domain.BlobProtection{}, nil)
	explorer.On("GetBlobProtection", ctx, account("c")).Return(domain.BlobProtection{}, nil)

	report, err := NewRunner(testSubscription, validator, explorer).Run(ctx)
	require.NoError(t, err)
	require.Len(t, report.BlobRows, 3)

	failed := report.BlobRows[1]
	assert.Equal(t, "b", failed.Account.Name)
	assert.Empty(t, failed.Verdicts)
	assert.Contains(t, failed.FetchErr, "500")

	for _, i := range []int{0, 2} {
		assert.Empty(t, report.BlobRows[i].FetchErr)
		assert.Len(t, report.BlobRows[i].Verdicts, len(rules.BlobColumns))
	}
}

func TestRun_AccountFetchFailureReportsUnknown(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	validator := new(mockValidator)

	validator.On("Validate", ctx, testSubscription).Return("Production", nil)
	explorer.On("ListAccounts", ctx).Return([]domain.StorageAccount{account("a")}, nil)
	explorer.On("GetAccountSecurity", ctx, account("a")).
		Return(domain.AccountSecurity{}, errors.New("throttled"))
	explorer.On("GetBlobProtection", ctx, account("a")).Return(domain.BlobProtection{}, nil)

	report, err := NewRunner(testSubscription, validator, explorer).Run(ctx)
	require.NoError(t, err)
	require.Len(t, report.AccountRows, 1)

	row := report.AccountRows[0]
	assert.Equal(t, "a", row.Account.Name)
	require.Len(t, row.Verdicts, len(rules.AccountColumns))
	for _, v := range row.Verdicts {
		assert.Equal(t, domain.StatusWarning, v.Status)
	}
}

func TestRun_ZeroAccountsIsFatal(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	validator := new(mockValidator)

	validator.On("Validate", ctx, testSubscription).Return("Production", nil)
	explorer.On("ListAccounts", ctx).Return([]domain.StorageAccount{}, nil)

	report, err := NewRunner(testSubscription, validator, explorer).Run(ctx)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrNoAccounts)
}

func TestRun_ValidationFailureAborts(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	validator := new(mockValidator)

	validator.On("Validate", ctx, testSubscription).Return("", errors.New("subscription not found"))

	report, err := NewRunner(testSubscription, validator, explorer).Run(ctx)
	assert.Nil(t, report)
	assert.Error(t, err)
	explorer.AssertNotCalled(t, "ListAccounts", mock.Anything)
}

func TestRun_UnauthorizedEnumerationAborts(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	validator := new(mockValidator)

	validator.On("Validate", ctx, testSubscription).Return("Production", nil)
	explorer.On("ListAccounts", ctx).
		Return([]domain.StorageAccount(nil), fmt.Errorf("listing storage accounts: %w", storage.ErrUnauthorized))

	report, err := NewRunner(testSubscription, validator, explorer).Run(ctx)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, storage.ErrUnauthorized)
}
