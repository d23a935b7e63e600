// Package storage enumerates the storage accounts of a subscription and
// fetches the configuration the audit evaluates.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/de-tools/storage-audit/pkg/models/domain"
)

// ErrUnauthorized marks enumeration failures caused by missing read access
// rather than transient service trouble.
var ErrUnauthorized = errors.New("caller lacks read access to the subscription")

// Explorer lists storage accounts and fetches their audited configuration.
// Account-level and blob-service-level fetches fail independently per
// resource; a failure for one account never affects another.
type Explorer interface {
	ListAccounts(ctx context.Context) ([]domain.StorageAccount, error)
	GetAccountSecurity(ctx context.Context, acct domain.StorageAccount) (domain.AccountSecurity, error)
	GetBlobProtection(ctx context.Context, acct domain.StorageAccount) (domain.BlobProtection, error)
}

type explorer struct {
	accounts *armstorage.AccountsClient
	blobs    *armstorage.BlobServicesClient
}

func NewExplorer(subscriptionID string, cred azcore.TokenCredential) (Explorer, error) {
	accounts, err := armstorage.NewAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
	}

	blobs, err := armstorage.NewBlobServicesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob services client: %w", err)
	}

	return &explorer{accounts: accounts, blobs: blobs}, nil
}

// ListAccounts pages through every storage account visible in the
// subscription. An empty subscription yields an empty slice, not an error.
func (e *explorer) ListAccounts(ctx context.Context) ([]domain.StorageAccount, error) {
	var result []domain.StorageAccount

	pager := e.accounts.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if isForbidden(err) {
				return nil, fmt.Errorf("listing storage accounts: %w", ErrUnauthorized)
			}
			return nil, fmt.Errorf("failed to list storage accounts: %w", err)
		}

		for _, acct := range page.Value {
			descriptor, err := descriptorFromAccount(acct)
			if err != nil {
				return nil, err
			}
			result = append(result, descriptor)
		}
	}

	return result, nil
}

func (e *explorer) GetAccountSecurity(ctx context.Context, acct domain.StorageAccount) (domain.AccountSecurity, error) {
	resp, err := e.accounts.GetProperties(ctx, acct.ResourceGroup, acct.Name, nil)
	if err != nil {
		return domain.AccountSecurity{}, fmt.Errorf("failed to fetch properties of account %s: %w", acct.Name, err)
	}
	return accountSecurityFromProperties(resp.Properties), nil
}

func (e *explorer) GetBlobProtection(ctx context.Context, acct domain.StorageAccount) (domain.BlobProtection, error) {
	resp, err := e.blobs.GetServiceProperties(ctx, acct.ResourceGroup, acct.Name, nil)
	if err != nil {
		return domain.BlobProtection{}, fmt.Errorf("failed to fetch blob service properties of account %s: %w", acct.Name, err)
	}
	return blobProtectionFromProperties(resp.BlobServiceProperties.BlobServiceProperties), nil
}

func descriptorFromAccount(acct *armstorage.Account) (domain.StorageAccount, error) {
	if acct == nil || acct.ID == nil {
		return domain.StorageAccount{}, fmt.Errorf("storage account entry without an ID")
	}

	id, err := arm.ParseResourceID(*acct.ID)
	if err != nil {
		return domain.StorageAccount{}, fmt.Errorf("failed to parse resource ID %q: %w", *acct.ID, err)
	}

	descriptor := domain.StorageAccount{
		Name:          id.Name,
		ResourceGroup: id.ResourceGroupName,
	}
	if acct.Location != nil {
		descriptor.Location = *acct.Location
	}
	return descriptor, nil
}

func isForbidden(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusForbidden
}
