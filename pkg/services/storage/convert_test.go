package storage

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountSecurityFromProperties(t *testing.T) {
	t.Run("fully populated", func(t *testing.T) {
		props := &armstorage.AccountProperties{
			AllowBlobPublicAccess:  to.Ptr(true),
			AllowSharedKeyAccess:   to.Ptr(false),
			EnableHTTPSTrafficOnly: to.Ptr(true),
			MinimumTLSVersion:      to.Ptr(armstorage.MinimumTLSVersionTLS12),
			NetworkRuleSet: &armstorage.NetworkRuleSet{
				DefaultAction: to.Ptr(armstorage.DefaultActionDeny),
			},
			PublicNetworkAccess: to.Ptr(armstorage.PublicNetworkAccessDisabled),
		}

		sec := accountSecurityFromProperties(props)
		assert.True(t, sec.BlobPublicAccess)
		require.NotNil(t, sec.SharedKeyAccess)
		assert.False(t, *sec.SharedKeyAccess)
		assert.True(t, sec.HTTPSOnly)
		require.NotNil(t, sec.MinimumTLSVersion)
		assert.Equal(t, "TLS1_2", *sec.MinimumTLSVersion)
		require.NotNil(t, sec.NetworkDefaultAction)
		assert.Equal(t, "Deny", *sec.NetworkDefaultAction)
		require.NotNil(t, sec.PublicNetworkAccess)
		assert.Equal(t, "Disabled", *sec.PublicNetworkAccess)
	})

	t.Run("omitted fields stay unknown", func(t *testing.T) {
		sec := accountSecurityFromProperties(&armstorage.AccountProperties{})
		assert.False(t, sec.BlobPublicAccess)
		assert.Nil(t, sec.SharedKeyAccess)
		assert.Nil(t, sec.MinimumTLSVersion)
		assert.Nil(t, sec.NetworkDefaultAction)
		assert.Nil(t, sec.PublicNetworkAccess)
	})

	t.Run("nil properties", func(t *testing.T) {
		sec := accountSecurityFromProperties(nil)
		assert.False(t, sec.HTTPSOnly)
		assert.Nil(t, sec.SharedKeyAccess)
	})
}

func TestBlobProtectionFromProperties(t *testing.T) {
	t.Run("fully populated", func(t *testing.T) {
		props := &armstorage.BlobServicePropertiesProperties{
			DeleteRetentionPolicy: &armstorage.DeleteRetentionPolicy{
				Enabled: to.Ptr(true),
				Days:    to.Ptr(int32(14)),
			},
			ContainerDeleteRetentionPolicy: &armstorage.DeleteRetentionPolicy{
				Enabled: to.Ptr(true),
				Days:    to.Ptr(int32(7)),
			},
			IsVersioningEnabled: to.Ptr(true),
			ChangeFeed:          &armstorage.ChangeFeed{Enabled: to.Ptr(false)},
			RestorePolicy:       &armstorage.RestorePolicyProperties{Enabled: to.Ptr(true)},
			LastAccessTimeTrackingPolicy: &armstorage.LastAccessTimeTrackingPolicy{
				Enable: to.Ptr(true),
			},
		}

		p := blobProtectionFromProperties(props)
		assert.True(t, p.DeleteRetentionEnabled)
		assert.Equal(t, int32(14), p.DeleteRetentionDays)
		assert.True(t, p.ContainerRetentionEnabled)
		assert.Equal(t, int32(7), p.ContainerRetentionDays)
		assert.True(t, p.VersioningEnabled)
		require.NotNil(t, p.ChangeFeedEnabled)
		assert.False(t, *p.ChangeFeedEnabled)
		require.NotNil(t, p.RestorePolicyEnabled)
		assert.True(t, *p.RestorePolicyEnabled)
		require.NotNil(t, p.LastAccessTrackingEnabled)
		assert.True(t, *p.LastAccessTrackingEnabled)
	})

	t.Run("absent policies read as disabled and unknown", func(t *testing.T) {
		p := blobProtectionFromProperties(&armstorage.BlobServicePropertiesProperties{})
		assert.False(t, p.DeleteRetentionEnabled)
		assert.Zero(t, p.DeleteRetentionDays)
		assert.Nil(t, p.ChangeFeedEnabled)
		assert.Nil(t, p.RestorePolicyEnabled)
		assert.Nil(t, p.LastAccessTrackingEnabled)
	})
}

func TestDescriptorFromAccount(t *testing.T) {
	acct := &armstorage.Account{
		ID:       to.Ptr("/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/prod-rg/providers/Microsoft.Storage/storageAccounts/prodstore"),
		Name:     to.Ptr("prodstore"),
		Location: to.Ptr("westeurope"),
	}

	descriptor, err := descriptorFromAccount(acct)
	require.NoError(t, err)
	assert.Equal(t, "prodstore", descriptor.Name)
	assert.Equal(t, "prod-rg", descriptor.ResourceGroup)
	assert.Equal(t, "westeurope", descriptor.Location)

	_, err = descriptorFromAccount(&armstorage.Account{})
	assert.Error(t, err)
}
