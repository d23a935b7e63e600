// Package azure resolves the credential and subscription used by the audit
// from the local Azure CLI configuration.
package azure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/ini.v1"
)

const DefaultProfile = "default"

type Config struct {
	SubscriptionID string
	TenantID       string
	Credentials    *azidentity.AzureCLICredential
}

// LoadConfig reads a profile from ~/.azure/config and builds an Azure CLI
// credential for it. The subscription from the profile is a default only;
// callers may override it with an explicitly supplied scope.
func LoadConfig(profile string) (*Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("unable to get home directory: %w", err)
	}

	cfg, err := ini.Load(filepath.Join(homeDir, ".azure", "config"))
	if err != nil {
		return nil, fmt.Errorf("unable to load Azure config file: %w", err)
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found in Azure config: %w", profile, err)
	}

	credentials, err := newCredentials(profile)
	if err != nil {
		return nil, err
	}

	return &Config{
		SubscriptionID: section.Key("subscription").String(),
		TenantID:       section.Key("tenant").String(),
		Credentials:    credentials,
	}, nil
}

func newCredentials(profile string) (*azidentity.AzureCLICredential, error) {
	// AzureCLICredential picks up the profile selected here.
	if err := os.Setenv("AZURE_PROFILE", profile); err != nil {
		return nil, fmt.Errorf("failed to set Azure profile: %w", err)
	}

	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}
	return cred, nil
}
