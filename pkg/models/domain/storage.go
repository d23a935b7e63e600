package domain

// StorageAccount identifies one storage account within a subscription.
// Fetched once per run and never mutated.
type StorageAccount struct {
	Name          string
	ResourceGroup string
	Location      string
}

// AccountSecurity holds the account-level settings the audit evaluates.
// Pointer fields are tri-state: nil means the service did not report a value.
type AccountSecurity struct {
	BlobPublicAccess     bool
	SharedKeyAccess      *bool
	HTTPSOnly            bool
	MinimumTLSVersion    *string
	NetworkDefaultAction *string
	PublicNetworkAccess  *string
}

// BlobProtection holds the blob-service-level data protection settings.
// Retention day counts are meaningful only while their policy is enabled.
type BlobProtection struct {
	DeleteRetentionEnabled    bool
	DeleteRetentionDays       int32
	ContainerRetentionEnabled bool
	ContainerRetentionDays    int32
	VersioningEnabled         bool
	ChangeFeedEnabled         *bool
	RestorePolicyEnabled      *bool
	LastAccessTrackingEnabled *bool
}
