package rules

import "github.com/de-tools/storage-audit/pkg/models/domain"

// AccountColumns is the fixed column order of the account-level report
// section. ForAccount emits verdicts in the same order.
var AccountColumns = []string{
	"Blob Public Access",
	"Shared Key Access",
	"HTTPS Only",
	"Minimum TLS Version",
	"Network Default Action",
	"Public Network Access",
}

// BlobColumns is the fixed column order of the blob-service report section.
var BlobColumns = []string{
	"Delete Retention",
	"Delete Retention Days",
	"Container Delete Retention",
	"Container Retention Days",
	"Versioning",
	"Change Feed",
	"Restore Policy",
	"Last Access Tracking",
}

// ForAccount evaluates every account-level setting, in AccountColumns order.
func ForAccount(sec domain.AccountSecurity) []domain.Verdict {
	return []domain.Verdict{
		EvaluateBlobPublicAccess(sec.BlobPublicAccess),
		EvaluateSharedKeyAccess(sec.SharedKeyAccess),
		EvaluateHTTPSOnly(sec.HTTPSOnly),
		EvaluateMinimumTLS(sec.MinimumTLSVersion),
		EvaluateNetworkDefaultAction(sec.NetworkDefaultAction),
		EvaluatePublicNetworkAccess(sec.PublicNetworkAccess),
	}
}

// ForBlobService evaluates every blob-service setting, in BlobColumns order.
func ForBlobService(p domain.BlobProtection) []domain.Verdict {
	return []domain.Verdict{
		EvaluateDeleteRetention(p.DeleteRetentionEnabled),
		EvaluateDeleteRetentionDays(p.DeleteRetentionEnabled, p.DeleteRetentionDays),
		EvaluateContainerRetention(p.ContainerRetentionEnabled),
		EvaluateContainerRetentionDays(p.ContainerRetentionEnabled, p.ContainerRetentionDays),
		EvaluateVersioning(p.VersioningEnabled),
		EvaluateChangeFeed(p.ChangeFeedEnabled),
		EvaluateRestorePolicy(p.RestorePolicyEnabled),
		EvaluateLastAccessTracking(p.LastAccessTrackingEnabled),
	}
}

// Unknown builds an all-warning vector of n columns, used when the settings
// for a resource could not be fetched at all.
func Unknown(n int) []domain.Verdict {
	verdicts := make([]domain.Verdict, n)
	for i := range verdicts {
		verdicts[i] = domain.Verdict{Status: domain.StatusWarning, Label: "Unknown"}
	}
	return verdicts
}
