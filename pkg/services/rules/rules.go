// Package rules classifies storage configuration values against a fixed set
// of security and data-protection best practices. Every evaluator is a total
// function: unexpected concrete values classify as bad, missing values as
// warning, and no input can produce an error.
package rules

import (
	"strconv"

	"github.com/de-tools/storage-audit/pkg/models/domain"
)

// Property identifiers, used to key the remediation reference table and the
// report column headers.
const (
	PropBlobPublicAccess     = "blob_public_access"
	PropSharedKeyAccess      = "shared_key_access"
	PropHTTPSOnly            = "https_only"
	PropMinimumTLS           = "minimum_tls_version"
	PropNetworkDefaultAction = "network_default_action"
	PropPublicNetworkAccess  = "public_network_access"
	PropDeleteRetention      = "delete_retention"
	PropDeleteRetentionDays  = "delete_retention_days"
	PropContainerRetention   = "container_delete_retention"
	PropContainerDays        = "container_delete_retention_days"
	PropVersioning           = "versioning"
	PropChangeFeed           = "change_feed"
	PropRestorePolicy        = "restore_policy"
	PropLastAccessTracking   = "last_access_time_tracking"
)

// references maps a property to its remediation documentation. Attached to
// every non-good verdict for that property.
var references = map[string]string{
	PropBlobPublicAccess:     "https://learn.microsoft.com/azure/storage/blobs/anonymous-read-access-prevent",
	PropSharedKeyAccess:      "https://learn.microsoft.com/azure/storage/common/shared-key-authorization-prevent",
	PropHTTPSOnly:            "https://learn.microsoft.com/azure/storage/common/storage-require-secure-transfer",
	PropMinimumTLS:           "https://learn.microsoft.com/azure/storage/common/transport-layer-security-configure-minimum-version",
	PropNetworkDefaultAction: "https://learn.microsoft.com/azure/storage/common/storage-network-security",
	PropPublicNetworkAccess:  "https://learn.microsoft.com/azure/storage/common/storage-network-security",
	PropDeleteRetention:      "https://learn.microsoft.com/azure/storage/blobs/soft-delete-blob-overview",
	PropDeleteRetentionDays:  "https://learn.microsoft.com/azure/storage/blobs/soft-delete-blob-overview",
	PropContainerRetention:   "https://learn.microsoft.com/azure/storage/blobs/soft-delete-container-overview",
	PropContainerDays:        "https://learn.microsoft.com/azure/storage/blobs/soft-delete-container-overview",
	PropVersioning:           "https://learn.microsoft.com/azure/storage/blobs/versioning-overview",
	PropChangeFeed:           "https://learn.microsoft.com/azure/storage/blobs/storage-blob-change-feed",
	PropRestorePolicy:        "https://learn.microsoft.com/azure/storage/blobs/point-in-time-restore-overview",
	PropLastAccessTracking:   "https://learn.microsoft.com/azure/storage/blobs/lifecycle-management-overview",
}

// Reference returns the remediation link for a property, or "" when none is
// registered.
func Reference(property string) string {
	return references[property]
}

func good(label string) domain.Verdict {
	return domain.Verdict{Status: domain.StatusGood, Label: label}
}

func bad(property, label string) domain.Verdict {
	return domain.Verdict{Status: domain.StatusBad, Label: label, Reference: references[property]}
}

func warn(property, label string) domain.Verdict {
	return domain.Verdict{Status: domain.StatusWarning, Label: label, Reference: references[property]}
}

// EvaluateBlobPublicAccess flags accounts that allow anonymous blob access.
func EvaluateBlobPublicAccess(allowed bool) domain.Verdict {
	if allowed {
		return bad(PropBlobPublicAccess, "Allowed")
	}
	return good("Disallowed")
}

// EvaluateSharedKeyAccess flags accounts that still accept shared-key
// authorization. A nil value means the service did not report the setting.
func EvaluateSharedKeyAccess(allowed *bool) domain.Verdict {
	switch {
	case allowed == nil:
		return warn(PropSharedKeyAccess, "Not Set")
	case *allowed:
		return bad(PropSharedKeyAccess, "Allowed")
	default:
		return good("Disallowed")
	}
}

// EvaluateHTTPSOnly flags accounts that accept unencrypted transfer.
func EvaluateHTTPSOnly(required bool) domain.Verdict {
	if required {
		return good("Required")
	}
	return bad(PropHTTPSOnly, "Not Required")
}

// EvaluateMinimumTLS accepts TLS 1.2 and newer. Any other concrete version
// string, including ones the SDK does not know yet, is bad.
func EvaluateMinimumTLS(version *string) domain.Verdict {
	if version == nil {
		return warn(PropMinimumTLS, "Not Set")
	}
	switch *version {
	case "TLS1_2", "TLS1_3":
		return good(*version)
	default:
		return bad(PropMinimumTLS, *version)
	}
}

// EvaluateNetworkDefaultAction expects the firewall to deny by default.
func EvaluateNetworkDefaultAction(action *string) domain.Verdict {
	switch {
	case action == nil:
		return warn(PropNetworkDefaultAction, "Not Set")
	case *action == "Deny":
		return good("Deny")
	default:
		return bad(PropNetworkDefaultAction, *action)
	}
}

// EvaluatePublicNetworkAccess expects public network access to be disabled.
// Values other than Enabled/Disabled are reported as warnings rather than
// bad: the service has grown intermediate states before.
func EvaluatePublicNetworkAccess(access *string) domain.Verdict {
	switch {
	case access == nil:
		return warn(PropPublicNetworkAccess, "Not Set")
	case *access == "Disabled":
		return good("Disabled")
	case *access == "Enabled":
		return bad(PropPublicNetworkAccess, "Enabled")
	default:
		return warn(PropPublicNetworkAccess, *access)
	}
}

// EvaluateDeleteRetention expects blob soft delete to be enabled.
func EvaluateDeleteRetention(enabled bool) domain.Verdict {
	if enabled {
		return good("Enabled")
	}
	return bad(PropDeleteRetention, "Disabled")
}

// EvaluateDeleteRetentionDays grades the blob soft-delete window. Days are
// only meaningful while the policy is enabled; a disabled policy always
// reports N/A regardless of the stored count.
func EvaluateDeleteRetentionDays(enabled bool, days int32) domain.Verdict {
	if !enabled {
		return warn(PropDeleteRetentionDays, "N/A")
	}
	label := strconv.Itoa(int(days))
	switch {
	case days >= 7:
		return good(label)
	case days > 0:
		return warn(PropDeleteRetentionDays, label)
	default:
		return bad(PropDeleteRetentionDays, label)
	}
}

// EvaluateContainerRetention expects container soft delete to be enabled.
func EvaluateContainerRetention(enabled bool) domain.Verdict {
	if enabled {
		return good("Enabled")
	}
	return bad(PropContainerRetention, "Disabled")
}

// EvaluateContainerRetentionDays grades the container soft-delete window.
// Unlike the blob-level policy, an enabled policy with zero days reports
// "Not Set" instead of bad; the asymmetry is the documented behavior of the
// audit and is locked in by a regression test.
func EvaluateContainerRetentionDays(enabled bool, days int32) domain.Verdict {
	if !enabled {
		return warn(PropContainerDays, "N/A")
	}
	switch {
	case days >= 7:
		return good(strconv.Itoa(int(days)))
	case days == 0:
		return warn(PropContainerDays, "Not Set")
	default:
		return warn(PropContainerDays, strconv.Itoa(int(days)))
	}
}

// EvaluateVersioning expects blob versioning to be enabled.
func EvaluateVersioning(enabled bool) domain.Verdict {
	if enabled {
		return good("Enabled")
	}
	return bad(PropVersioning, "Disabled")
}

// EvaluateChangeFeed has no bad state: a disabled or unreported change feed
// is a warning only.
func EvaluateChangeFeed(enabled *bool) domain.Verdict {
	return evaluateOptionalFeature(PropChangeFeed, enabled)
}

// EvaluateRestorePolicy has no bad state, matching EvaluateChangeFeed.
func EvaluateRestorePolicy(enabled *bool) domain.Verdict {
	return evaluateOptionalFeature(PropRestorePolicy, enabled)
}

// EvaluateLastAccessTracking has no bad state, matching EvaluateChangeFeed.
func EvaluateLastAccessTracking(enabled *bool) domain.Verdict {
	return evaluateOptionalFeature(PropLastAccessTracking, enabled)
}

func evaluateOptionalFeature(property string, enabled *bool) domain.Verdict {
	switch {
	case enabled == nil:
		return warn(property, "Not Set")
	case *enabled:
		return good("Enabled")
	default:
		return warn(property, "Disabled")
	}
}
