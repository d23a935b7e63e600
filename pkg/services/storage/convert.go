package storage

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/de-tools/storage-audit/pkg/models/domain"
)

// accountSecurityFromProperties maps the SDK account properties onto the
// audited settings. Pointer fields stay nil when the service omitted them so
// the evaluator can tell "unset" from a concrete value; BlobPublicAccess is
// the exception, where an omitted value means access is not allowed.
func accountSecurityFromProperties(props *armstorage.AccountProperties) domain.AccountSecurity {
	var sec domain.AccountSecurity
	if props == nil {
		return sec
	}

	if props.AllowBlobPublicAccess != nil {
		sec.BlobPublicAccess = *props.AllowBlobPublicAccess
	}
	sec.SharedKeyAccess = props.AllowSharedKeyAccess
	if props.EnableHTTPSTrafficOnly != nil {
		sec.HTTPSOnly = *props.EnableHTTPSTrafficOnly
	}
	if props.MinimumTLSVersion != nil {
		version := string(*props.MinimumTLSVersion)
		sec.MinimumTLSVersion = &version
	}
	if props.NetworkRuleSet != nil && props.NetworkRuleSet.DefaultAction != nil {
		action := string(*props.NetworkRuleSet.DefaultAction)
		sec.NetworkDefaultAction = &action
	}
	if props.PublicNetworkAccess != nil {
		access := string(*props.PublicNetworkAccess)
		sec.PublicNetworkAccess = &access
	}

	return sec
}

// blobProtectionFromProperties maps the SDK blob service properties onto the
// audited settings. Absent policies read as disabled with zero days.
func blobProtectionFromProperties(props *armstorage.BlobServicePropertiesProperties) domain.BlobProtection {
	var p domain.BlobProtection
	if props == nil {
		return p
	}

	if policy := props.DeleteRetentionPolicy; policy != nil {
		if policy.Enabled != nil {
			p.DeleteRetentionEnabled = *policy.Enabled
		}
		if policy.Days != nil {
			p.DeleteRetentionDays = *policy.Days
		}
	}
	if policy := props.ContainerDeleteRetentionPolicy; policy != nil {
		if policy.Enabled != nil {
			p.ContainerRetentionEnabled = *policy.Enabled
		}
		if policy.Days != nil {
			p.ContainerRetentionDays = *policy.Days
		}
	}
	if props.IsVersioningEnabled != nil {
		p.VersioningEnabled = *props.IsVersioningEnabled
	}
	if props.ChangeFeed != nil {
		p.ChangeFeedEnabled = props.ChangeFeed.Enabled
	}
	if props.RestorePolicy != nil {
		p.RestorePolicyEnabled = props.RestorePolicy.Enabled
	}
	if props.LastAccessTimeTrackingPolicy != nil {
		p.LastAccessTrackingEnabled = props.LastAccessTimeTrackingPolicy.Enable
	}

	return p
}
