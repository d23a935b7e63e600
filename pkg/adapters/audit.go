package adapters

import (
	"github.com/de-tools/storage-audit/pkg/models/api"
	"github.com/de-tools/storage-audit/pkg/models/domain"
)

func MapVerdictStatusDomainToApi(s domain.VerdictStatus) api.VerdictStatus {
	switch s {
	case domain.StatusGood:
		return api.StatusGood
	case domain.StatusBad:
		return api.StatusBad
	default:
		return api.StatusWarning
	}
}

func MapVerdictDomainToApi(v domain.Verdict) api.Verdict {
	return api.Verdict{
		Status:    MapVerdictStatusDomainToApi(v.Status),
		Label:     v.Label,
		Reference: v.Reference,
	}
}

func MapStorageAccountDomainToApi(a domain.StorageAccount) api.StorageAccount {
	return api.StorageAccount{
		Name:          a.Name,
		ResourceGroup: a.ResourceGroup,
		Location:      a.Location,
	}
}

func MapResourceRowDomainToApi(r domain.ResourceRow) api.ResourceRow {
	row := api.ResourceRow{
		Account:  MapStorageAccountDomainToApi(r.Account),
		FetchErr: r.FetchErr,
	}
	for _, v := range r.Verdicts {
		row.Verdicts = append(row.Verdicts, MapVerdictDomainToApi(v))
	}
	return row
}

func MapAuditReportDomainToApi(r *domain.AuditReport) api.AuditReport {
	res := api.AuditReport{
		Subscription:     r.Subscription,
		SubscriptionName: r.SubscriptionName,
		GeneratedAt:      r.GeneratedAt,
		AccountRows:      make([]api.ResourceRow, 0, len(r.AccountRows)),
		BlobRows:         make([]api.ResourceRow, 0, len(r.BlobRows)),
	}
	for _, row := range r.AccountRows {
		res.AccountRows = append(res.AccountRows, MapResourceRowDomainToApi(row))
	}
	for _, row := range r.BlobRows {
		res.BlobRows = append(res.BlobRows, MapResourceRowDomainToApi(row))
	}
	return res
}
