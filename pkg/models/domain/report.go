package domain

import "time"

// ResourceRow is one report row: either a full verdict vector for the
// account, or an error marker when the per-resource fetch failed.
type ResourceRow struct {
	Account  StorageAccount
	Verdicts []Verdict
	FetchErr string
}

// AuditReport is the complete result of one audit run. GeneratedAt feeds the
// run-metadata line only; the report body is a pure function of the rows.
type AuditReport struct {
	Subscription     string
	SubscriptionName string
	GeneratedAt      time.Time
	AccountRows      []ResourceRow
	BlobRows         []ResourceRow
}
