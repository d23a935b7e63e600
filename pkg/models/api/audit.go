package api

import "time"

type VerdictStatus string

const (
	StatusGood    VerdictStatus = "good"
	StatusBad     VerdictStatus = "bad"
	StatusWarning VerdictStatus = "warning"
)

type Verdict struct {
	Status    VerdictStatus `json:"status"`
	Label     string        `json:"label"`
	Reference string        `json:"reference,omitempty"`
}

type StorageAccount struct {
	Name          string `json:"name"`
	ResourceGroup string `json:"resource_group"`
	Location      string `json:"location"`
}

type ResourceRow struct {
	Account  StorageAccount `json:"account"`
	Verdicts []Verdict      `json:"verdicts,omitempty"`
	FetchErr string         `json:"fetch_error,omitempty"`
}

type AuditReport struct {
	Subscription     string        `json:"subscription"`
	SubscriptionName string        `json:"subscription_name"`
	GeneratedAt      time.Time     `json:"generated_at"`
	AccountRows      []ResourceRow `json:"account_rows"`
	BlobRows         []ResourceRow `json:"blob_rows"`
}
