package domain

type VerdictStatus int

const (
	StatusGood VerdictStatus = iota
	StatusBad
	StatusWarning
)

func (s VerdictStatus) String() string {
	switch s {
	case StatusGood:
		return "good"
	case StatusBad:
		return "bad"
	default:
		return "warning"
	}
}

// Verdict classifies a single configuration setting. Label is the text shown
// in the report cell; Reference optionally points at remediation docs.
type Verdict struct {
	Status    VerdictStatus
	Label     string
	Reference string
}
