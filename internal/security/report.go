package security

import "time"

// MinSecretLength is the shortest secret considered strong for HMAC keys.
const MinSecretLength = 32

type Report struct {
	Backend          string
	SigningAlgorithm string
	ExpiresIn        time.Duration
	SecretLength     int
	StrongSecret     bool
	IDStrategy       string
	CustomIDs        bool
	ImmediateExpiry  bool
	MetricsEnabled   bool
}

type ReportInput struct {
	Backend          string
	SigningAlgorithm string
	ExpiresIn        time.Duration
	SecretLength     int
	IDStrategy       string
	CustomIDs        bool
	MetricsEnabled   bool
}

func BuildReport(input ReportInput) Report {
	strategy := input.IDStrategy
	if input.CustomIDs {
		strategy = "custom"
	}

	return Report{
		Backend:          input.Backend,
		SigningAlgorithm: input.SigningAlgorithm,
		ExpiresIn:        input.ExpiresIn,
		SecretLength:     input.SecretLength,
		StrongSecret:     input.SecretLength >= MinSecretLength,
		IDStrategy:       strategy,
		CustomIDs:        input.CustomIDs,
		ImmediateExpiry:  input.ExpiresIn == 0,
		MetricsEnabled:   input.MetricsEnabled,
	}
}
