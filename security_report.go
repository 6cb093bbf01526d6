package goCSRF

import "github.com/dualtoken/goCSRF/internal/security"

// SecurityReport summarises the engine's signing posture. It never includes
// secret material.
type SecurityReport = security.Report

// SecurityReport describes the configured backend, algorithm, lifetime,
// secret strength, and identifier source.
func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	return security.BuildReport(security.ReportInput{
		Backend:          string(e.config.Backend),
		SigningAlgorithm: e.codec.Algorithm(),
		ExpiresIn:        e.config.ExpiresIn,
		SecretLength:     len(e.config.Secret),
		IDStrategy:       string(e.config.IDStrategy),
		CustomIDs:        e.config.IDGenerator != nil,
		MetricsEnabled:   e.config.Metrics.Enabled,
	})
}
