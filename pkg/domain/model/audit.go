package model

// ComplianceViolation is one finding the audit API attached to a transaction
type ComplianceViolation struct {
	Description       string `json:"descricao"`
	Origin            string `json:"origem"`
	RecommendedAction string `json:"acao_recomendada"`
	LegalBasis        string `json:"base_legal,omitempty"`
}

// AuditResult is a transaction together with its compliance violations.
// The transaction fields are flattened on the wire.
type AuditResult struct {
	Transaction
	Violations []ComplianceViolation `json:"violacoes_compliance"`
}

// AuditList is the /auditoria response envelope
type AuditList struct {
	Audits []AuditResult `json:"auditorias"`
}
