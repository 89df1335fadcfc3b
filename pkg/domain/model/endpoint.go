package model

// Audit API endpoints
const (
	EndpointReport      = "/relatorio"
	EndpointAudits      = "/auditoria"
	EndpointTransaction = "/transacao"
	EndpointRisk        = "/risco"
	EndpointRisks       = "/riscos"
	EndpointControl     = "/controle"
	EndpointControls    = "/controles"
	EndpointLabel       = "/rotular_transacao"
	EndpointFeedbacks   = "/feedbacks"
)
