package auditapi

var ExtractDetail = extractDetail
