package tracing

// Span attribute keys shared across the application.
const (
	// Command attributes
	AttrCommandKind = "command.kind"
	AttrCommandID   = "command.id"

	// Entity attributes
	AttrEntityID   = "entity.id"
	AttrEntityType = "entity.type"

	// Report attributes
	AttrReportFrom = "report.from"
	AttrReportTo   = "report.to"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixUndo   = "undo."
	SpanPrefixRepo   = "repo."
	SpanPrefixReport = "report."
)
