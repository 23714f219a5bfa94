package log

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldRequestID      = "request_id"
	FieldEndpoint       = "endpoint"
	FieldMethod         = "method"
	FieldStatusCode     = "status_code"
	FieldDuration       = "duration_ms"
	FieldError          = "error"
	FieldOperation      = "operation"
	FieldStartDate      = "start_date"
	FieldEndDate        = "end_date"
	FieldClassification = "classification"
	FieldReceiver       = "receiver"
	FieldAmount         = "amount"
	FieldCount          = "count"
	FieldSequence       = "sequence"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentAPI      = "api"
	ComponentSession  = "session"
	ComponentPoll     = "poll"
	ComponentTaxonomy = "taxonomy"
	ComponentExport   = "export"
	ComponentCLI      = "cli"
)

// Operations defines standard operation names
const (
	OpFetch      = "fetch"
	OpAdd        = "add"
	OpReclassify = "reclassify"
	OpNormalize  = "normalize"
	OpTokenPoll  = "token_poll"
	OpExport     = "export"
)
