package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldPayer       = "payer"
	FieldAmountCents = "amount_cents"
	FieldEntryKind   = "entry_kind"
	FieldEntryCount  = "entry_count"
	FieldCycleSize   = "cycle_entries"
	FieldBackend     = "backend"
	FieldQueue       = "queue"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentBackend = "backend"
)

// Operations defines standard operation names.
const (
	OpAppend   = "append"
	OpRead     = "read"
	OpBalance  = "balance"
	OpClose    = "close_cycle"
	OpSync     = "sync"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
