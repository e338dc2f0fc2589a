package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldUserName  = "user_name"
	FieldEmail     = "email"
	FieldRange     = "range"
	FieldMonth     = "month"
	FieldYear      = "year"
	FieldEventID   = "event_id"
	FieldEventKind = "event_kind"
	FieldStoreKey  = "store_key"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentAuth      = "auth"
	ComponentInsights  = "insights"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentCache     = "cache"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
	ComponentBackend   = "backend"
	ComponentTemplate  = "template"
)

// Operations defines standard operation names
const (
	OpSignIn     = "sign_in"
	OpSignOut    = "sign_out"
	OpRead       = "read"
	OpWrite      = "write"
	OpDelete     = "delete"
	OpValidate   = "validate"
	OpRender     = "render"
	OpPublish    = "publish"
	OpConsume    = "consume"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
	OpDeactivate = "deactivate"
)
