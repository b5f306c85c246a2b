package logger

// Log Level String Values
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Log Format String Values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Service Configuration Values
const (
	DefaultServiceName = "packforge"
	DefaultVersion     = "dev"
)

// Log Attribute Keys
const (
	AttrKeyService   = "service"
	AttrKeyVersion   = "version"
	AttrKeyRequestID = "request_id"
)
