package logger

// Level represents the minimum severity a log entry needs to be emitted.
type Level int

const (
	// Debug emits everything. Intended for development and troubleshooting.
	Debug Level = iota

	// Info emits informational messages and above. The default.
	Info

	// Warning emits warnings and errors only.
	Warning

	// Error emits errors only.
	Error
)

// Config defines the configuration for the logger.
type Config struct {
	// Level is the minimum severity to emit.
	// Default: Info
	Level Level

	// ServiceName is attached to every log entry as the "service" field.
	// Useful when multiple services log to the same aggregator.
	ServiceName string
}
