package metrics

// Config defines the configuration for the metrics server.
type Config struct {
	// Address is the listen address of the HTTP server exposing /metrics.
	// Default: ":9090"
	Address string

	// ServiceName is attached to every metric as a constant "service" label.
	ServiceName string

	// EnableDefaultCollectors registers the standard Go, process and build
	// info collectors in addition to the application metrics.
	EnableDefaultCollectors bool
}

// DefaultAddress is the listen address used when Config.Address is empty.
const DefaultAddress = ":9090"
