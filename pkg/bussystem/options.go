package bussystem

// Options configures how NewCSVBusSystem loads its documents.
type Options struct {
	// Logger receives rejected rows at Info and loaded entities at Debug.
	// Default: DefaultSLogger()
	Logger SLogger

	// StopsName names the stops document in errors and log records.
	// Default: "stops"
	StopsName string

	// RoutesName names the routes document in errors and log records.
	// Default: "routes"
	RoutesName string
}

// DefaultOptions returns the default loading configuration.
func DefaultOptions() Options {
	return Options{
		Logger:     DefaultSLogger(),
		StopsName:  "stops",
		RoutesName: "routes",
	}
}

// Option modifies Options.
type Option func(*Options)

// WithLogger sets the logger. A nil logger restores the default.
func WithLogger(logger SLogger) Option {
	return func(o *Options) {
		if logger == nil {
			logger = DefaultSLogger()
		}
		o.Logger = logger
	}
}

// WithNames sets the names reported for the stops and routes documents,
// typically their file paths.
func WithNames(stops, routes string) Option {
	return func(o *Options) {
		o.StopsName = stops
		o.RoutesName = routes
	}
}
