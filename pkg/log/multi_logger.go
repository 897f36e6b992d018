package log

// MultiLogger fans one event stream out to several loggers, typically a
// SlogAdapter for the console next to a FileLogger capturing the session.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger wraps the given loggers. Events are delivered in argument
// order.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log forwards the event to every wrapped logger.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
