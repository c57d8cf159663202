package rebel

// Logger receives diagnostic lines. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
