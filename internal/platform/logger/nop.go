package logger

// Nop devuelve un logger que descarta todo. Útil en tests.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) With(fields map[string]any) Logger { return nopLogger{} }

func (nopLogger) Debug(msg string, fields map[string]any) {}
func (nopLogger) Info(msg string, fields map[string]any)  {}
func (nopLogger) Warn(msg string, fields map[string]any)  {}
func (nopLogger) Error(msg string, fields map[string]any) {}
