package logger

// Multi replica cada entrada en todos los loggers (stdout + fluent).
func Multi(loggers ...Logger) Logger {
	out := make(multiLogger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

type multiLogger []Logger

func (m multiLogger) With(fields map[string]any) Logger {
	out := make(multiLogger, 0, len(m))
	for _, l := range m {
		out = append(out, l.With(fields))
	}
	return out
}

func (m multiLogger) Debug(msg string, fields map[string]any) {
	for _, l := range m {
		l.Debug(msg, fields)
	}
}

func (m multiLogger) Info(msg string, fields map[string]any) {
	for _, l := range m {
		l.Info(msg, fields)
	}
}

func (m multiLogger) Warn(msg string, fields map[string]any) {
	for _, l := range m {
		l.Warn(msg, fields)
	}
}

func (m multiLogger) Error(msg string, fields map[string]any) {
	for _, l := range m {
		l.Error(msg, fields)
	}
}
