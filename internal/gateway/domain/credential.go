package domain

import "log/slog"

// Credential carries a username/password pair for the duration of a single
// authentication attempt. It is never persisted.
type Credential struct {
	Username string
	Password string
}

// LogValue implements slog.LogValuer so the password can never leak into
// structured logs, even when a Credential is logged wholesale.
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", "[REDACTED]"),
	)
}
