package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPackage  = "package"
	KeyPath     = "path"
	KeyFile     = "file"
	KeyTitle    = "title"
	KeyCount    = "count"
	KeyOutput   = "output"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Package(p string) slog.Attr    { return slog.String(KeyPackage, p) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func File(f string) slog.Attr       { return slog.String(KeyFile, f) }
func Title(t string) slog.Attr      { return slog.String(KeyTitle, t) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Output(dir string) slog.Attr   { return slog.String(KeyOutput, dir) }
func DurationMS(ms int64) slog.Attr { return slog.Int64(KeyDuration, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
