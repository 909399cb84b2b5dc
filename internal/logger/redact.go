package logger

import (
	"regexp"

	"go.uber.org/zap/zapcore"
)

// Redaction covers the secret shapes this service handles: API keys passed as
// query parameters, bearer tokens, X-API-Key headers, and generic credential
// key/value pairs that can surface in upstream error text.
var redactionPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`([?&]key=)[^&\s]+`), "${1}[REDACTED_KEY]"},
	{regexp.MustCompile(`(?i)(authorization\s*:\s*bearer\s+)\S+`), "${1}[REDACTED_TOKEN]"},
	{regexp.MustCompile(`(?i)(x-api-key\s*[:=]\s*)\S+`), "${1}[REDACTED_API_KEY]"},
	{regexp.MustCompile(`(?i)("?(?:api_key|apikey|token|secret|password)"?\s*[:=]\s*"?)[^"\s]+`), "${1}[REDACTED]"},
}

// Redact replaces sensitive values in s with redaction markers.
func Redact(s string) string {
	for _, p := range redactionPatterns {
		s = p.re.ReplaceAllString(s, p.repl)
	}
	return s
}

// redactingCore wraps a zapcore.Core so every message and string-valued field
// is scrubbed before emission.
type redactingCore struct {
	zapcore.Core
}

func newRedactingCore(core zapcore.Core) zapcore.Core {
	return &redactingCore{Core: core}
}

func (c *redactingCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactingCore{Core: c.Core.With(redactFields(fields))}
}

func (c *redactingCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *redactingCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ent.Message = Redact(ent.Message)
	return c.Core.Write(ent, redactFields(fields))
}

func redactFields(fields []zapcore.Field) []zapcore.Field {
	out := make([]zapcore.Field, len(fields))
	copy(out, fields)
	for i := range out {
		switch out[i].Type {
		case zapcore.StringType:
			out[i].String = Redact(out[i].String)
		case zapcore.ErrorType:
			// Upstream error strings may embed the request URL, key included.
			if err, ok := out[i].Interface.(error); ok {
				out[i] = zapcore.Field{Key: out[i].Key, Type: zapcore.StringType, String: Redact(err.Error())}
			}
		}
	}
	return out
}
