package ddraw

import "github.com/gogpu/ddraw/hresult"

// Reporter receives a diagnostic for every failed backend call. op names the
// Manager or Surface operation. Reporters must not block; the error is also
// returned to the caller.
type Reporter func(op string, err error)

// LogReporter is the default Reporter. It logs the decoded result at Error
// level through [Logger].
func LogReporter(op string, err error) {
	attrs := []any{"op", op, "err", hresult.Label(err)}
	if c, ok := hresult.From(err); ok {
		attrs = append(attrs, "class", c.Class())
	}
	Logger().Error("ddraw: backend call failed", attrs...)
}
