package httpapi

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("shorthand query override failed: %v", got)
	}
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
}

func TestLogCommand_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer SetLogger(zerolog.Nop())

	r := httptest.NewRequest("POST", "/events?log=error", nil)
	logCommand(r, "play", 201, nil, map[string]any{"trigger": "beep"})
	if buf.Len() != 0 {
		t.Fatalf("success must not be logged at error level: %q", buf.String())
	}
	logCommand(r, "play", 404, errors.New("trigger not found: x"), nil)
	if !strings.Contains(buf.String(), `"op":"play"`) || !strings.Contains(buf.String(), `"status":404`) {
		t.Fatalf("missing error line: %q", buf.String())
	}

	buf.Reset()
	r = httptest.NewRequest("POST", "/events?log=info", nil)
	logCommand(r, "switch", 200, nil, map[string]any{"to": "null"})
	if !strings.Contains(buf.String(), `"to":"null"`) {
		t.Fatalf("missing info line: %q", buf.String())
	}

	buf.Reset()
	r = httptest.NewRequest("POST", "/events?log=off", nil)
	logCommand(r, "stop", 404, errors.New("nope"), nil)
	if buf.Len() != 0 {
		t.Fatalf("nothing must be logged when off: %q", buf.String())
	}
}
