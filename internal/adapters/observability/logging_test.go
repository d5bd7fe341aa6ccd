package observability

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_JSONInProd(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("prod", &buf)
	l.Debug().Msg("hidden")
	l.Info().Str("booking", "B123").Msg("checkin")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug should be filtered in prod: %s", out)
	}
	if !strings.Contains(out, `"booking":"B123"`) || !strings.Contains(out, `"service":"booking-web"`) {
		t.Fatalf("unexpected log line: %s", out)
	}
}

func TestNewLogger_ConsoleInDev(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("dev", &buf)
	l.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug should be visible in dev: %s", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("dev output should not be JSON: %s", buf.String())
	}
}
