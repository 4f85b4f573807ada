package logging

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

func TestSetup_FileSuppressesStdout(t *testing.T) {
	restore := captureStdout(t)

	var file bytes.Buffer
	m := NewSlogManager()
	m.Setup(Options{File: &file, Level: "info"})
	m.Logger().Info("route analyzed")

	stdout := restore()
	assert.Contains(t, file.String(), "route analyzed")
	assert.Contains(t, file.String(), "Logging initialized")
	assert.Empty(t, stdout)
}

func TestSetup_StdoutWithoutFile(t *testing.T) {
	restore := captureStdout(t)

	m := NewSlogManager()
	m.Setup(Options{Level: "info"})
	m.Logger().Info("challenge started")

	assert.Contains(t, restore(), "challenge started")
}

func TestSetup_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			m := NewSlogManager()
			m.Setup(Options{File: &buf, Level: tt.level})

			m.Logger().Debug("route rejected")
			m.Logger().Info("route analyzed")
			m.Logger().Warn("recorder failed")

			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("route rejected")))
			assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("route analyzed")))
			assert.Contains(t, buf.String(), "recorder failed")
		})
	}
}

func TestSetup_UTCTimestamps(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(Options{File: &buf, Level: "info"})

	assert.Regexp(t, regexp.MustCompile(`time=\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z `), buf.String())
}

func TestSetup_ReplacesLogger(t *testing.T) {
	var first, second bytes.Buffer
	m := NewSlogManager()

	m.Setup(Options{File: &first, Level: "info"})
	m.Logger().Info("first")
	m.Setup(Options{File: &second, Level: "info"})
	m.Logger().Info("second")

	assert.NotContains(t, first.String(), "second")
	assert.Contains(t, second.String(), "second")
}

func TestSetup_GraylogReceivesJSON(t *testing.T) {
	var file, gelf bytes.Buffer
	m := NewSlogManager()
	m.Setup(Options{File: &file, Graylog: &gelf, Level: "info"})

	m.Logger().Info("route analyzed", "aircraft", "A350-900", "score", 85)

	assert.Contains(t, file.String(), "aircraft=A350-900")
	assert.Contains(t, gelf.String(), `"msg":"route analyzed"`)
	assert.Contains(t, gelf.String(), `"score":85`)
}

func TestSetup_ContextAttrsReachEverySink(t *testing.T) {
	var file, gelf bytes.Buffer
	m := NewSlogManager()
	m.Setup(Options{File: &file, Graylog: &gelf, Level: "info"})

	ctx := ContextWith(context.Background(), slog.Int("challenge_route", 4))
	m.Logger().InfoContext(ctx, "route analyzed")

	assert.Contains(t, file.String(), "challenge_route=4")
	assert.Contains(t, gelf.String(), `"challenge_route":4`)
}

func TestSetup_WithOTelProvider(t *testing.T) {
	provider := sdklog.NewLoggerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(Options{File: &buf, Level: "info", Provider: provider, ServiceName: "etops-test"})
	m.Logger().Info("otel bridged")

	assert.Contains(t, buf.String(), "otel bridged")
	assert.NoError(t, m.Flush(context.Background()))
}

func TestLogger_DefaultBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	assert.Equal(t, slog.Default(), m.Logger())
	assert.NoError(t, m.Flush(context.Background()))
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"Warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	} {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

// captureStdout points osStdout at a pipe; the returned func restores it
// and yields what was written.
func captureStdout(t *testing.T) func() string {
	t.Helper()

	r, w, err := osPipe()
	require.NoError(t, err)

	orig := osStdout
	osStdout = w

	return func() string {
		w.Close()
		osStdout = orig
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		r.Close()
		return buf.String()
	}
}
