package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct {
	slog.Handler
}

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("graylog unreachable")
}

func textHandler(buf *bytes.Buffer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})
}

func TestMultiHandler_FansOut(t *testing.T) {
	var file, console bytes.Buffer
	logger := slog.New(NewMultiHandler(textHandler(&file, slog.LevelInfo), nil, textHandler(&console, slog.LevelInfo)))

	logger.Info("fanned out", "component", "analysis")

	assert.Contains(t, file.String(), "fanned out")
	assert.Contains(t, console.String(), "component=analysis")
}

func TestMultiHandler_DropsNil(t *testing.T) {
	multi := NewMultiHandler(nil, textHandler(&bytes.Buffer{}, slog.LevelInfo), nil)
	require.Len(t, multi.handlers, 1)
	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_EnabledByAnySink(t *testing.T) {
	var info, debug bytes.Buffer
	multi := NewMultiHandler(textHandler(&info, slog.LevelInfo), textHandler(&debug, slog.LevelDebug))

	assert.True(t, multi.Enabled(context.Background(), slog.LevelDebug))

	slog.New(multi).Debug("only debug sink")
	assert.Empty(t, info.String())
	assert.Contains(t, debug.String(), "only debug sink")
}

func TestMultiHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiHandler(textHandler(&buf, slog.LevelInfo))

	slog.New(multi.WithAttrs([]slog.Attr{slog.String("aircraft", "B787-9")})).Info("attrs")
	slog.New(multi.WithGroup("route")).Info("grouped", "from", "LHR")

	assert.Contains(t, buf.String(), "aircraft=B787-9")
	assert.Contains(t, buf.String(), "route.from=LHR")
	assert.Same(t, multi, multi.WithGroup(""))
}

func TestMultiHandler_JoinsSinkErrors(t *testing.T) {
	var buf bytes.Buffer
	multi := NewMultiHandler(failingHandler{}, textHandler(&buf, slog.LevelInfo), failingHandler{})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "still delivered", 0)
	err := multi.Handle(context.Background(), r)

	assert.Contains(t, buf.String(), "still delivered")
	require.Error(t, err)
	assert.Equal(t, 2, strings.Count(err.Error(), "graylog unreachable"))
}

func TestContextHandler_AddsContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewContextHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(h)

	ctx := ContextWith(context.Background(), slog.Int("challenge_route", 1))
	logger.InfoContext(ctx, "first")

	ctx = ContextWith(ctx, slog.String("difficulty", "hard"))
	logger.InfoContext(ctx, "second")
	logger.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "msg=first challenge_route=1")
	assert.Contains(t, lines[1], "challenge_route=1 difficulty=hard")
	assert.NotContains(t, lines[2], "challenge_route")
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.Same(t, h, h.WithGroup(""))
}

func TestContextHandler_WithAttrsKeepsContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewTextHandler(&buf, nil))).With("aircraft", "A350-900")

	logger.InfoContext(ContextWith(context.Background(), slog.Int("seed", 42)), "round")

	assert.Contains(t, buf.String(), "aircraft=A350-900 seed=42")
}

func TestContextWith_DoesNotMutateParent(t *testing.T) {
	parent := ContextWith(context.Background(), slog.Int("a", 1))
	_ = ContextWith(parent, slog.Int("b", 2))

	assert.Len(t, AttrsFrom(parent), 1)
	assert.Nil(t, AttrsFrom(context.Background()))
}
