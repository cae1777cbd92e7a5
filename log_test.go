package konsole

import (
	"bytes"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	SetLogger(nil)
	if Logger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("default logger should discard everything")
	}
}

func TestGridLayoutIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	RenderLines(Table("a", "b").Align(AlignStretch).Row("1", "2"), 30)

	entries := logs.FilterMessage("grid layout").All()
	if len(entries) == 0 {
		t.Fatal("no grid layout entry")
	}
	fields := entries[len(entries)-1].ContextMap()
	if fields["available"] != int64(30) || fields["rows"] != int64(1) {
		t.Errorf("fields = %v", fields)
	}
}

func TestRejectedPromptIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	c := NewConsole(&bytes.Buffer{}, WithColor(ColorNever))
	if _, err := IntPrompt("n").Ask(t.Context(), c, bytes.NewBufferString("x\n1\n")); err != nil {
		t.Fatal(err)
	}
	if n := logs.FilterMessage("prompt rejected input").Len(); n != 1 {
		t.Errorf("rejections logged = %d, want 1", n)
	}
}
