package observe

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrNoop(t *testing.T) {
	buf := &bytes.Buffer{}
	logObs := NewLogUseCaseObserver(buf)

	assert.Equal(t, logObs, OrNoop(nil, logObs), "first non-nil observer wins")
	assert.Equal(t, NoopUseCaseObserver{}, OrNoop(nil, nil))
	assert.Equal(t, NoopUseCaseObserver{}, OrNoop())
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestLogUseCaseObserver_WritesEventFields(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := NewLogUseCaseObserver(buf)

	obs.ObserveUseCase(UseCaseEvent{
		Name:     "save_forest",
		Duration: 42 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"nodes": 3},
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=save_forest")
	assert.Contains(t, out, "duration_ms=42")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "nodes=3")
}

func TestLogUseCaseObserver_ErrorsLogAtErrorLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := NewLogUseCaseObserver(buf)

	obs.ObserveUseCase(UseCaseEvent{
		Name:    "flow_run",
		Success: false,
		Err:     errors.New("boom"),
	})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=boom")
}
