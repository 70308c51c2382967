package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mlerrors "github.com/YuminosukeSato/mlkit/pkg/errors"
)

func TestTestLogger(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message", ErrorCodeKey, ErrorConvergence)
	testLogger.Error("error message", fmt.Errorf("boom"), EpochKey, 3)

	require.NotEmpty(t, buffer.String())
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		assert.True(t, testLogger.ContainsMessage(msg), msg)
	}

	assert.True(t, testLogger.ContainsField("key1", "value1"))
	assert.True(t, testLogger.ContainsField("number", 42.0))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "boom"))
	assert.True(t, testLogger.ContainsField(EpochKey, 3.0))

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	testLogger.Clear()
	assert.Empty(t, buffer.String())
}

func TestTestLoggerLevelFilter(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelWarn)

	testLogger.Debug("hidden")
	testLogger.Info("hidden too")
	testLogger.Warn("visible")

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0]["message"])

	ctx := context.Background()
	assert.False(t, testLogger.Enabled(ctx, LevelInfo))
	assert.True(t, testLogger.Enabled(ctx, LevelError))
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	modelLogger := testLogger.With(ModelNameKey, "MLP", ComponentKey, "neural")
	modelLogger.Info("Training started", IterationsKey, 100)

	assert.True(t, testLogger.ContainsField(ModelNameKey, "MLP"))
	assert.True(t, testLogger.ContainsField(ComponentKey, "neural"))
	assert.Len(t, testLogger.EntriesWithMessage("Training started"), 1)

	// the parent logger is unaffected
	testLogger.Clear()
	testLogger.Info("plain")
	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	_, has := entries[0][ModelNameKey]
	assert.False(t, has)
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("dropped", EpochKey, 1)
	logger.With(ModelNameKey, "Perceptron").Info("Training completed", EpochKey, 4, ConvergedKey, true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "info", record["level"])
	assert.Equal(t, "Training completed", record["message"])
	assert.Equal(t, "Perceptron", record[ModelNameKey])
	assert.Equal(t, 4.0, record[EpochKey])
	assert.Equal(t, true, record[ConvergedKey])

	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, LevelDebug))
	assert.True(t, logger.Enabled(ctx, LevelWarn))
}

func TestZerologLoggerErrorStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	err := mlerrors.NewDimensionError("numeric.Dot", 3, 2, 0)
	logger.Error("Dot failed", err, OperationKey, "dot")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "error", record["level"])
	assert.Contains(t, record[ErrAttrKey], "dimension mismatch")
	assert.Contains(t, record[StacktraceKey], "log_test.go")
	assert.Equal(t, "dot", record[OperationKey])

	details, ok := record["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "DimensionError", details["type"])
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("nothing")
	assert.False(t, logger.Enabled(context.Background(), LevelError))
}

func TestDefaultLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	testLogger, _ := NewTestLogger(LevelDebug)
	SetLogger(testLogger)
	GetLoggerWithName("dataset").Info("loaded", SamplesKey, 10)

	assert.True(t, testLogger.ContainsField(ComponentKey, "dataset"))
	assert.True(t, testLogger.ContainsField(SamplesKey, 10.0))

	SetLogger(nil)
	_, isNop := GetLogger().(*ZerologLogger)
	assert.True(t, isNop)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				var valErr *mlerrors.ValidationError
				assert.True(t, mlerrors.As(err, &valErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToUpper(tt.in), got.String())
		})
	}
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() {
		SetLogger(nil)
		mlerrors.SetZerologWarnFunc(nil)
	})

	require.NoError(t, SetupLogger("warn", "json"))
	assert.True(t, GetLogger().Enabled(context.Background(), LevelWarn))
	assert.False(t, GetLogger().Enabled(context.Background(), LevelInfo))

	assert.Error(t, SetupLogger("warn", "xml"))
	assert.Error(t, SetupLogger("loud", "json"))
}

func TestProvider(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelInfo)

	provider.GetLoggerWithName("chart").Info("saved")
	provider.SetLevel(LevelError)
	provider.GetLogger().Info("filtered")

	assert.Contains(t, buffer.String(), `"ml.component":"chart"`)
	assert.NotContains(t, buffer.String(), "filtered")
}
