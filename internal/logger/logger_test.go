package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "warn", "text")

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestReconcile_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "json")

	Reconcile(context.Background(), "complete_rental", errors.New("timeout"), "rental_id", int64(9), "car_id", int64(4))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, true, entry["reconcile"])
	assert.Equal(t, "complete_rental", entry["operation"])
	assert.Equal(t, float64(9), entry["rental_id"])
	assert.Equal(t, "timeout", entry["error"])
}

func TestRequestIDIsAttachedFromContext(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "json")

	ctx := WithRequestID(context.Background(), "req-42")
	InfoContext(ctx, "handled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "req-42", RequestID(ctx))

	buf.Reset()
	Info("no context")
	assert.NotContains(t, buf.String(), "request_id")
}
