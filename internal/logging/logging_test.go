package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("DEBUG", "json").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("chatty", "json").GetLevel())
}

func TestJSONOutputCarriesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "info", "json")

	ctx := WithContext(context.Background(), logger.WithField("request_id", "req-1"))
	FromContext(ctx).Info("invoice created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "invoice created", line["msg"])
}

func TestFromContextWithoutEntry(t *testing.T) {
	entry := FromContext(context.Background())
	require.NotNil(t, entry)
	assert.Equal(t, logrus.StandardLogger(), entry.Logger)
}
