package logs

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogJSON(t *testing.T) {
	var buf bytes.Buffer
	out := Logger().Out
	Logger().SetOutput(&buf)
	defer Logger().SetOutput(out)

	LogJSON("WARN", "Already followed", map[string]interface{}{
		"route":  "/api/v1/profiles/:username/follow",
		"userID": "user-1",
	})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warning", line["severity"])
	assert.Equal(t, "Already followed", line["message"])
	assert.Equal(t, "user-1", line["userID"])
}

func TestSetLevel(t *testing.T) {
	level := Logger().GetLevel()
	defer Logger().SetLevel(level)

	SetLevel("error")
	assert.Equal(t, logrus.ErrorLevel, Logger().GetLevel())

	SetLevel("nonsense")
	assert.Equal(t, logrus.ErrorLevel, Logger().GetLevel())
}
