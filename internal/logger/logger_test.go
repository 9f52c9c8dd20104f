package logger

import (
	"bytes"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New(Config{Level: "debug", Output: &bytes.Buffer{}}).GetLevel())
	assert.Equal(t, logrus.WarnLevel, New(Config{Level: "warning", Output: &bytes.Buffer{}}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, New(Config{Level: "chatty", Output: &bytes.Buffer{}}).GetLevel())
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Output: &buf})

	log.WithField("route", "/motivate").Info("request served")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request served", entry["msg"])
	assert.Equal(t, "/motivate", entry["route"])
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "text", Output: &buf})

	log.Info("hello")
	assert.Contains(t, buf.String(), `msg=hello`)
}

func TestLogstashHookShipsEntries(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	log := New(Config{LogstashURL: pc.LocalAddr().String(), Output: &bytes.Buffer{}})
	log.Info("shipped")

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 4096)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)

	payload := string(buf[:n])
	assert.True(t, strings.Contains(payload, "shipped"), payload)
	assert.Contains(t, payload, serviceName)
}
