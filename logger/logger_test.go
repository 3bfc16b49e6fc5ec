package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitLevelAndFormat(t *testing.T) {
	defer Init("info", "text")

	Init("debug", "json")
	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", Log.GetLevel())
	}

	var buf bytes.Buffer
	SetOutput(&buf)
	Log.WithField("component", "test").Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if entry["component"] != "test" || entry["msg"] != "hello" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	defer Init("info", "text")

	Init("loud", "TEXT")
	if Log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v, want info", Log.GetLevel())
	}

	var buf bytes.Buffer
	SetOutput(&buf)
	Log.Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug entry written at info level: %q", buf.String())
	}
}
