package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Service: "bookings"})

	log.Info("room assigned", "room_number", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry[SERVICE] != "bookings" {
		t.Errorf("expected service attribute 'bookings', got %v", entry[SERVICE])
	}
	if entry["room_number"] != float64(3) {
		t.Errorf("expected room_number 3, got %v", entry["room_number"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level      string
		logDebug   bool
		logWarning bool
	}{
		{DEBUG, true, true},
		{INFO, false, true},
		{WARN, false, true},
		{ERROR, false, false},
		{"unknown", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Output: &buf, Level: tt.level, Format: TEXT})

			log.Debug("debug line")
			if got := strings.Contains(buf.String(), "debug line"); got != tt.logDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.logDebug)
			}

			log.Warn("warn line")
			if got := strings.Contains(buf.String(), "warn line"); got != tt.logWarning {
				t.Errorf("warn logged = %v, want %v", got, tt.logWarning)
			}
		})
	}
}

func TestWith_CarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Format: TEXT}).With("request_id", "abc")

	log.Info("hello")

	if !strings.Contains(buf.String(), "request_id=abc") {
		t.Errorf("expected request_id attribute, got %q", buf.String())
	}
}
