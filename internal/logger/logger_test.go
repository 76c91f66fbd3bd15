package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	log, err := New("debug", "json")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %v", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter, got %T", log.Formatter)
	}

	if _, err := New("chatty", "text"); err == nil {
		t.Errorf("Expected error for unknown level")
	}
}
