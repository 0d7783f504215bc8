package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantLevel   zapcore.Level
		wantErr     bool
	}{
		{"development debug", "development", "debug", zapcore.DebugLevel, false},
		{"production info", "production", "info", zapcore.InfoLevel, false},
		{"uppercase level", "production", "WARN", zapcore.WarnLevel, false},
		{"unknown level", "development", "verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.environment, tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !log.Core().Enabled(tt.wantLevel) {
				t.Errorf("level %s not enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && log.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("level below %s enabled", tt.wantLevel)
			}
		})
	}
}
