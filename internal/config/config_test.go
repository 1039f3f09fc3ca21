package config

import (
	"log/slog"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ARES_TYPES_FILE",
		"ARES_POLL_INTERVAL",
		"ARES_WAIT_TIMEOUT",
		"ARES_LOG_FILE",
		"ARES_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.TypesFile != "import_file_types.yaml" {
		t.Errorf("TypesFile = %q, want %q", cfg.TypesFile, "import_file_types.yaml")
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, time.Second)
	}
	if cfg.WaitTimeout != 10*time.Minute {
		t.Errorf("WaitTimeout = %v, want %v", cfg.WaitTimeout, 10*time.Minute)
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", cfg.LogFile)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARES_TYPES_FILE", "/etc/ares/types.json")
	t.Setenv("ARES_POLL_INTERVAL", "250ms")
	t.Setenv("ARES_WAIT_TIMEOUT", "30s")
	t.Setenv("ARES_LOG_FILE", "/tmp/arestools.log")
	t.Setenv("ARES_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.TypesFile != "/etc/ares/types.json" {
		t.Errorf("TypesFile = %q, want %q", cfg.TypesFile, "/etc/ares/types.json")
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, 250*time.Millisecond)
	}
	if cfg.WaitTimeout != 30*time.Second {
		t.Errorf("WaitTimeout = %v, want %v", cfg.WaitTimeout, 30*time.Second)
	}
	if cfg.LogFile != "/tmp/arestools.log" {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, "/tmp/arestools.log")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
}

func TestLoad_ZeroTimeoutDisablesBound(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARES_WAIT_TIMEOUT", "0")

	if cfg := Load(); cfg.WaitTimeout != 0 {
		t.Errorf("WaitTimeout = %v, want 0", cfg.WaitTimeout)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARES_POLL_INTERVAL", "soon")

	if cfg := Load(); cfg.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want default %v", cfg.PollInterval, time.Second)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"garbage", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
