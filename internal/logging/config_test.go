package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw    string
		want   zerolog.Level
		wantOK bool
	}{
		{"", zerolog.InfoLevel, false},
		{"TRACE", zerolog.TraceLevel, true},
		{" debug ", zerolog.DebugLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := parseLevel(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseLevel(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseBool(t *testing.T) {
	if v, ok := parseBool("true"); !v || !ok {
		t.Errorf("parseBool(true) = (%v, %v)", v, ok)
	}
	if _, ok := parseBool(""); ok {
		t.Error("parseBool(\"\") reported ok")
	}
	if _, ok := parseBool("maybe"); ok {
		t.Error("parseBool(maybe) reported ok")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "1")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel || cfg.Timestamp || !cfg.NoColor {
		t.Errorf("applyEnvOverrides() = %+v", cfg)
	}
}

func TestNewWritesConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, NoColor: true, Out: &buf})

	logger.Debug().Msg("hidden")
	logger.Info().Uint32("identity", 7607535).Msg("beacon up")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "beacon up") || !strings.Contains(out, "identity=7607535") {
		t.Errorf("output = %q", out)
	}
}

func TestSetLevelLowersRuntimeLevel(t *testing.T) {
	prevLogger, prevGlobal := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevGlobal)
	})

	ConfigureRuntime()
	log.Logger = log.Logger.Level(zerolog.InfoLevel)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if !SetLevel("debug") {
		t.Fatal("SetLevel(debug) = false")
	}
	if SetLevel("loud") {
		t.Error("SetLevel(loud) = true")
	}

	var buf bytes.Buffer
	l := log.Logger.Output(&buf)
	l.Debug().Msg("cycle")
	if !strings.Contains(buf.String(), "cycle") {
		t.Errorf("debug line dropped after SetLevel(debug): global=%v logger=%v", zerolog.GlobalLevel(), log.Logger.GetLevel())
	}
}
