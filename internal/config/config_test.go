package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	proto "github.com/ystepanoff/bpskbeacon/protocol"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beacon.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(empty) = %+v, want defaults", cfg)
	}
	if cfg.Tick != 100*time.Microsecond {
		t.Errorf("Tick = %v, want 100µs", cfg.Tick)
	}
}

func TestLoadSPI(t *testing.T) {
	path := writeConfig(t, `
phy = "SPI"
spi_port = "/dev/spidev0.0"
spi_hz = 8000000
spi_mode = 1
led_pin = "GPIO17"
tick = "50us"
uid = "0102030405060708090a0b0c"
log_level = "debug"
metrics_addr = ":9108"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Phy != PhySPI || cfg.SPIPort != "/dev/spidev0.0" || cfg.SPIHz != 8000000 || cfg.SPIMode != 1 {
		t.Errorf("spi settings = %+v", cfg)
	}
	if cfg.LEDPin != "GPIO17" || cfg.Tick != 50*time.Microsecond || cfg.MetricsAddr != ":9108" {
		t.Errorf("settings = %+v", cfg)
	}
	if cfg.UID != "0102030405060708090a0b0c" || cfg.LogLevel != "debug" {
		t.Errorf("identity/log settings = %+v", cfg)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown phy", body: `phy = "i2c"`, want: "unknown phy"},
		{name: "serial without port", body: `phy = "serial"`, want: "serial_port is required"},
		{name: "bad baud", body: "phy = \"serial\"\nserial_port = \"/dev/ttyUSB0\"\nserial_baud = 0", want: "serial_baud"},
		{name: "bad spi mode", body: "phy = \"spi\"\nspi_mode = 7", want: "spi_mode"},
		{name: "bad tick", body: `tick = "soon"`, want: "parse tick"},
		{name: "negative tick", body: `tick = "-1ms"`, want: "tick must be positive"},
		{name: "short uid", body: `uid = "0102"`, want: "uid invalid"},
		{name: "no identity source", body: `machine_id_path = ""`, want: "uid or machine_id_path"},
		{name: "unknown key", body: `bogus = 1`, want: "unknown key"},
		{name: "syntax", body: `phy = `, want: "load beacon config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestValidateWrapsUIDError(t *testing.T) {
	cfg := Default()
	cfg.UID = "not hex at all!!"
	if err := Validate(cfg); !errors.Is(err, proto.ErrUIDHex) {
		t.Errorf("Validate() error = %v, want ErrUIDHex", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() error = nil for missing file")
	}
}
