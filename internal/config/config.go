package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	proto "github.com/ystepanoff/bpskbeacon/protocol"
)

const (
	PhyStub   = "stub"
	PhySPI    = "spi"
	PhySerial = "serial"
)

// Config describes a hosted beacon.
type Config struct {
	Phy string

	SPIPort string
	SPIHz   int64
	SPIMode int

	SerialPort string
	SerialBaud int

	LEDPin string
	Tick   time.Duration

	UID           string
	MachineIDPath string

	LogLevel    string
	MetricsAddr string
}

type fileConfig struct {
	Phy           string `toml:"phy"`
	SPIPort       string `toml:"spi_port"`
	SPIHz         int64  `toml:"spi_hz"`
	SPIMode       int    `toml:"spi_mode"`
	SerialPort    string `toml:"serial_port"`
	SerialBaud    int    `toml:"serial_baud"`
	LEDPin        string `toml:"led_pin"`
	Tick          string `toml:"tick"`
	UID           string `toml:"uid"`
	MachineIDPath string `toml:"machine_id_path"`
	LogLevel      string `toml:"log_level"`
	MetricsAddr   string `toml:"metrics_addr"`
}

func Default() Config {
	return Config{
		Phy:           PhyStub,
		SPIHz:         10_000_000,
		SerialBaud:    115200,
		Tick:          100 * time.Microsecond,
		MachineIDPath: "/etc/machine-id",
		LogLevel:      "info",
	}
}

// Load reads a TOML file over the defaults. Keys left out keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load beacon config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load beacon config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("phy") {
		cfg.Phy = strings.ToLower(strings.TrimSpace(raw.Phy))
	}
	if meta.IsDefined("spi_port") {
		cfg.SPIPort = strings.TrimSpace(raw.SPIPort)
	}
	if meta.IsDefined("spi_hz") {
		cfg.SPIHz = raw.SPIHz
	}
	if meta.IsDefined("spi_mode") {
		cfg.SPIMode = raw.SPIMode
	}
	if meta.IsDefined("serial_port") {
		cfg.SerialPort = strings.TrimSpace(raw.SerialPort)
	}
	if meta.IsDefined("serial_baud") {
		cfg.SerialBaud = raw.SerialBaud
	}
	if meta.IsDefined("led_pin") {
		cfg.LEDPin = strings.TrimSpace(raw.LEDPin)
	}
	if meta.IsDefined("tick") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Tick))
		if err != nil {
			return Config{}, fmt.Errorf("parse tick: %w", err)
		}
		cfg.Tick = d
	}
	if meta.IsDefined("uid") {
		cfg.UID = strings.TrimSpace(raw.UID)
	}
	if meta.IsDefined("machine_id_path") {
		cfg.MachineIDPath = strings.TrimSpace(raw.MachineIDPath)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	switch cfg.Phy {
	case PhyStub:
	case PhySPI:
		if cfg.SPIHz <= 0 {
			return fmt.Errorf("spi_hz must be positive")
		}
		if cfg.SPIMode < 0 || cfg.SPIMode > 3 {
			return fmt.Errorf("spi_mode must be 0..3")
		}
	case PhySerial:
		if cfg.SerialPort == "" {
			return fmt.Errorf("serial_port is required for phy %q", PhySerial)
		}
		if cfg.SerialBaud <= 0 {
			return fmt.Errorf("serial_baud must be positive")
		}
	default:
		return fmt.Errorf("unknown phy %q", cfg.Phy)
	}
	if cfg.Tick <= 0 {
		return fmt.Errorf("tick must be positive")
	}
	if cfg.UID != "" {
		if _, err := proto.ParseUID(cfg.UID); err != nil {
			return fmt.Errorf("uid invalid: %w", err)
		}
	}
	if cfg.UID == "" && strings.TrimSpace(cfg.MachineIDPath) == "" {
		return fmt.Errorf("either uid or machine_id_path is required")
	}
	return nil
}
