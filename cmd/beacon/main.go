//go:build !tinygo && !baremetal

// Command beacon runs the BPSK beacon on a hosted system.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/ystepanoff/bpskbeacon/driver/host"
	"github.com/ystepanoff/bpskbeacon/internal/config"
	"github.com/ystepanoff/bpskbeacon/internal/logging"
	"github.com/ystepanoff/bpskbeacon/internal/observability"
	proto "github.com/ystepanoff/bpskbeacon/protocol"
	"github.com/ystepanoff/bpskbeacon/transport"
)

type args struct {
	ConfigPath  string
	Print       bool
	MetricsAddr string
}

func parseArgs(fs *flag.FlagSet, argv []string) (args, error) {
	var a args
	fs.StringVar(&a.ConfigPath, "config", "", "Path to a TOML config file")
	fs.BoolVar(&a.Print, "print", false, "Print the identity and both frames, then exit")
	fs.StringVar(&a.MetricsAddr, "metrics", "", "Serve Prometheus metrics on this address (overrides metrics_addr)")
	if err := fs.Parse(argv); err != nil {
		return args{}, err
	}
	return a, nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, config.Validate(cfg)
	}
	return config.Load(path)
}

func resolveUID(cfg config.Config) (proto.UID, error) {
	if cfg.UID != "" {
		return proto.ParseUID(cfg.UID)
	}
	return host.ReadMachineID(cfg.MachineIDPath)
}

func openPhy(cfg config.Config) (*host.Line, error) {
	switch cfg.Phy {
	case config.PhySPI:
		return host.OpenSPI(cfg.SPIPort, physic.Frequency(cfg.SPIHz)*physic.Hertz, spi.Mode(cfg.SPIMode))
	case config.PhySerial:
		return host.OpenSerial(cfg.SerialPort, cfg.SerialBaud)
	default:
		return host.NewDiscard(), nil
	}
}

// printFrames writes the identity and both framed messages, as they would be
// shifted out, without touching any hardware.
func printFrames(w io.Writer, uid proto.UID) {
	d := host.New(host.NewClock(host.DefaultTick), host.NewDiscard(), nil, uid)
	s := transport.NewSchedulerWithDriver(d)
	s.Initialise()

	id := s.Identity()
	fmt.Fprintf(w, "uid       %s\n", uid)
	fmt.Fprintf(w, "identity  %07d\n", id)
	fmt.Fprintf(w, "codeword  %08X\n", proto.AddChecksum(id))
	identity := s.Message(proto.KindIdentity)
	timesync := s.Message(proto.KindTimeSync)
	fmt.Fprintf(w, "identity  %s\n", identity.String())
	fmt.Fprintf(w, "timesync  %s\n", timesync.String())
}

func serveMetrics(addr string) {
	observability.RegisterMetrics()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")
}

func run(argv []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("beacon", flag.ContinueOnError)
	a, err := parseArgs(fs, argv)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(a.ConfigPath)
	if err != nil {
		return err
	}
	if a.MetricsAddr != "" {
		cfg.MetricsAddr = a.MetricsAddr
	}

	uid, err := resolveUID(cfg)
	if err != nil {
		return fmt.Errorf("resolve uid: %w", err)
	}
	if a.Print {
		printFrames(stdout, uid)
		return nil
	}

	logging.ConfigureRuntime()
	if cfg.LogLevel != "" && !logging.SetLevel(cfg.LogLevel) {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping default")
	}
	logger := observability.InitLogger("beacon")

	line, err := openPhy(cfg)
	if err != nil {
		return err
	}
	defer line.Close()
	line.OnError(func(err error) {
		logger.Fatal().Err(err).Str("phy", line.String()).Msg("physical layer failed")
	})

	var led transport.Indicator
	if cfg.LEDPin != "" {
		l, err := host.OpenLED(cfg.LEDPin)
		if err != nil {
			return err
		}
		led = l
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(cfg.MetricsAddr)
	}

	clock := host.NewClock(cfg.Tick)
	d := host.New(clock, line, led, uid)
	s := transport.NewSchedulerWithDriver(d)
	s.SetObserver(observability.NewCycleObserver(logger, cfg.MetricsAddr != ""))
	s.Initialise()

	logger.Info().
		Str("uid", uid.String()).
		Uint32("identity", s.Identity()).
		Str("phy", line.String()).
		Dur("tick", clock.Period()).
		Msg("beacon started")
	s.Run()
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		l.Fatal().Err(err).Msg("beacon")
	}
}
