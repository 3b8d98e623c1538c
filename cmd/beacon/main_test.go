//go:build !tinygo && !baremetal

package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ystepanoff/bpskbeacon/internal/config"
	"github.com/ystepanoff/bpskbeacon/internal/testutil/testlog"
	proto "github.com/ystepanoff/bpskbeacon/protocol"
)

func TestParseArgs(t *testing.T) {
	testlog.Start(t)
	fs := flag.NewFlagSet("beacon", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	a, err := parseArgs(fs, []string{"-config", "b.toml", "-print", "-metrics", ":9108"})
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if a.ConfigPath != "b.toml" || !a.Print || a.MetricsAddr != ":9108" {
		t.Errorf("parseArgs() = %+v", a)
	}
}

func TestResolveUIDFromMachineID(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "machine-id")
	if err := os.WriteFile(path, []byte("000000000000000000000000ffffffff\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.MachineIDPath = path

	uid, err := resolveUID(cfg)
	if err != nil {
		t.Fatalf("resolveUID() error = %v", err)
	}
	if uid != (proto.UID{}) {
		t.Errorf("resolveUID() = %s, want zero", uid)
	}
}

func TestRunPrint(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "beacon.toml")
	body := `uid = "000000000000000000000000"` + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"-config", path, "-print"}, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	msg := proto.NewMessage()
	for _, want := range []string{
		"identity  7607535",
		"uid       000000000000000000000000",
		"timesync  " + msg.String(),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	var id proto.Message
	id.Frame()
	id.SetCodeword(proto.IdentityCodeword(proto.UID{}))
	if !strings.Contains(got, "identity  "+id.String()) {
		t.Errorf("output missing identity frame:\n%s", got)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "beacon.toml")
	if err := os.WriteFile(path, []byte(`phy = "laser"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"-config", path, "-print"}, io.Discard); err == nil {
		t.Error("run() error = nil for unknown phy")
	}
}
