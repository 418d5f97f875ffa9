package main

import (
	"bytes"
	"strings"
	"testing"

	"periphsim-go/errcode"
	"periphsim-go/services/sim/setups"
)

func newTestConsole(t *testing.T) (*console, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	k, err := newConsole(setups.Bench, &out, false)
	if err != nil {
		t.Fatalf("newConsole: %v", err)
	}
	return k, &out
}

func TestConsoleOutput(t *testing.T) {
	k, out := newTestConsole(t)
	steps := []struct{ line, want string }{
		{"# comment only", ""},
		{"", ""},
		{"scan", "0x50 0x68\n"},
		{"settime clock 2023-05-06T07:08:09Z", ""},
		{"time clock", "2023-05-06T07:08:09Z running\n"},
		{"start 0x68 w", "ack\n"},
		{"write 0x08 0xAB", "ack ack\n"},
		{"stop", ""},
		{"tx 0x68 08 1", "AB\n"},
		{"start 0x68 w", "ack\n"},
		{"write 0x08", "ack\n"},
		{"start 0x68 r", "ack\n"},
		{"read 2", "AB 00\n"},
		{"stop", ""},
		{"start 0x33 r", "nack\n"},
		{"temp ambient 30", "ambient = 30.0 C\n"},
	}
	for _, s := range steps {
		out.Reset()
		if err := k.exec(s.line); err != nil {
			t.Fatalf("%q: %v", s.line, err)
		}
		if out.String() != s.want {
			t.Fatalf("%q printed %q, want %q", s.line, out.String(), s.want)
		}
	}
}

func TestConsolePulseAndTick(t *testing.T) {
	k, _ := newTestConsole(t)
	for _, l := range []string{"pulse 9 2000", "tick 18000", "pulse 10 1500", "tick 0x10"} {
		if err := k.exec(l); err != nil {
			t.Fatalf("%q: %v", l, err)
		}
	}
	if a, _ := k.c.Servos().Angle(9); a != 180 {
		t.Fatalf("pin 9 angle = %v", a)
	}
	if a, _ := k.c.Servos().Angle(10); a != 90 {
		t.Fatalf("pin 10 angle = %v", a)
	}
	if err := k.exec("reset"); err != nil {
		t.Fatal(err)
	}
	if a, _ := k.c.Servos().Angle(9); a != 90 {
		t.Fatalf("pin 9 after reset = %v", a)
	}
}

func TestConsoleErrors(t *testing.T) {
	k, _ := newTestConsole(t)
	cases := []struct {
		line string
		want errcode.Code
	}{
		{"frob", errcode.Unsupported},
		{"read", errcode.InvalidParams},
		{"start 0x68 x", errcode.InvalidParams},
		{"write 0x100", errcode.InvalidParams},
		{"tx 0x22 - 0", errcode.Nack},
		{"tx 0x68 0 1", errcode.InvalidParams},
		{"temp clock 30", errcode.Unsupported},
		{"temp nowhere 30", errcode.UnknownDevice},
		{"time ambient", errcode.Unsupported},
		{"settime clock yesterday", errcode.InvalidParams},
	}
	for _, tc := range cases {
		if got := errcode.Of(k.exec(tc.line)); got != tc.want {
			t.Errorf("%q: code %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestRunCountsFailures(t *testing.T) {
	k, _ := newTestConsole(t)
	script := strings.Join([]string{"scan", "bogus", "stop", "bogus"}, "\n")
	if n := run(k, strings.NewReader(script), true); n != 2 {
		t.Fatalf("keep going: %d failures, want 2", n)
	}
	if n := run(k, strings.NewReader(script), false); n != 1 {
		t.Fatalf("stop early: %d failures, want 1", n)
	}
}

func TestWatchPrintsTelemetry(t *testing.T) {
	var out bytes.Buffer
	k, err := newConsole(setups.Bench, &out, true)
	if err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := k.exec("pulse 9 1000"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "sim/servo/pan/value") {
		t.Fatalf("telemetry not printed: %q", out.String())
	}
}
