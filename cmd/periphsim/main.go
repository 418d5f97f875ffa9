// Command periphsim runs a line script against a simulated circuit.
//
//	periphsim -setup bench -watch < demo.txt
//	periphsim -script demo.txt
package main

import (
	"bufio"
	"flag"
	"io"
	"os"
	"strings"

	"periphsim-go/services/sim/setups"
)

func main() {
	var (
		setup  = flag.String("setup", "bench", "circuit: "+strings.Join(setups.Names(), ", "))
		script = flag.String("script", "", "script file (default stdin)")
		watch  = flag.Bool("watch", false, "print telemetry after each command")
		keepOn = flag.Bool("k", false, "keep going after a failed command")
	)
	flag.Parse()

	cfg, ok := setups.Lookup(*setup)
	if !ok {
		println("[main] unknown setup:", *setup)
		os.Exit(2)
	}

	var in io.Reader = os.Stdin
	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			println("[main] open script:", err.Error())
			os.Exit(2)
		}
		defer f.Close()
		in = f
	}

	k, err := newConsole(cfg, os.Stdout, *watch)
	if err != nil {
		println("[main] circuit:", err.Error())
		os.Exit(1)
	}
	println("[main] circuit", *setup, "ready")

	if failed := run(k, in, *keepOn); failed > 0 {
		println("[main]", failed, "command(s) failed")
		os.Exit(1)
	}
}

// run executes every line of in and returns the number of failed commands.
func run(k *console, in io.Reader, keepOn bool) int {
	failed := 0
	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		if err := k.exec(sc.Text()); err != nil {
			println("[main] line", n, ":", err.Error())
			failed++
			if !keepOn {
				break
			}
		}
	}
	if err := sc.Err(); err != nil {
		println("[main] read:", err.Error())
		failed++
	}
	return failed
}
