package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"tinygo.org/x/drivers/ds1307"

	"periphsim-go/bus"
	"periphsim-go/errcode"
	"periphsim-go/services/sim"
	ntcdev "periphsim-go/services/sim/devices/ntc"
	rtcdev "periphsim-go/services/sim/devices/rtc"
	"periphsim-go/types"
	"periphsim-go/x/conv"
)

// console drives a circuit from text commands, standing in for a CPU core.
type console struct {
	out    io.Writer
	cycles uint64
	c      *sim.Circuit
	tel    *bus.Subscription
	watch  bool
}

func newConsole(cfg types.CircuitConfig, out io.Writer, watch bool) (*console, error) {
	k := &console{out: out, watch: watch}
	telemetry := bus.NewBus(64)
	c, err := sim.New(cfg, sim.Env{
		Cycles: func() uint64 { return k.cycles },
		ADC: func(ch int, v float64) {
			if k.watch {
				fmt.Fprintf(k.out, "adc %d = %.3f V\n", ch, v)
			}
		},
	}, telemetry)
	if err != nil {
		return nil, err
	}
	k.c = c
	k.tel = telemetry.NewConnection("console").Subscribe(bus.T("sim", bus.MultiLevel))
	k.drain()
	return k, nil
}

type command struct {
	args int // minimum argument count
	use  string
	run  func(k *console, args []string) error
}

var commands = map[string]command{
	"tick":    {1, "tick <us>", (*console).tick},
	"start":   {2, "start <addr> r|w", (*console).start},
	"write":   {1, "write <byte>...", (*console).write},
	"read":    {1, "read <n>", (*console).read},
	"stop":    {0, "stop", func(k *console, _ []string) error { k.c.TWI().Stop(); return nil }},
	"tx":      {3, "tx <addr> <hex|-> <n>", (*console).tx},
	"pin":     {2, "pin <n> 0|1", (*console).pin},
	"pulse":   {2, "pulse <pin> <us>", (*console).pulse},
	"temp":    {2, "temp <id> <celsius>", (*console).temp},
	"scan":    {0, "scan", (*console).scan},
	"batch":   {0, "batch", func(k *console, _ []string) error { k.c.BatchCompleted(); return nil }},
	"reset":   {0, "reset", func(k *console, _ []string) error { k.c.Reset(); return nil }},
	"time":    {1, "time <id>", (*console).time},
	"settime": {2, "settime <id> <RFC3339>", (*console).setTime},
}

// help lists commands, so it cannot sit in the table's initializer.
func init() {
	commands["help"] = command{0, "help", (*console).help}
}

// exec runs one script line. Blank lines and # comments are ignored.
func (k *console) exec(line string) error {
	words, err := shlex.Split(line)
	if err != nil {
		return &errcode.E{C: errcode.InvalidParams, Op: "parse", Msg: err.Error(), Err: err}
	}
	if len(words) == 0 {
		return nil
	}
	cmd, ok := commands[words[0]]
	if !ok {
		return &errcode.E{C: errcode.Unsupported, Op: words[0], Msg: "unknown command"}
	}
	if len(words)-1 < cmd.args {
		return &errcode.E{C: errcode.InvalidParams, Op: words[0], Msg: "usage: " + cmd.use}
	}
	err = cmd.run(k, words[1:])
	k.drain()
	return err
}

// ---- commands ----

func (k *console) tick(a []string) error {
	us, err := parseInt(a[0], "us")
	if err != nil {
		return err
	}
	k.advance(us)
	return nil
}

func (k *console) start(a []string) error {
	addr, err := parseByte(a[0])
	if err != nil {
		return err
	}
	var write bool
	switch a[1] {
	case "w":
		write = true
	case "r":
	default:
		return &errcode.E{C: errcode.InvalidParams, Op: "start", Msg: "direction must be r or w"}
	}
	fmt.Fprintln(k.out, ackWord(k.c.TWI().Start(addr, write)))
	return nil
}

func (k *console) write(a []string) error {
	acks := make([]string, 0, len(a))
	for _, s := range a {
		v, err := parseByte(s)
		if err != nil {
			return err
		}
		acks = append(acks, ackWord(k.c.TWI().Write(v)))
	}
	fmt.Fprintln(k.out, strings.Join(acks, " "))
	return nil
}

// read ACKs every byte but the last, as a master ending a read does.
func (k *console) read(a []string) error {
	n, err := parseInt(a[0], "n")
	if err != nil {
		return err
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = k.c.TWI().Read(i < len(buf)-1)
	}
	fmt.Fprintln(k.out, conv.HexBytes(buf))
	return nil
}

func (k *console) tx(a []string) error {
	addr, err := parseByte(a[0])
	if err != nil {
		return err
	}
	var w []byte
	if a[1] != "-" {
		if w, err = parseHex(a[1]); err != nil {
			return err
		}
	}
	n, err := parseInt(a[2], "n")
	if err != nil {
		return err
	}
	r := make([]byte, n)
	if err := k.c.TWI().Tx(uint16(addr), w, r); err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintln(k.out, conv.HexBytes(r))
	}
	return nil
}

func (k *console) pin(a []string) error {
	p, err := parseInt(a[0], "pin")
	if err != nil {
		return err
	}
	k.c.PinChanged(int(p), a[1] == "1")
	return nil
}

func (k *console) pulse(a []string) error {
	p, err := parseInt(a[0], "pin")
	if err != nil {
		return err
	}
	us, err := parseInt(a[1], "us")
	if err != nil {
		return err
	}
	k.c.PinChanged(int(p), true)
	k.advance(us)
	k.c.PinChanged(int(p), false)
	return nil
}

func (k *console) temp(a []string) error {
	c, err := strconv.ParseFloat(a[1], 64)
	if err != nil {
		return &errcode.E{C: errcode.InvalidParams, Op: "temp", Msg: a[1], Err: err}
	}
	d, err := k.c.Device(a[0])
	if err != nil {
		return err
	}
	t, ok := d.(*ntcdev.Device)
	if !ok {
		return errors.Wrapf(errcode.Unsupported, "%s is not a thermistor", a[0])
	}
	fmt.Fprintf(k.out, "%s = %.1f C\n", a[0], t.SetTemperature(c))
	return nil
}

func (k *console) scan(_ []string) error {
	addrs := k.c.TWI().Scan()
	words := make([]string, len(addrs))
	var tmp [2]byte
	for i, a := range addrs {
		words[i] = "0x" + string(conv.U8Hex(tmp[:], a))
	}
	fmt.Fprintln(k.out, strings.Join(words, " "))
	return nil
}

// time reads the clock the way firmware would: through the tinygo driver
// over the two-wire bus.
func (k *console) time(a []string) error {
	drv, err := k.clockDriver(a[0])
	if err != nil {
		return err
	}
	t, err := drv.ReadTime()
	if err != nil {
		return err
	}
	state := "running"
	if !drv.IsOscillatorRunning() {
		state = "halted"
	}
	fmt.Fprintf(k.out, "%s %s\n", t.Format(time.RFC3339), state)
	return nil
}

func (k *console) setTime(a []string) error {
	t, err := time.Parse(time.RFC3339, a[1])
	if err != nil {
		return &errcode.E{C: errcode.InvalidParams, Op: "settime", Msg: a[1], Err: err}
	}
	drv, err := k.clockDriver(a[0])
	if err != nil {
		return err
	}
	return drv.SetTime(t.UTC())
}

func (k *console) clockDriver(id string) (ds1307.Device, error) {
	d, err := k.c.Device(id)
	if err != nil {
		return ds1307.Device{}, err
	}
	r, ok := d.(*rtcdev.Device)
	if !ok {
		return ds1307.Device{}, errors.Wrapf(errcode.Unsupported, "%s is not a clock", id)
	}
	drv := ds1307.New(k.c.TWI())
	drv.Address = r.Chip().Address()
	return drv, nil
}

func (k *console) help(_ []string) error {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(k.out, " ", commands[n].use)
	}
	return nil
}

// ---- helpers ----

func (k *console) advance(us int64) {
	k.cycles += k.c.Clock().CyclesFor(us)
}

// drain prints pending telemetry when watching and discards it otherwise.
func (k *console) drain() {
	for {
		select {
		case m := <-k.tel.Channel():
			if k.watch {
				fmt.Fprintf(k.out, "%s %+v\n", topicString(m.Topic), m.Payload)
			}
		default:
			return
		}
	}
}

func topicString(t bus.Topic) string {
	parts := make([]string, len(t))
	for i, tok := range t {
		parts[i] = fmt.Sprint(tok)
	}
	return strings.Join(parts, "/")
}

func ackWord(ok bool) string {
	if ok {
		return "ack"
	}
	return "nack"
}

func parseInt(s, what string) (int64, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil || v < 0 || v > math.MaxInt32 {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: what, Msg: s, Err: err}
	}
	return v, nil
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "byte", Msg: s, Err: err}
	}
	return byte(v), nil
}

// parseHex accepts an even-length hex string such as "00ff10".
func parseHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "hex", Msg: s}
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		v, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "hex", Msg: s, Err: err}
		}
		out[i] = byte(v)
	}
	return out, nil
}
