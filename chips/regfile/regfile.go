// Package regfile implements the pointer-addressed register file shared by
// register-based bus chips: the first byte after a connect loads the pointer,
// later bytes are stored at it, and every transferred byte advances it.
package regfile

// DefaultSize is the DS1307-sized register file.
const DefaultSize = 64

// Config describes a register file chip. All fields are optional.
type Config struct {
	// Address is the 7-bit bus address answered by TryConnect.
	Address uint8
	// Size defaults to DefaultSize.
	Size int
	// NoWrap makes data writes at the end of the file NACK instead of
	// wrapping to register 0. Reads always wrap.
	NoWrap bool
}

// File is a register array with transaction framing state.
type File struct {
	addr   uint8
	regs   []byte
	ptr    int
	loaded bool // pointer byte already consumed this transaction
	noWrap bool
	full   bool // NoWrap write pointer ran off the end
}

// New allocates a zeroed register file.
func New(cfg Config) *File {
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	return &File{
		addr:   cfg.Address,
		regs:   make([]byte, cfg.Size),
		noWrap: cfg.NoWrap,
	}
}

func (f *File) Address() uint8 { return f.addr }
func (f *File) Size() int      { return len(f.regs) }
func (f *File) Pointer() int   { return f.ptr }

// PointerLoaded reports whether the current transaction consumed its
// pointer byte.
func (f *File) PointerLoaded() bool { return f.loaded }

// Peek reads a register without touching the pointer.
func (f *File) Peek(reg int) byte { return f.regs[f.wrap(reg)] }

// Poke writes a register without touching the pointer or framing.
func (f *File) Poke(reg int, v byte) { f.regs[f.wrap(reg)] = v }

// Load consumes the pointer byte.
func (f *File) Load(v byte) {
	f.ptr = f.wrap(int(v))
	f.loaded = true
	f.full = false
}

// Store writes v at the pointer and advances it. It returns the register
// written, or ok=false when a NoWrap file is full.
func (f *File) Store(v byte) (reg int, ok bool) {
	if f.full {
		return f.ptr, false
	}
	reg = f.ptr
	f.regs[reg] = v
	if f.noWrap && reg == len(f.regs)-1 {
		f.full = true
		return reg, true
	}
	f.ptr = f.wrap(reg + 1)
	return reg, true
}

// Fetch returns the byte at the pointer, advancing only when ack is set.
func (f *File) Fetch(ack bool) byte {
	v := f.regs[f.ptr]
	if ack {
		f.ptr = f.wrap(f.ptr + 1)
	}
	return v
}

// Reset returns framing to "expect pointer byte next". The pointer itself
// is kept so that a read without a pointer write continues where the last
// transaction stopped.
func (f *File) Reset() {
	f.loaded = false
	f.full = false
}

func (f *File) wrap(i int) int {
	n := len(f.regs)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// TryConnect, ReceiveByte, ProduceByte and Disconnect make File usable on
// its own as a plain scratch-memory chip.

func (f *File) TryConnect(addr uint8, _ bool) bool {
	if addr != f.addr {
		return false
	}
	f.Reset()
	return true
}

func (f *File) ReceiveByte(v byte) bool {
	if !f.loaded {
		f.Load(v)
		return true
	}
	_, ok := f.Store(v)
	return ok
}

func (f *File) ProduceByte(ack bool) byte { return f.Fetch(ack) }

func (f *File) Disconnect() { f.Reset() }
