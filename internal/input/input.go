// Package input turns raw terminal bytes into key and pointer events.
package input

import (
	"bufio"
)

// PointerKind distinguishes pointer event types.
type PointerKind int

const (
	PointerMove  PointerKind = iota // Pointer moved (any button state)
	PointerPress                    // Primary button pressed
)

// PointerEvent is a mouse report in 1-based terminal coordinates.
type PointerEvent struct {
	Kind PointerKind
	Col  int
	Row  int
}

// Input represents the input read since the previous frame.
type Input struct {
	Quit    bool
	Launch  bool // Launch a rocket now
	Clear   bool // Clear the sky
	Pause   bool // Toggle pause
	Pointer []PointerEvent
	Pressed []byte // Key bytes, excluding mouse reports
}

// maxSGRLen bounds a mouse report; longer escape runs are treated as keys.
const maxSGRLen = 32

// Stream delivers input bytes via a channel. An escape sequence cut off at
// the end of a drain is kept in pending and completed by the next one.
type Stream struct {
	ch      chan byte
	pending []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 512),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and parses them.
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	if closed {
		in := Parse(buf)
		in.Quit = true
		return in
	}

	in, n := parse(buf, false)
	if n < len(buf) {
		s.pending = append([]byte(nil), buf[n:]...)
	}
	return in
}

// Parse decodes a complete batch of raw terminal bytes. A trailing partial
// escape sequence is reported as key bytes.
func Parse(buf []byte) Input {
	in, _ := parse(buf, true)
	return in
}

// parse decodes buf and returns the number of bytes consumed. Unless final
// is set, it stops before a trailing escape sequence that may still complete.
func parse(buf []byte, final bool) (Input, int) {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && !final && partialSGR(buf[i:]) {
			return in, i
		}

		// SGR mouse report: ESC [ < btn ; col ; row (M|m)
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' && buf[i+2] == '<' {
			n, ev, ok := parseSGRMouse(buf[i:])
			if n > 0 {
				if ok {
					in.Pointer = append(in.Pointer, ev)
				}
				i += n - 1
				continue
			}
		}

		in.Pressed = append(in.Pressed, b)
		applyByte(&in, b)
	}

	return in, len(buf)
}

// partialSGR reports whether data, starting at ESC, is a prefix of an SGR
// mouse report that has not been terminated yet.
func partialSGR(data []byte) bool {
	if len(data) >= maxSGRLen {
		return false
	}
	const prefix = "\x1b[<"
	for i := 1; i < len(data); i++ {
		if i < len(prefix) {
			if data[i] != prefix[i] {
				return false
			}
			continue
		}
		c := data[i]
		if c != ';' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// applyByte maps a single key byte to its action.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', 0x03: // 0x03 is Ctrl-C in raw mode
		in.Quit = true
	case ' ', '\n', '\r':
		in.Launch = true
	case 'c', 'C':
		in.Clear = true
	case 'p', 'P':
		in.Pause = true
	}
}

// parseSGRMouse parses one SGR mouse sequence at the start of data.
// Returns the bytes consumed (0 if data is not a complete sequence) and
// whether the report maps to a pointer event.
func parseSGRMouse(data []byte) (int, PointerEvent, bool) {
	// Find terminator M (press/motion) or m (release)
	end := 3
	for end < len(data) && end < maxSGRLen && data[end] != 'M' && data[end] != 'm' {
		end++
	}
	if end >= len(data) || (data[end] != 'M' && data[end] != 'm') {
		return 0, PointerEvent{}, false
	}

	btn, col, row, ok := parseSGRParams(data[3:end])
	if !ok {
		return 0, PointerEvent{}, false
	}
	consumed := end + 1

	// Bits 0-1: button (0=left, 1=middle, 2=right, 3=none)
	// Bit 5 (32): motion
	// Bit 6 (64): scroll
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	switch {
	case isScroll, data[end] == 'm':
		return consumed, PointerEvent{}, false
	case isMotion:
		return consumed, PointerEvent{Kind: PointerMove, Col: col, Row: row}, true
	case buttonID == 0:
		return consumed, PointerEvent{Kind: PointerPress, Col: col, Row: row}, true
	default:
		return consumed, PointerEvent{}, false
	}
}

// parseSGRParams parses "btn;col;row" decimal parameters.
func parseSGRParams(params []byte) (btn, col, row int, ok bool) {
	var vals [3]int
	idx := 0
	digits := 0
	for _, c := range params {
		switch {
		case c >= '0' && c <= '9':
			vals[idx] = vals[idx]*10 + int(c-'0')
			digits++
		case c == ';':
			if digits == 0 || idx == 2 {
				return 0, 0, 0, false
			}
			idx++
			digits = 0
		default:
			return 0, 0, 0, false
		}
	}
	if idx != 2 || digits == 0 {
		return 0, 0, 0, false
	}
	return vals[0], vals[1], vals[2], true
}
