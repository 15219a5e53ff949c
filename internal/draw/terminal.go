package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	SeqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqMouseOn    = "\033[?1003h\033[?1006h" // Any-motion tracking, SGR coordinates
	seqMouseOff   = "\033[?1006l\033[?1003l"
)

// maxChunkSize keeps each write near one TCP segment so SSH sessions stream
// frames smoothly.
const maxChunkSize = 1400

// ChunkWriter collects one frame of terminal output and flushes it in
// segment-sized writes. Cursor moves are shifted by the canvas offset.
type ChunkWriter struct {
	w      io.Writer
	frame  []byte
	offCol int
	offRow int
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter returns a ChunkWriter over w with the given cursor offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		w:      w,
		frame:  make([]byte, 0, 16*1024),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// MoveCursor appends a cursor move to the 1-based canvas cell (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.offRow), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.offCol), 10)
	cw.frame = append(cw.frame, 'H')
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

// WriteString appends s to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt writes s at a 1-based canvas cell, clamped to the top-left corner.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(max(col, 1), max(row, 1))
	cw.frame = append(cw.frame, s...)
}

// Flush writes the frame in chunks of at most maxChunkSize bytes and starts
// a new frame.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame
	cw.frame = cw.frame[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// EnterSession hides the cursor, turns on pointer tracking and clears the
// screen.
func EnterSession(w io.Writer) {
	io.WriteString(w, seqHideCursor+seqMouseOn+SeqClear)
}

// LeaveSession clears the screen and restores pointer handling and the
// cursor.
func LeaveSession(w io.Writer) {
	io.WriteString(w, SeqClear+seqMouseOff+seqShowCursor)
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, SeqClear)
}
