// Package keyboard reads single raw keystrokes from a terminal.
package keyboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// KeyEscape ends the game.
const KeyEscape byte = 27

// ErrIO reports a terminal that could not be queried, reconfigured or read.
var ErrIO = errors.New("terminal i/o")

// Reader reads one key at a time, holding raw mode only for the duration of each read.
type Reader struct {
	tty *os.File
	src io.Reader
}

// New returns a Reader bound to tty, usually os.Stdin.
func New(tty *os.File) *Reader {
	return &Reader{tty: tty, src: tty}
}

// ReadKey switches the terminal to raw mode, reads exactly one byte and restores
// the previous mode before returning, whether the read succeeded or not.
func (r *Reader) ReadKey() (key byte, err error) {
	fd := int(r.tty.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("%w: entering raw mode: %w", ErrIO, err)
	}
	defer func() {
		if rerr := term.Restore(fd, state); rerr != nil && err == nil {
			err = fmt.Errorf("%w: restoring terminal: %w", ErrIO, rerr)
		}
	}()

	var buf [1]byte
	if _, err := io.ReadFull(r.src, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading key: %w", ErrIO, err)
	}
	return buf[0], nil
}

// IsLetter reports whether key is in a..z.
func IsLetter(key byte) bool {
	return key >= 'a' && key <= 'z'
}
