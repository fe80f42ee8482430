package tape

import (
	"errors"
	"fmt"
)

const DefaultSize = 10

var ErrInvalidTapeSize = errors.New("invalid tape size")

// Tape is a fixed number of byte cells addressed by a pointer. Both the
// pointer and the cell values wrap around, so neither can leave its range.
type Tape struct {
	cells   []byte
	pointer int
}

type Snapshot struct {
	Cells   []byte
	Pointer int
}

func New(size int) (*Tape, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTapeSize, size)
	}
	return &Tape{
		cells:   make([]byte, size),
		pointer: 0,
	}, nil
}

func (t *Tape) Size() int {
	return len(t.cells)
}

func (t *Tape) Pointer() int {
	return t.pointer
}

func (t *Tape) MoveRight() {
	t.pointer = (t.pointer + 1) % len(t.cells)
}

func (t *Tape) MoveLeft() {
	t.pointer = (t.pointer - 1 + len(t.cells)) % len(t.cells)
}

// byte arithmetic already wraps at 256
func (t *Tape) Increment() {
	t.cells[t.pointer]++
}

func (t *Tape) Decrement() {
	t.cells[t.pointer]--
}

func (t *Tape) Read() byte {
	return t.cells[t.pointer]
}

// Snapshot copies the cells so the caller can't reach back into the tape.
func (t *Tape) Snapshot() Snapshot {
	cells := make([]byte, len(t.cells))
	copy(cells, t.cells)
	return Snapshot{
		Cells:   cells,
		Pointer: t.pointer,
	}
}
