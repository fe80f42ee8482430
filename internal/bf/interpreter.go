package bf

import (
	"errors"
	"fmt"

	"github.com/cihandeniz/mouseless.art/internal/tape"
)

var ErrUnbalancedProgram = errors.New("unbalanced program")

type Status int

const (
	Ready Status = iota
	Running
	Paused
	Halted
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

type HaltReason int

const (
	NotHalted HaltReason = iota
	Finished
	Unbalanced
)

func (h HaltReason) String() string {
	switch h {
	case NotHalted:
		return "not halted"
	case Finished:
		return "finished"
	case Unbalanced:
		return "unbalanced"
	}
	return fmt.Sprintf("halt(%d)", int(h))
}

// StepResult is what a driver gets back from every call to Step. Command is
// only meaningful when Executed is set; halted steps execute nothing.
type StepResult struct {
	Executed  bool
	Command   byte
	Index     int
	Pointer   int
	Cells     []byte
	Output    byte
	HasOutput bool
	Halt      HaltReason
}

type Interpreter struct {
	program []byte
	tape    *tape.Tape
	index   int
	output  []byte
	status  Status
	halt    HaltReason
	steps   int
}

func NewInterpreter(program string, size int) (*Interpreter, error) {
	t, err := tape.New(size)
	if err != nil {
		return nil, fmt.Errorf("new interpreter: %w", err)
	}
	return &Interpreter{
		program: []byte(program),
		tape:    t,
		index:   0,
		output:  make([]byte, 0),
		status:  Ready,
		halt:    NotHalted,
	}, nil
}

// Step executes the instruction at the current index. Once halted it keeps
// returning the same finished result without touching the tape or output.
// The returned error is only set on the step that discovers an unbalanced
// bracket.
func (in *Interpreter) Step() (StepResult, error) {
	if in.status == Halted {
		return in.result(0, in.index), nil
	}
	if in.index >= len(in.program) {
		in.stop(Finished)
		return in.result(0, in.index), nil
	}
	if in.status == Ready {
		in.status = Paused
	}

	at := in.index
	command := in.program[at]
	var out byte
	var hasOut bool

	switch command {
	case '>':
		in.tape.MoveRight()
	case '<':
		in.tape.MoveLeft()
	case '+':
		in.tape.Increment()
	case '-':
		in.tape.Decrement()
	case '.':
		out = in.tape.Read()
		hasOut = true
		in.output = append(in.output, out)
	case '[':
		if in.tape.Read() == 0 {
			match, ok := in.scanForward(at)
			if !ok {
				in.stop(Unbalanced)
				return in.executed(command, at), fmt.Errorf("%w: no ] for [ at %d", ErrUnbalancedProgram, at)
			}
			in.index = match
			in.steps++
			return in.executed(command, at), nil
		}
	case ']':
		if in.tape.Read() != 0 {
			match, ok := in.scanBackward(at)
			if !ok {
				in.stop(Unbalanced)
				return in.executed(command, at), fmt.Errorf("%w: no [ for ] at %d", ErrUnbalancedProgram, at)
			}
			in.index = match
			in.steps++
			return in.executed(command, at), nil
		}
	}

	in.index++
	in.steps++

	res := in.executed(command, at)
	res.Output = out
	res.HasOutput = hasOut
	return res, nil
}

// scanForward looks for the ] matching the [ at from. It never reads outside
// the program.
func (in *Interpreter) scanForward(from int) (int, bool) {
	depth := 1
	for i := from + 1; i < len(in.program); i++ {
		switch in.program[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return from, false
}

func (in *Interpreter) scanBackward(from int) (int, bool) {
	depth := 1
	for i := from - 1; i >= 0; i-- {
		switch in.program[i] {
		case ']':
			depth++
		case '[':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return from, false
}

func (in *Interpreter) stop(reason HaltReason) {
	in.status = Halted
	in.halt = reason
}

func (in *Interpreter) result(command byte, at int) StepResult {
	snap := in.tape.Snapshot()
	return StepResult{
		Command: command,
		Index:   at,
		Pointer: snap.Pointer,
		Cells:   snap.Cells,
		Halt:    in.halt,
	}
}

func (in *Interpreter) executed(command byte, at int) StepResult {
	res := in.result(command, at)
	res.Executed = true
	return res
}

// Run hands the interpreter to a timer driven caller.
func (in *Interpreter) Run() {
	if in.status == Ready || in.status == Paused {
		in.status = Running
	}
}

func (in *Interpreter) Pause() {
	if in.status == Running {
		in.status = Paused
	}
}

func (in *Interpreter) Resume() {
	if in.status == Paused {
		in.status = Running
	}
}

func (in *Interpreter) Status() Status {
	return in.status
}

func (in *Interpreter) IsHalted() bool {
	return in.status == Halted
}

func (in *Interpreter) HaltReason() HaltReason {
	return in.halt
}

func (in *Interpreter) Program() string {
	return string(in.program)
}

func (in *Interpreter) Index() int {
	return in.index
}

func (in *Interpreter) Steps() int {
	return in.steps
}

func (in *Interpreter) Output() []byte {
	out := make([]byte, len(in.output))
	copy(out, in.output)
	return out
}

func (in *Interpreter) Tape() tape.Snapshot {
	return in.tape.Snapshot()
}
