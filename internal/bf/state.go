package bf

import (
	"fmt"
	"io"
	"strings"
)

// tape is tiny by default but can be configured large, so show a window
// around the pointer
const TapeWindow = 16

func (in *Interpreter) BuildTapeState() string {
	var stateBuilder strings.Builder
	stateBuilder.WriteString("   cell \t dec \t hex  \t ASCII\n")

	snap := in.tape.Snapshot()
	bottom := 0
	if len(snap.Cells) > TapeWindow {
		bottom = snap.Pointer - TapeWindow/2
		if bottom < 0 {
			bottom = 0
		}
		if bottom+TapeWindow > len(snap.Cells) {
			bottom = len(snap.Cells) - TapeWindow
		}
	}

	for i := bottom; i < len(snap.Cells) && i < bottom+TapeWindow; i++ {
		marker := "  "
		if i == snap.Pointer {
			marker = "->"
		}
		fmt.Fprintf(&stateBuilder, "%s %4d \t %3d \t 0x%02x \t %s\n", marker, i, snap.Cells[i], snap.Cells[i], byteToAscii(snap.Cells[i]))
	}
	return stateBuilder.String()
}

func byteToAscii(value byte) string {
	if value >= 32 && value <= 126 {
		return string(value)
	} else {
		return "."
	}
}

func (in *Interpreter) CurrentCommand() string {
	if in.index >= len(in.program) {
		return "<end>"
	}
	return string(in.program[in.index])
}

func (in *Interpreter) BuildProgramState() string {
	var stateBuilder strings.Builder
	fmt.Fprintf(&stateBuilder, "status: %s\n", in.status)
	fmt.Fprintf(&stateBuilder, "index: %d/%d\n", in.index, len(in.program))
	fmt.Fprintf(&stateBuilder, "steps: %d\n", in.steps)
	if in.halt != NotHalted {
		fmt.Fprintf(&stateBuilder, "halt: %s\n", in.halt)
	}
	fmt.Fprintf(&stateBuilder, "→ %s", in.CurrentCommand())
	return stateBuilder.String()
}

func (in *Interpreter) PrintTapeState(w io.Writer) {
	snap := in.tape.Snapshot()
	for i, v := range snap.Cells {
		if i == snap.Pointer {
			fmt.Fprintf(w, "*%d: %d\n", i, v)
		} else {
			fmt.Fprintf(w, " %d: %d\n", i, v)
		}
	}
}
