package bf

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuildTapeState(t *testing.T) {
	in := newInterpreter(t, "++++++++[>++++++++<-]>+", 3)
	runToHalt(t, in)

	state := in.BuildTapeState()
	if !strings.Contains(state, "->    1 \t  65 \t 0x41 \t A") {
		t.Errorf("pointer row missing:\n%s", state)
	}
	if strings.Count(state, "\n") != 4 {
		t.Errorf("expected header and 3 rows:\n%s", state)
	}
}

func TestBuildTapeStateWindow(t *testing.T) {
	in := newInterpreter(t, "<", 100)
	in.Step()

	state := in.BuildTapeState()
	if strings.Count(state, "\n") != TapeWindow+1 {
		t.Errorf("window rows:\n%s", state)
	}
	if !strings.Contains(state, "->   99") || strings.Contains(state, "    0 \t") {
		t.Errorf("window not around pointer:\n%s", state)
	}
}

func TestBuildProgramState(t *testing.T) {
	in := newInterpreter(t, "+[", 1)
	in.Step()
	if in.CurrentCommand() != "[" {
		t.Errorf("current = %q", in.CurrentCommand())
	}
	in.Step()
	in.Step()
	if in.CurrentCommand() != "<end>" {
		t.Errorf("current = %q", in.CurrentCommand())
	}
	state := in.BuildProgramState()
	for _, want := range []string{"status: halted", "index: 2/2", "halt: finished"} {
		if !strings.Contains(state, want) {
			t.Errorf("state missing %q:\n%s", want, state)
		}
	}
}

func TestPrintTapeState(t *testing.T) {
	in := newInterpreter(t, "+>++", 2)
	runToHalt(t, in)

	var b bytes.Buffer
	in.PrintTapeState(&b)
	if b.String() != " 0: 1\n*1: 2\n" {
		t.Errorf("got %q", b.String())
	}
}
