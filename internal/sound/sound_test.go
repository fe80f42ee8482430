package sound

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestNotes(t *testing.T) {
	want := map[byte]string{'>': "C2", '<': "C3", '+': "C4", '-': "C5", '.': "C6", '[': "C7", ']': "C8"}
	for cmd, note := range want {
		got, ok := Note(cmd)
		if !ok || got != note {
			t.Errorf("Note(%q) = %s, %v, want %s", cmd, got, ok, note)
		}
	}
	if _, ok := Note('x'); ok {
		t.Errorf("x has a note")
	}
}

func TestFrequency(t *testing.T) {
	if f := Frequency(4); math.Abs(f-261.6256) > 0.001 {
		t.Errorf("C4 = %f", f)
	}
	if f := Frequency(5); math.Abs(f-2*Frequency(4)) > 1e-9 {
		t.Errorf("C5 = %f, not an octave above C4", f)
	}
}

func TestGainWraps(t *testing.T) {
	tr := NewTrack()
	if _, ok := tr.Cue('a'); ok {
		t.Fatal("no-op command was cued")
	}

	var last Tone
	for i := 0; i < 10; i++ {
		tone, ok := tr.Cue('+')
		if !ok {
			t.Fatal("+ not cued")
		}
		want := gainStep * float64(i+1)
		if math.Abs(tone.Gain-want) > 1e-9 {
			t.Errorf("tone %d gain = %f, want %f", i, tone.Gain, want)
		}
		last = tone
	}
	if last.Note != "C4" {
		t.Errorf("note = %s", last.Note)
	}

	tone, _ := tr.Cue(']')
	if math.Abs(tone.Gain-gainStep) > 1e-9 {
		t.Errorf("gain after wrap = %f", tone.Gain)
	}
	if tr.Len() != 11 {
		t.Errorf("len = %d", tr.Len())
	}
}

func TestWriteWAV(t *testing.T) {
	tr := NewTrack()
	for _, c := range []byte("+[-].") {
		tr.Cue(c)
	}

	path := filepath.Join(t.TempDir(), "run.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.WriteWAV(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		t.Fatal("not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if dec.SampleRate != SampleRate || dec.NumChans != 1 {
		t.Errorf("format = %d Hz, %d channels", dec.SampleRate, dec.NumChans)
	}
	want := 5 * int(NoteLength*SampleRate)
	if len(buf.Data) != want {
		t.Errorf("samples = %d, want %d", len(buf.Data), want)
	}
}

func TestReset(t *testing.T) {
	tr := NewTrack()
	tr.Cue('+')
	tr.Cue('-')

	tr.Reset()
	if tr.Len() != 0 {
		t.Fatalf("len after reset = %d", tr.Len())
	}
	tone, _ := tr.Cue('>')
	if math.Abs(tone.Gain-gainStep) > 1e-9 {
		t.Errorf("gain after reset = %f", tone.Gain)
	}
}
