// Package sound gives every command a short tone, the way the browser
// version chimed on each step, and can render a run to a WAV file.
package sound

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	SampleRate = 44100
	BitDepth   = 16

	// an eighth note at 120bpm
	NoteLength = 0.25

	gainStep = 0.1
)

var notes = map[byte]string{
	'>': "C2",
	'<': "C3",
	'+': "C4",
	'-': "C5",
	'.': "C6",
	'[': "C7",
	']': "C8",
}

func Note(command byte) (string, bool) {
	n, ok := notes[command]
	return n, ok
}

// Frequency of C in the given octave, equal temperament with A4 = 440Hz.
func Frequency(octave int) float64 {
	semitones := float64((octave-4)*12 - 9)
	return 440 * math.Pow(2, semitones/12)
}

func octave(note string) int {
	return int(note[1] - '0')
}

type Tone struct {
	Command byte
	Note    string
	Freq    float64
	Gain    float64
}

// Track collects one tone per cued step. Gain climbs with every tone and
// wraps back to the start once it passes 1.
type Track struct {
	tones []Tone
	gain  float64
}

func NewTrack() *Track {
	return &Track{
		tones: make([]Tone, 0),
		gain:  gainStep,
	}
}

func (tr *Track) Cue(command byte) (Tone, bool) {
	note, ok := Note(command)
	if !ok {
		return Tone{}, false
	}

	tone := Tone{
		Command: command,
		Note:    note,
		Freq:    Frequency(octave(note)),
		Gain:    tr.gain,
	}
	tr.tones = append(tr.tones, tone)

	tr.gain += gainStep
	if tr.gain > 1 {
		tr.gain = gainStep
	}
	return tone, true
}

// Reset drops every recorded tone and starts the gain over.
func (tr *Track) Reset() {
	tr.tones = make([]Tone, 0)
	tr.gain = gainStep
}

func (tr *Track) Tones() []Tone {
	return tr.tones
}

func (tr *Track) Len() int {
	return len(tr.tones)
}

// WriteWAV renders the track as 16 bit mono PCM.
func (tr *Track) WriteWAV(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, SampleRate, BitDepth, 1, 1)

	perTone := int(NoteLength * SampleRate)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           make([]int, 0, perTone*len(tr.tones)),
		SourceBitDepth: BitDepth,
	}

	peak := float64(math.MaxInt16)
	for _, tone := range tr.tones {
		for i := 0; i < perTone; i++ {
			t := float64(i) / SampleRate
			// linear release so consecutive tones don't click
			env := 1 - float64(i)/float64(perTone)
			v := math.Sin(2*math.Pi*tone.Freq*t) * tone.Gain * env
			buf.Data = append(buf.Data, int(v*peak))
		}
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}
