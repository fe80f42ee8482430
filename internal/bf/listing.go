package bf

import (
	"fmt"
	"strings"
)

// Entry is one recognised command of a program. Partner is the index of the
// matching bracket, -1 for unmatched brackets and non-bracket commands.
type Entry struct {
	Index   int
	Command byte
	Partner int
}

func IsCommand(c byte) bool {
	switch c {
	case '>', '<', '+', '-', '.', '[', ']':
		return true
	}
	return false
}

// Listing is for display only. Step never consults it.
func Listing(program string) []Entry {
	entries := make([]Entry, 0, len(program))
	// positions in entries of the brackets still waiting for a ]
	open := make([]int, 0)

	for i := 0; i < len(program); i++ {
		c := program[i]
		if !IsCommand(c) {
			continue
		}
		entries = append(entries, Entry{Index: i, Command: c, Partner: -1})

		switch c {
		case '[':
			open = append(open, len(entries)-1)
		case ']':
			if len(open) == 0 {
				continue
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			entries[start].Partner = i
			entries[len(entries)-1].Partner = entries[start].Index
		}
	}
	return entries
}

func (e Entry) String() string {
	switch {
	case e.Command == '[' && e.Partner >= 0:
		return fmt.Sprintf("%5d  [  -> %d", e.Index, e.Partner)
	case e.Command == ']' && e.Partner >= 0:
		return fmt.Sprintf("%5d  ]  <- %d", e.Index, e.Partner)
	case e.Command == '[' || e.Command == ']':
		return fmt.Sprintf("%5d  %c  unmatched", e.Index, e.Command)
	}
	return fmt.Sprintf("%5d  %c", e.Index, e.Command)
}

func FormatListing(entries []Entry) string {
	var b strings.Builder
	b.WriteString("INDEX  OP\n")
	b.WriteString("------------------\n")
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
