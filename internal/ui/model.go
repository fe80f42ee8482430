package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cihandeniz/mouseless.art/internal/bf"
	"github.com/cihandeniz/mouseless.art/internal/catalog"
	"github.com/cihandeniz/mouseless.art/internal/sound"
	"github.com/cihandeniz/mouseless.art/internal/textout"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// how many history lines and program characters fit in a box
const (
	historyLines = 8
	codeWindow   = 120
)

type Config struct {
	Program  catalog.Program
	TapeSize int
	Speed    time.Duration
	Decoder  textout.Decoder

	// Track is optional. When set every executed command of the current run
	// is cued on it; loading a program starts it over.
	Track  *sound.Track
	Logger *slog.Logger
}

type model struct {
	cfg                Config
	in                 *bf.Interpreter
	partners           map[int]int
	instructionHistory []string
	progEnded          bool
	err                error

	// ticks from an earlier run are dropped
	runID int
}

func InitialModel(cfg Config) (model, error) {
	if cfg.Speed <= 0 {
		cfg.Speed = bf.DefaultInterval
	}
	if cfg.Decoder == nil {
		cfg.Decoder, _ = textout.New("utf-8")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	m := model{cfg: cfg}
	if err := m.loadProgram(); err != nil {
		return m, err
	}
	return m, nil
}

type loadProgramMsg struct{ program catalog.Program }

type tickMsg struct{ runID int }

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) tick() tea.Cmd {
	id := m.runID
	return tea.Tick(m.cfg.Speed, func(time.Time) tea.Msg {
		return tickMsg{id}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProgramMsg:
		m.cfg.Program = msg.program
		if err := m.loadProgram(); err != nil {
			m.err = err
		}
	case tickMsg:
		if msg.runID != m.runID || m.in.Status() != bf.Running {
			return m, nil
		}
		m.step()
		if m.in.Status() == bf.Running {
			return m, m.tick()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			if !m.progEnded && m.in.Status() != bf.Running {
				m.step()
			}
		case "r", "c":
			if !m.progEnded && m.in.Status() != bf.Running {
				m.in.Run()
				m.runID++
				m.cfg.Logger.Debug("auto run", "index", m.in.Index(), "speed", m.cfg.Speed)
				return m, m.tick()
			}
		case "p":
			m.in.Pause()
		case "x":
			program := m.cfg.Program
			return m, func() tea.Msg {
				return loadProgramMsg{program}
			}
		}
	}
	return m, nil
}

// loadProgram throws away the current interpreter, nothing survives a reload.
func (m *model) loadProgram() error {
	in, err := bf.NewInterpreter(m.cfg.Program.Source, m.cfg.TapeSize)
	if err != nil {
		return err
	}

	partners := make(map[int]int)
	for _, e := range bf.Listing(m.cfg.Program.Source) {
		if e.Partner >= 0 {
			partners[e.Index] = e.Partner
		}
	}

	m.in = in
	m.partners = partners
	m.instructionHistory = make([]string, 0)
	m.progEnded = false
	m.err = nil
	m.runID++
	if m.cfg.Track != nil {
		m.cfg.Track.Reset()
	}

	m.cfg.Logger.Info("program loaded", "id", m.cfg.Program.ID, "name", m.cfg.Program.Name, "length", len(m.cfg.Program.Source))
	return nil
}

func (m *model) step() {
	res, err := m.in.Step()
	if res.Executed {
		m.instructionHistory = append(m.instructionHistory, formatStep(res))
		if m.cfg.Track != nil {
			m.cfg.Track.Cue(res.Command)
		}
	}
	if err != nil {
		m.err = err
		m.cfg.Logger.Error("program stopped", "error", err)
	}
	if res.Halt != bf.NotHalted {
		m.progEnded = true
		m.cfg.Logger.Info("program halted", "reason", res.Halt, "steps", m.in.Steps(), "output", len(m.in.Output()))
	}
}

func formatStep(res bf.StepResult) string {
	s := fmt.Sprintf("%5d  %c  p=%d", res.Index, res.Command, res.Pointer)
	if res.HasOutput {
		s += fmt.Sprintf(" out=%d", res.Output)
	}
	return s
}

func (m model) buildInstructionHistory() string {
	var stateBuilder strings.Builder
	start := 0
	if len(m.instructionHistory) > historyLines {
		start = len(m.instructionHistory) - historyLines
	}
	curr := len(m.instructionHistory) - 1
	for i := start; i < len(m.instructionHistory); i++ {
		if curr != i {
			fmt.Fprintf(&stateBuilder, "   %s\n", m.instructionHistory[i])
		} else {
			fmt.Fprintf(&stateBuilder, "*  %s\n", m.instructionHistory[i])
		}
	}
	return stateBuilder.String()
}

// buildCode shows the program around the next instruction, highlighting it
// and the bracket it pairs with.
func (m model) buildCode() string {
	program := m.in.Program()
	index := m.in.Index()

	start := 0
	if index > codeWindow/2 {
		start = index - codeWindow/2
	}
	end := start + codeWindow
	if end > len(program) {
		end = len(program)
	}

	partner, hasPartner := m.partners[index]

	var b strings.Builder
	if start > 0 {
		b.WriteString("…")
	}
	for i := start; i < end; i++ {
		c := string(program[i])
		switch {
		case i == index:
			b.WriteString(PcTextStyle.Render(c))
		case hasPartner && i == partner:
			b.WriteString(partnerTextStyle.Render(c))
		default:
			b.WriteString(c)
		}
	}
	if index >= len(program) {
		b.WriteString(PcTextStyle.Render("∎"))
	}
	if end < len(program) {
		b.WriteString("…")
	}
	return b.String()
}

func (m model) buildOutput() string {
	out := m.cfg.Decoder.Decode(m.in.Output())
	if m.err != nil {
		out += "\n\n" + errorTextStyle.Render(m.err.Error())
	}
	return out
}

func (m model) View() string {
	titleContent := headerStyle.Render(fmt.Sprintf("BRAINSTUCK - %s", m.cfg.Program.Name))

	stateContent := titleStyle.Render("State") + "\n" + boxStyle.Render(m.in.BuildProgramState())
	instContent := titleStyle.Render("Instruction History") + "\n" + boxStyle.Render(m.buildInstructionHistory())
	tapeContent := titleStyle.Render("Tape") + "\n" + boxStyle.Width(tapeWidth).Height(tapeRows()).Render(m.in.BuildTapeState())

	codeContent := titleStyle.Render("Code") + "\n" + boxStyle.Width(codeWidth).Height(4).Render(m.buildCode())
	outContent := titleStyle.Render("Output") + "\n" + boxStyle.Height(4).Render(m.buildOutput())

	cmd := titleStyle.Render("Commands") + "\n" + boxStyle.Width(codeWidth).Height(1).Render("(s)tep  (r)un  (p)ause  (c)ontinue  reset(x)  (q)uit")

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, stateContent, instContent, tapeContent)
	lowerArea := lipgloss.JoinHorizontal(lipgloss.Top, codeContent, outContent)

	return lipgloss.JoinVertical(lipgloss.Left, titleContent, mainArea, lowerArea, cmd)
}

// header plus one row per visible cell
func tapeRows() int {
	return bf.TapeWindow + 1
}

func StartUI(cfg Config) error {
	m, err := InitialModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
