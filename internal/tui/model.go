package tui

import (
	"strings"

	"go-chi-calculator/internal/calculator"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Identity is the static label shown under the keypad.
type Identity struct {
	Name string
	ID   string
}

// Model is the bubbletea model of the keypad. All arithmetic goes through
// calculator.Handle; the model only tracks focus and layout.
type Model struct {
	state    calculator.State
	row, col int
	identity Identity
	styles   Styles
	logger   *zap.Logger
	width    int
}

// New returns a keypad in the power-on state with focus on the top-left key.
func New(identity Identity, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{
		state:    calculator.NewState(),
		identity: identity,
		styles:   DefaultStyles(),
		logger:   logger,
	}
}

// State returns the current calculator state.
func (m Model) State() calculator.State { return m.state }

// Focused returns the key under the cursor.
func (m Model) Focused() calculator.Token {
	return calculator.Keypad[m.row][m.col]
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up":
		m.row = (m.row + len(calculator.Keypad) - 1) % len(calculator.Keypad)
		return m, nil
	case "down":
		m.row = (m.row + 1) % len(calculator.Keypad)
		return m, nil
	case "left":
		cols := len(calculator.Keypad[m.row])
		m.col = (m.col + cols - 1) % cols
		return m, nil
	case "right":
		m.col = (m.col + 1) % len(calculator.Keypad[m.row])
		return m, nil
	case "enter", " ":
		return m.press(m.Focused()), nil
	case "esc", "backspace":
		return m.press(calculator.Clear), nil
	case "x":
		return m.press(calculator.Multiply), nil
	}

	tok, err := calculator.ParseToken(key)
	if err != nil {
		return m, nil
	}
	m = m.focus(tok)
	return m.press(tok), nil
}

func (m Model) press(tok calculator.Token) Model {
	prev := m.state
	m.state = calculator.Handle(prev, tok)

	m.logger.Debug("key pressed",
		zap.String("token", string(tok)),
		zap.String("display", m.state.Display),
		zap.Bool("ignored", !calculator.Accepts(prev, tok)),
	)
	return m
}

// focus moves the cursor onto tok so typed keys light up on the grid.
func (m Model) focus(tok calculator.Token) Model {
	for r, row := range calculator.Keypad {
		for c, k := range row {
			if k == tok {
				m.row, m.col = r, c
				return m
			}
		}
	}
	return m
}

func (m Model) View() string {
	keypad := m.renderKeypad()
	width := lipgloss.Width(keypad)
	if m.width > 0 && m.width-4 < width {
		width = max(m.width-4, keyWidth)
	}

	screen := m.styles.Screen.Width(width).Render(m.state.Display)

	var identity []string
	if m.identity.Name != "" {
		identity = append(identity, m.styles.Name.Render(m.identity.Name))
	}
	if m.identity.ID != "" {
		identity = append(identity, m.styles.ID.Render(m.identity.ID))
	}
	label := lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, identity...))

	help := m.styles.Help.Render("0-9 + - * / = · c clear · arrows+enter · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, screen, "", keypad, "", label, help) + "\n"
}

func (m Model) renderKeypad() string {
	rows := make([]string, 0, len(calculator.Keypad))
	for r, row := range calculator.Keypad {
		keys := make([]string, 0, len(row))
		for c, k := range row {
			style := m.styles.Key
			switch {
			case r == m.row && c == m.col:
				style = m.styles.Focused
			case k.IsOperator():
				style = m.styles.Operator
			}
			keys = append(keys, style.Render(string(k)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return strings.Join(rows, "\n\n")
}

// Run starts the interactive keypad and blocks until the user quits.
func Run(identity Identity, logger *zap.Logger, opts ...tea.ProgramOption) (calculator.State, error) {
	p := tea.NewProgram(New(identity, logger), opts...)
	final, err := p.Run()
	if err != nil {
		return calculator.State{}, err
	}
	return final.(Model).State(), nil
}
