// Package tui is an interactive terminal client for playing against
// the search bot. The human plays Red and moves first; the bot's
// search runs as a command so the interface stays responsive.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hex/game"
	"hex/searcher"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	blueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Bold(true)
	lastStyle   = lipgloss.NewStyle().Underline(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type model struct {
	state    *game.GameState
	bot      *searcher.MCTS
	botOpts  []searcher.Option
	cursorR  int
	cursorC  int
	gen      int // bumped on new game; stale bot moves are dropped
	thinking bool
	status   string
}

type botMoveMsg struct {
	move     game.Move
	episodes int
	gen      int
}

// NewProgram builds a bubbletea program for a game of the given size.
func NewProgram(size int, opts ...searcher.Option) *tea.Program {
	opts = append(opts, searcher.WithMetrics())
	m := model{
		state:   game.NewGameState(size),
		bot:     searcher.NewMCTS(opts...),
		botOpts: opts,
		cursorR: size / 2,
		cursorC: size / 2,
		status:  "Your move. You connect top to bottom.",
	}
	return tea.NewProgram(m, tea.WithAltScreen())
}

func (m model) Init() tea.Cmd {
	return nil
}

// findBotMove runs the search off the update loop. It works on a copy
// so the model's state is only touched when the message arrives, and
// carries the game generation so a move from an abandoned game is
// recognizably stale.
func findBotMove(bot *searcher.MCTS, state *game.GameState, gen int) tea.Cmd {
	live := state.Copy()
	return func() tea.Msg {
		mv := bot.FindMove(live)
		return botMoveMsg{move: mv, episodes: bot.LastSearch().Episodes, gen: gen}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case botMoveMsg:
		return m.handleBotMove(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursorR > 0 {
			m.cursorR--
		}
	case "down", "j":
		if m.cursorR < m.state.Size-1 {
			m.cursorR++
		}
	case "left", "h":
		if m.cursorC > 0 {
			m.cursorC--
		}
	case "right", "l":
		if m.cursorC < m.state.Size-1 {
			m.cursorC++
		}
	case "n":
		size := m.state.Size
		m.state = game.NewGameState(size)
		m.bot = searcher.NewMCTS(m.botOpts...)
		m.gen++
		m.thinking = false
		m.status = "New game. Your move."
	case "enter", " ":
		return m.placeStone()
	}
	return m, nil
}

func (m model) placeStone() (tea.Model, tea.Cmd) {
	if m.thinking || m.state.Winner != game.Empty {
		return m, nil
	}
	mv := game.Move{Row: m.cursorR, Col: m.cursorC}
	if !m.state.Play(mv) {
		m.status = fmt.Sprintf("Cell %s is taken.", mv)
		return m, nil
	}
	m.bot.NotifyMove(mv)

	if m.state.Winner != game.Empty {
		m.status = "You win!"
		return m, nil
	}
	m.thinking = true
	m.status = "Bot is thinking..."
	return m, findBotMove(m.bot, m.state, m.gen)
}

func (m model) handleBotMove(msg botMoveMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		// The search belongs to a game abandoned by "n".
		return m, nil
	}
	m.thinking = false
	if !m.state.Play(msg.move) {
		m.status = fmt.Sprintf("Bot returned illegal move %s.", msg.move)
		return m, nil
	}
	if m.state.Winner != game.Empty {
		m.status = fmt.Sprintf("Bot wins with %s.", msg.move)
		return m, nil
	}
	m.status = fmt.Sprintf("Bot played %s after %d episodes. Your move.", msg.move, msg.episodes)
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hex"))
	b.WriteString("\n\n")
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("arrows/hjkl move, enter places, n new game, q quits"))
	b.WriteString("\n")
	return b.String()
}

// renderBoard indents each row by one extra cell so the rhombus shape
// of the board, and with it the diagonal adjacency, is visible.
func (m model) renderBoard() string {
	var b strings.Builder
	for r := 0; r < m.state.Size; r++ {
		b.WriteString(strings.Repeat(" ", r))
		for c := 0; c < m.state.Size; c++ {
			cell := m.renderCell(r, c)
			if r == m.cursorR && c == m.cursorC {
				cell = cursorStyle.Render(cell)
			}
			b.WriteString(cell)
			if c < m.state.Size-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderCell(r, c int) string {
	var cell string
	switch m.state.At(r, c) {
	case game.Red:
		cell = redStyle.Render("R")
	case game.Blue:
		cell = blueStyle.Render("B")
	default:
		cell = emptyStyle.Render(".")
	}
	if m.state.HasLast && m.state.LastMove.Row == r && m.state.LastMove.Col == c {
		cell = lastStyle.Render(cell)
	}
	return cell
}
