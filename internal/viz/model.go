package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/session"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	stripWidth      = 60
	historyCapacity = 240
	gridStep        = 100
)

type TickMsg time.Time

// ConfigMsg carries a reloaded configuration into the program.
type ConfigMsg struct {
	Config *config.Config
}

// ErrMsg surfaces a background error on the message line.
type ErrMsg struct {
	Err error
}

// Model is the bubbletea program around one authoring session.
type Model struct {
	sess     *session.Session
	interval time.Duration
	canvas   *Canvas
	strip    strip
	current  param.Kind
	heights  []float64
	message  string
	theme    int
	styles   styles
	showHelp bool
}

func NewModel(sess *session.Session) Model {
	interval := sess.Config().Interval()
	return Model{
		sess:     sess,
		interval: interval,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		strip:    newStrip(int(time.Second/interval), stripWidth),
		heights:  make([]float64, 0, historyCapacity),
		styles:   newStyles(Themes[0]),
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

// Update handles input events and drives playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		return m.handleKey(msg)
	case TickMsg:
		if m.sess.Tick() {
			m.recordHeight()
		}
		m.strip.follow(m.sess.Frame())
		return m, tick(m.interval)
	case ConfigMsg:
		if err := m.sess.Reconfigure(msg.Config); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.interval = msg.Config.Interval()
		m.strip.retune(int(time.Second / m.interval))
		m.message = "config reloaded"
	case ErrMsg:
		m.message = msg.Err.Error()
	case tea.WindowSizeMsg:
		m.canvas = NewCanvas(max(20, min(canvasWidth, msg.Width-50)), max(8, min(canvasHeight, msg.Height-param.Count-6)))
		m.strip.width = max(20, msg.Width-16)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.sess.Toggle()
	case "enter":
		m.sess.PlayFromStart()
		m.heights = m.heights[:0]
	case "left", "h":
		m.sess.StepFrame(-1)
	case "right", "l":
		m.sess.StepFrame(1)
	case "shift+left", "H":
		m.sess.StepFrame(-10)
	case "shift+right", "L":
		m.sess.StepFrame(10)
	case "[":
		m.jumpKey(-1)
	case "]":
		m.jumpKey(1)
	case "tab":
		m.current = param.Kind((int(m.current) + 1) % param.Count)
	case "shift+tab":
		m.current = param.Kind((int(m.current) + param.Count - 1) % param.Count)
	case "up", "k":
		m.adjust(1)
	case "down", "j":
		m.adjust(-1)
	case "r":
		m.report(m.sess.RecordParam(m.current), fmt.Sprintf("recorded %s at frame %d", m.current, m.sess.Frame()))
	case "R":
		m.report(m.sess.RecordAll(), fmt.Sprintf("recorded all at frame %d", m.sess.Frame()))
	case "s":
		if !m.sess.Select(m.current, m.sess.Frame()) {
			m.message = fmt.Sprintf("no %s key at frame %d", m.current, m.sess.Frame())
		}
	case "esc":
		m.sess.ClearSelection()
	case "x", "delete", "backspace":
		m.report(m.sess.DeleteSelected(), "key deleted")
	case "c":
		m.report(m.sess.ClearAll(), "cleared keys after frame 0")
	case "p":
		m.report(m.sess.RecordPose(), fmt.Sprintf("pose stored at frame %d", m.sess.Frame()))
	case "a":
		ok, err := m.sess.ApplyPose()
		if err == nil && !ok {
			err = errors.New("no poses stored")
		}
		m.report(err, "pose applied")
	case "0", "home":
		m.sess.Reset()
		m.heights = m.heights[:0]
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = newStyles(Themes[m.theme])
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = ok
}

// adjust moves the current parameter by one bounds step on the live body.
func (m *Model) adjust(dir float64) {
	b := m.sess.Bounds(m.current)
	v := b.Snap(m.current.ToDisplay(m.sess.Value(m.current)) + dir*b.Step)
	if _, err := m.sess.SetParam(m.current, v); err != nil {
		m.message = err.Error()
	}
}

// jumpKey seeks to the neighbouring key of the current parameter and
// selects it.
func (m *Model) jumpKey(dir int) {
	prev, next := m.sess.Store().Neighbors(m.current, m.sess.Frame())
	target := next
	if dir < 0 {
		target = prev
	}
	if target < 0 || target > m.sess.MaxFrame() {
		m.message = fmt.Sprintf("no further %s keys", m.current)
		return
	}
	m.sess.Seek(target)
	m.sess.Select(m.current, target)
}

func (m *Model) recordHeight() {
	st := m.sess.State()
	m.heights = append(m.heights, m.sess.Arena().Height-st.Bottom())
	if len(m.heights) > historyCapacity {
		m.heights = m.heights[1:]
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles
	state := m.sess.State()

	drawScene(m.canvas, m.sess.Arena(), m.sess.Corners(), gridStep)
	canvasView := st.body.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.title.Render("BOXSIM") + "\n")
	status := "PAUSED"
	if m.sess.Playing() {
		status = "PLAYING"
	}
	s.WriteString(st.playhead.Render(status) + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d / %d", m.sess.Frame(), m.sess.MaxFrame()))
	row("Position", fmt.Sprintf("(%.1f, %.1f)", state.X, state.Y))
	row("Velocity", fmt.Sprintf("(%.2f, %.2f)", state.VX, state.VY))
	row("Rotation", fmt.Sprintf("%.1f°", param.Orientation.ToDisplay(state.Orientation)))
	row("Angular Vel", fmt.Sprintf("%.3f", state.AngularVelocity))
	row("Contact", m.sess.LastContact().String())
	s.WriteString("\n")
	row(m.current.Label(), fmt.Sprintf("%.3f", m.current.ToDisplay(m.sess.Value(m.current))))
	if sel, ok := m.sess.Selection(); ok {
		row("Selected", fmt.Sprintf("%s @ %d", sel.Kind, sel.Frame))
	}

	if len(m.heights) > 1 {
		chart := asciigraph.Plot(m.heights, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Height"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + st.warning.Render(m.message) + "\n")
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
	view := top + "\n" + m.strip.render(m.sess.Store(), m.current, m.sess.Frame(), m.sess.MaxFrame(), st)
	if m.showHelp {
		return view + st.muted.Render(helpText)
	}
	return view + st.muted.Render("SP:Play ←→:Step Tab:Param ↑↓:Adjust r/R:Record s:Select x:Delete ?:Help Q:Quit")
}

const helpText = `
Space   play/pause          Enter  play from frame 0
← → h l step one frame      H L    step ten frames
[ ]     previous/next key   Tab    next parameter
↑ ↓ k j adjust parameter    r R    record one/all
s       select key          x      delete selected
c       clear keys          p a    record/apply pose
0       reset to frame 0    t      cycle theme
q       quit`

// Run starts the program. Reloaded configs arriving on reloads are applied
// while it runs.
func Run(sess *session.Session, reloads <-chan *config.Config, errs <-chan error) error {
	p := tea.NewProgram(NewModel(sess), tea.WithAltScreen())
	go func() {
		for reloads != nil || errs != nil {
			select {
			case cfg, ok := <-reloads:
				if !ok {
					reloads = nil
					continue
				}
				p.Send(ConfigMsg{Config: cfg})
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				p.Send(ErrMsg{Err: err})
			}
		}
	}()
	_, err := p.Run()
	return err
}
