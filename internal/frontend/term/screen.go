package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/mfagan/keypad/internal/app"
	"github.com/mfagan/keypad/internal/grid"
	"github.com/mfagan/keypad/internal/notify"
	"github.com/mfagan/keypad/internal/stackview"
)

var (
	_ stackview.View  = (*Screen)(nil)
	_ notify.Notifier = (*Screen)(nil)
)

// Screen draws the calculator and pumps terminal events into the
// controller. It implements stackview.View and notify.Notifier.
type Screen struct {
	ts   tcell.Screen
	ctrl *app.Controller

	// mu guards the display state; notifications arrive from dispatcher
	// goroutines while the event loop owns the redraws.
	mu      sync.Mutex
	stack   []string
	message string
	prompt  string
	entry   string

	// geometry of the last draw, for mouse hit-testing
	gridTop int
	cellW   int
}

// NewScreen initializes the terminal surface.
func NewScreen(ctrl *app.Controller) (*Screen, error) {
	ts, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := ts.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	ts.EnableMouse()

	s := &Screen{ts: ts, ctrl: ctrl}
	ctrl.Box().OnRender = s.renderBox
	ctrl.Grids().OnGridChange = func(*grid.Grid) { s.wake() }
	return s, nil
}

// Refresh replaces the displayed stack lines. Top of stack is the last
// line.
func (s *Screen) Refresh(lines []string) {
	s.mu.Lock()
	s.stack = append([]string(nil), lines...)
	s.mu.Unlock()
	s.wake()
}

// Show displays a transient message.
func (s *Screen) Show(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
	s.wake()
}

// Hide clears the transient message.
func (s *Screen) Hide() {
	s.mu.Lock()
	s.message = ""
	s.mu.Unlock()
	s.wake()
}

func (s *Screen) renderBox(prompt, text string) {
	s.mu.Lock()
	s.prompt = prompt
	s.entry = text
	s.mu.Unlock()
	s.wake()
}

// wake nudges the event loop into a redraw. Safe from any goroutine.
func (s *Screen) wake() {
	_ = s.ts.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run pumps events until Ctrl-C. It owns the terminal; call Fini
// semantics are handled internally.
func (s *Screen) Run() error {
	defer s.ts.Fini()

	s.draw()
	for {
		switch ev := s.ts.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			if raw, ok := translate(ev); ok {
				s.ctrl.HandleRaw(raw)
			}
			s.draw()

		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				x, y := ev.Position()
				s.click(x, y)
				s.draw()
			}

		case *tcell.EventResize:
			s.ts.Sync()
			s.draw()

		case *tcell.EventInterrupt:
			s.draw()

		case nil:
			return nil
		}
	}
}

// click fires the cell under the pointer, if any.
func (s *Screen) click(x, y int) {
	s.mu.Lock()
	top, cellW := s.gridTop, s.cellW
	s.mu.Unlock()
	if cellW == 0 || y < top {
		return
	}

	g := s.ctrl.Grids().ActiveGrid()
	row := y - top
	col := x / cellW
	if row >= len(g.Rows) || col >= len(g.Rows[row]) {
		return
	}
	cell := g.Rows[row][col]
	if _, spacer := cell.(grid.SpacerCell); spacer {
		return
	}
	s.ctrl.Grids().FireCell(cell)
}

func (s *Screen) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ts.Clear()
	w, h := s.ts.Size()
	if w == 0 || h == 0 {
		return
	}

	g := s.ctrl.Grids().ActiveGrid()
	gridH := len(g.Rows)
	statusY := h - gridH - 2
	entryY := h - gridH - 1
	s.gridTop = h - gridH
	s.cellW = w / max(g.Columns, 1)

	// Stack, bottom-aligned above the status line.
	y := statusY - 1
	for i := len(s.stack) - 1; i >= 0 && y >= 0; i-- {
		s.puts(0, y, s.stack[i], tcell.StyleDefault)
		y--
	}

	if s.message != "" {
		s.puts(0, statusY, s.message, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	if s.prompt != "" {
		s.puts(0, entryY, s.prompt+" "+s.entry, tcell.StyleDefault.Bold(true))
	}

	for r, row := range g.Rows {
		for c, cell := range row {
			label := cell.Label()
			if label == "" {
				continue
			}
			if sc := cell.Shortcut(); sc != "" {
				label = fmt.Sprintf("%s [%s]", label, sc)
			}
			s.puts(c*s.cellW, s.gridTop+r, label, tcell.StyleDefault.Reverse(true))
		}
	}

	s.ts.Show()
}

func (s *Screen) puts(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.ts.SetContent(x, y, r, nil, style)
		x++
	}
}
