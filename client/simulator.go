package client

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/zllovesuki/KeybowManager/controller"
	"github.com/zllovesuki/KeybowManager/keymap"
	"github.com/zllovesuki/KeybowManager/system/keyboard"
	"github.com/zllovesuki/KeybowManager/system/keypad"
	"github.com/zllovesuki/KeybowManager/util"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// DefaultHoldTimeout outlasts the usual auto-repeat delays (X11 waits 660ms
// before the first repeat)
const DefaultHoldTimeout = time.Millisecond * 750

// FrameInterval caps how often the simulated keypad repaints
const FrameInterval = time.Millisecond * 33

// Bindings lists the terminal key of every keypad index, row by row
const Bindings = "1234qwerasdfzxcv"

// Simulator renders the keypad in a terminal. It is a keypad.Device for the
// controller and the io.Writer the HID reports are sent to.
type Simulator struct {
	// Terminals only deliver key repeats, never key up. A key is considered
	// released once no repeat arrived for HoldTimeout.
	HoldTimeout time.Duration

	keymap keymap.Keymap

	app        *tview.Application
	container  *tview.Flex
	grid       *tview.Table
	reportView *tview.TextView
	infoView   *tview.TextView
	frame      *tview.Frame

	holds [keypad.NumKeys]chan<- interface{}

	mu      sync.Mutex
	state   uint16
	leds    [keypad.NumKeys]keypad.Color
	pending bool
	closed  bool
}

var _ keypad.Device = &Simulator{}

func NewInterface(m keymap.Keymap) *Simulator {
	return &Simulator{
		HoldTimeout: DefaultHoldTimeout,
		keymap:      m,
		app:         tview.NewApplication(),
		container:   tview.NewFlex(),
		grid:        tview.NewTable(),
		reportView:  tview.NewTextView(),
		infoView:    tview.NewTextView(),
	}
}

// Index returns the keypad index bound to r, or -1
func Index(r rune) int {
	return strings.IndexRune(Bindings, r)
}

func (s *Simulator) setup(haltCtx context.Context, cancel context.CancelFunc) {
	s.grid.SetBorders(true).SetBorder(true).SetTitle(" Keypad ")

	s.reportView.
		SetScrollable(true).
		SetChangedFunc(func() {
			s.reportView.ScrollToEnd()
			s.app.Draw()
		}).
		SetBorder(true).
		SetTitle(" HID Reports ")

	s.infoView.SetBorder(true).SetTitle(" Keymap ")
	for i, action := range s.keymap {
		fmt.Fprintf(s.infoView, "%c  %2d  %s\n", Bindings[i], i, action)
	}

	s.container.
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(s.grid, 0, 3, false).
			AddItem(s.infoView, 0, 2, false), 0, 5, false).
		AddItem(s.reportView, 0, 4, false)

	s.frame = tview.NewFrame(s.container).
		AddText("KeybowManager simulator: hold 1234/qwer/asdf/zxcv to press, Esc to quit", true, tview.AlignLeft, tcell.ColorWhite)

	hold := s.HoldTimeout
	if hold <= 0 {
		hold = DefaultHoldTimeout
	}
	for i := range s.holds {
		in, out := util.Debounce(haltCtx, hold)
		s.holds[i] = in
		go s.releaseAfterHold(haltCtx, i, out)
	}

	s.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			cancel()
			return nil
		case tcell.KeyRune:
			i := Index(event.Rune())
			if i < 0 {
				return event
			}
			s.press(i)
			select {
			case s.holds[i] <- struct{}{}:
			case <-haltCtx.Done():
			}
			return nil
		}
		return event
	})

	s.drawGrid()
	s.app.SetRoot(s.frame, true)
}

func (s *Simulator) press(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state |= 1 << uint(i)
}

func (s *Simulator) releaseAfterHold(haltCtx context.Context, i int, clean <-chan util.DebounceEvent) {
	for {
		select {
		case <-clean:
			s.mu.Lock()
			s.state &^= 1 << uint(i)
			s.mu.Unlock()
		case <-haltCtx.Done():
			return
		}
	}
}

// State satisfies keypad.Device
func (s *Simulator) State() (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

// Show satisfies keypad.Device. Frames arriving faster than the screen repaints are coalesced.
func (s *Simulator) Show(leds [keypad.NumKeys]keypad.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leds = leds
	if s.pending || s.closed {
		return nil
	}
	s.pending = true
	go s.app.QueueUpdateDraw(s.drawGrid)
	return nil
}

// Close satisfies keypad.Device
func (s *Simulator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Write decodes a HID report and appends it to the report pane
func (s *Simulator) Write(b []byte) (int, error) {
	r, err := keyboard.ParseReport(b)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(s.reportView, "%s  %s\n", time.Now().Format("15:04:05.000"), r)
	return len(b), nil
}

func (s *Simulator) drawGrid() {
	s.mu.Lock()
	leds := s.leds
	state := s.state
	s.pending = false
	s.mu.Unlock()

	for i, c := range leds {
		label := fmt.Sprintf(" %c ", Bindings[i])
		if state&(1<<uint(i)) != 0 {
			label = fmt.Sprintf(">%c<", Bindings[i])
		}
		cell := tview.NewTableCell(label).
			SetAlign(tview.AlignCenter).
			SetExpansion(1).
			SetTextColor(contrast(c)).
			SetBackgroundColor(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		s.grid.SetCell(i/4, i%4, cell)
	}
}

func contrast(c keypad.Color) tcell.Color {
	if int(c.R)*299+int(c.G)*587+int(c.B)*114 > 128000 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

// Serve runs the simulator and a controller bound to it until haltCtx is done or Esc is pressed
func (s *Simulator) Serve(haltCtx context.Context) error {
	ctx, cancel := context.WithCancel(haltCtx)
	defer cancel()

	s.setup(ctx, cancel)

	pad := keypad.New(s)
	control, err := controller.New(controller.Config{
		Keypad:        pad,
		Keyboard:      keyboard.NewKeyboard(s),
		Consumer:      keyboard.NewConsumerControl(s),
		Keymap:        s.keymap,
		FrameInterval: FrameInterval,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		err := control.Run(ctx)
		if err != nil {
			log.Printf("[simulator] %+v\n", err)
		}
		errCh <- err
		cancel()
	}()

	go func() {
		<-ctx.Done()
		// no more draws are queued once the application loop is gone
		pad.Close()
		s.app.Stop()
	}()

	if err := s.app.Run(); err != nil {
		return err
	}
	cancel()
	return <-errCh
}
