package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/odvcencio/headless/pkg/backend"
	"github.com/odvcencio/headless/pkg/terminal"
)

// UpdateFunc handles a message and reports whether a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands that neither the screen nor the app
// consumed. Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures an App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	Logger         *slog.Logger
	MessageBuffer  int
	TickRate       time.Duration

	// OnStart runs on the loop goroutine after the backend and screen
	// are initialized, before the first message. Wire focus rings and
	// overlay hosts here.
	OnStart func(app *App)
}

// App runs a widget tree against a terminal backend. All state mutation
// happens on the single loop goroutine inside Run; other goroutines get
// onto it with Post or PostFunc.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	onStart        func(app *App)
	logger         *slog.Logger
	messages       chan Message
	tickRate       time.Duration

	running  bool
	dirty    bool
	renderMu sync.Mutex
}

// NewApp creates an App from config.
func NewApp(cfg AppConfig) *App {
	buffer := cfg.MessageBuffer
	if buffer <= 0 {
		buffer = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		onStart:        cfg.OnStart,
		logger:         logger,
		messages:       make(chan Message, buffer),
		tickRate:       cfg.TickRate,
	}
}

// Screen returns the active screen, once Run has initialized it.
func (a *App) Screen() *Screen {
	return a.screen
}

// Post sends a message to the event loop. Messages are dropped when the
// loop's buffer is full rather than blocking the producer.
func (a *App) Post(msg Message) {
	select {
	case a.messages <- msg:
	default:
		a.logger.Warn("message dropped, loop buffer full", "msg", fmt.Sprintf("%T", msg))
	}
}

// PostFunc marshals fn onto the loop goroutine. This is the scheduler's
// post target: delayed actions run here, serialized with all other
// mutation.
func (a *App) PostFunc(fn func()) {
	a.Post(FuncMsg{Fn: fn})
}

// Invalidate requests a render after the current message is processed.
func (a *App) Invalidate() {
	a.dirty = true
}

// Run starts the event loop until Quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return errors.New("backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.screen = NewScreen(w, h)
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.running = true
	a.dirty = true

	if a.onStart != nil {
		a.onStart(a)
	}

	go a.pollEvents()

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running {
		select {
		case <-ctx.Done():
			a.running = false
		case msg := <-a.messages:
			if a.update(a, msg) {
				a.dirty = true
			}
		case now := <-ticks:
			if a.update(a, TickMsg{Time: now}) {
				a.dirty = true
			}
		}

		if a.dirty {
			a.render()
			a.dirty = false
		}
	}

	return ctx.Err()
}

// Stop ends the loop after the current message.
func (a *App) Stop() {
	a.running = false
}

// DefaultUpdate routes input into the screen and handles leftover
// commands.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}

	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		return true
	case FuncMsg:
		if m.Fn != nil {
			m.Fn()
		}
		// Posted closures mutate interaction state; render to be safe.
		return true
	default:
		result := app.screen.HandleMessage(msg)
		dirty := result.Handled
		for _, cmd := range result.Commands {
			if app.handleCommand(cmd) {
				dirty = true
			}
		}
		return dirty
	}
}

func (a *App) handleCommand(cmd Command) bool {
	switch cmd.(type) {
	case Quit:
		a.running = false
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

func (a *App) pollEvents() {
	for a.running {
		ev := a.backend.PollEvent()
		if ev == nil {
			continue
		}
		switch e := ev.(type) {
		case terminal.KeyEvent:
			a.Post(KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift})
		case terminal.ResizeEvent:
			a.Post(ResizeMsg{Width: e.Width, Height: e.Height})
		case terminal.MouseEvent:
			a.Post(MouseMsg{X: e.X, Y: e.Y, Button: e.Button, Action: e.Action, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift})
		case terminal.PasteEvent:
			a.Post(PasteMsg{Text: e.Text})
		}
	}
}

func (a *App) render() {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()

	if a.screen == nil {
		return
	}

	a.screen.Render()
	buf := a.screen.Buffer()
	if buf.IsDirty() {
		w, h := buf.Size()
		if buf.DirtyCount() > w*h/2 {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					cell := buf.Get(x, y)
					a.backend.SetContent(x, y, cell.Rune, cell.Style)
				}
			}
		} else {
			buf.ForEachDirtyCell(func(x, y int, cell Cell) {
				a.backend.SetContent(x, y, cell.Rune, cell.Style)
			})
		}
		buf.ClearDirty()
	}
	a.backend.Show()
}
