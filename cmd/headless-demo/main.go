// headless-demo is a small interactive showcase of the toolkit: a form
// with buttons, a checkbox, a toggle, a radio group, and a hover-intent
// menu, running against a real terminal.
//
// Keys: Tab/Shift-Tab move focus, Enter/Space activate, arrows steer
// toggles and radio groups, Escape closes the menu, q quits.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	tcellbackend "github.com/odvcencio/headless/pkg/backend/tcell"
	"github.com/odvcencio/headless/pkg/focus"
	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/runtime"
	"github.com/odvcencio/headless/pkg/schedule"
	"github.com/odvcencio/headless/pkg/terminal"
	"github.com/odvcencio/headless/pkg/theme"
	"github.com/odvcencio/headless/pkg/widget"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFB74D"}).
			Bold(true)
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true)
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("headless-demo: "+err.Error()))
		os.Exit(1)
	}
}

// session is the application state the widgets mutate.
type session struct {
	clicks   int
	shipping string
	notify   bool
	dark     bool
	lastMenu string
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The terminal is owned by the TUI; logs go to a file.
	logFile, err := os.CreateTemp("", "headless-demo-*.log")
	if err != nil {
		return fmt.Errorf("create log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, nil))

	be, err := tcellbackend.New()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	var state session
	form := newForm(&state)

	app := runtime.NewApp(runtime.AppConfig{
		Backend: be,
		Root:    form,
		Logger:  logger,
		OnStart: func(app *runtime.App) { form.start(app) },
	})

	logger.Info("starting", "pid", os.Getpid(), "log", logFile.Name())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.Run(ctx) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	printSummary(&state)
	return nil
}

func printSummary(s *session) {
	fmt.Println(titleStyle.Render("headless-demo session"))
	fmt.Printf("  button clicks  %d\n", s.clicks)
	fmt.Printf("  shipping       %s\n", orDash(s.shipping))
	fmt.Printf("  notifications  %v\n", s.notify)
	fmt.Printf("  dark mode      %v\n", s.dark)
	fmt.Printf("  last menu pick %s\n", orDash(s.lastMenu))
	fmt.Println(dimStyle.Render("  state outlives the TUI; the widgets are headless"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// form is the demo's root widget: a fixed vertical arrangement of the
// showcase widgets plus key handling for focus traversal and quit.
type form struct {
	state  *session
	th     *theme.Theme
	bounds geometry.Rect

	menu     *widget.Menu
	button   *widget.Button
	disabled *widget.Button
	notify   *widget.Checkbox
	dark     *widget.Toggle
	shipping *widget.RadioGroup

	rows []runtime.Widget
	ring *focus.Ring
}

func newForm(state *session) *form {
	f := &form{state: state, th: theme.DefaultTheme()}

	f.disabled = widget.NewButton(widget.ButtonConfig{Label: "Disabled"})
	f.disabled.SetEnabled(false)

	f.notify = widget.NewCheckbox("Email notifications", func(on bool) { state.notify = on })
	f.dark = widget.NewToggle("Dark mode", func(on bool) { state.dark = on })

	options := []widget.RadioOption{
		{Label: "Standard shipping"},
		{Label: "Express shipping"},
		{Label: "Pigeon", Disabled: true},
		{Label: "Overnight shipping"},
	}
	labels := []string{"standard", "express", "pigeon", "overnight"}
	f.shipping = widget.NewRadioGroup(options, func(i int) { state.shipping = labels[i] })

	return f
}

// start finishes wiring once the app's screen exists: the menu needs the
// screen as its layer host, the button needs a scheduler posting onto
// the loop, and everything joins the focus ring.
func (f *form) start(app *runtime.App) {
	sched := schedule.New(schedule.Config{Post: app.PostFunc})

	f.menu = widget.NewMenu(widget.MenuConfig{
		Label:     "File",
		Host:      app.Screen(),
		Scheduler: sched,
		Items: []widget.MenuItem{
			{Label: "New", OnSelect: func() { f.state.lastMenu = "New" }},
			{Label: "Open", OnSelect: func() { f.state.lastMenu = "Open" }},
			{Label: "Export", Disabled: true},
			{Label: "Save", OnSelect: func() { f.state.lastMenu = "Save" }},
		},
	})
	f.button = widget.NewButton(widget.ButtonConfig{
		Label:     "Click me",
		OnClick:   func() { f.state.clicks++ },
		Scheduler: sched,
	})

	f.rows = []runtime.Widget{f.menu, f.button, f.disabled, f.notify, f.dark, f.shipping}

	f.ring = app.Screen().FocusRing()
	f.ring.Add(f.menu)
	f.ring.Add(f.button)
	f.ring.Add(f.disabled)
	f.ring.Add(f.notify)
	f.ring.Add(f.dark)
	f.ring.Add(f.shipping)

	// Relayout now that the rows exist.
	f.Layout(f.bounds)
	app.Invalidate()
}

func (f *form) Measure(c runtime.Constraints) geometry.Size {
	return geometry.Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

func (f *form) Layout(bounds geometry.Rect) {
	f.bounds = bounds
	y := bounds.Y + 2
	for _, row := range f.rows {
		size := row.Measure(runtime.Loose(bounds.Width-4, bounds.Height))
		row.Layout(geometry.NewRect(bounds.X+2, y, size.Width, size.Height))
		y += size.Height + 1
	}
}

func (f *form) Bounds() geometry.Rect {
	return f.bounds
}

func (f *form) Render(ctx runtime.RenderContext) {
	ctx.Buffer.Fill(ctx.Bounds, ' ', f.th.Background)
	ctx.Buffer.SetString(ctx.Bounds.X+2, ctx.Bounds.Y, "headless-demo", f.th.Accent)
	hint := "tab: focus   enter/space: activate   q: quit"
	ctx.Buffer.SetString(ctx.Bounds.X+2, ctx.Bounds.Y+ctx.Bounds.Height-1, hint, f.th.TextMuted)

	for _, row := range f.rows {
		row.Render(ctx.Sub(row.Bounds()))
	}
}

func (f *form) HandleMessage(msg runtime.Message) runtime.HandleResult {
	// The focused widget gets first refusal.
	if f.ring != nil {
		if w, ok := f.ring.Current().(runtime.Widget); ok && w != nil {
			if result := w.HandleMessage(msg); result.Handled {
				return result
			}
		}
	}

	if key, ok := msg.(runtime.KeyMsg); ok {
		switch {
		case key.Key == terminal.KeyTab:
			return runtime.WithCommands(runtime.FocusNext{})
		case key.Key == terminal.KeyBacktab:
			return runtime.WithCommands(runtime.FocusPrev{})
		case key.Key == terminal.KeyRune && key.Rune == 'q':
			return runtime.WithCommands(runtime.Quit{})
		}
	}
	return runtime.Unhandled()
}
