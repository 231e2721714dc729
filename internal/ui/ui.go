// Package ui renders interactive prompts.
package ui

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/terminal"
)

// ErrCancelled is returned when the user aborts a prompt with Esc or Ctrl+C.
var ErrCancelled = errors.New(messages.UICancelled)

// ErrNotInteractive is returned when a prompt is requested without a terminal.
var ErrNotInteractive = errors.New(messages.UIRequiresTerminal)

// Option is one choice in a Select or MultiSelect prompt.
type Option struct {
	Label string
	Value string
}

// Options builds options whose labels equal their values.
func Options(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: v, Value: v}
	}
	return opts
}

// UI defines the interaction methods.
type UI interface {
	Select(title string, options []Option, current *string) error
	MultiSelect(title string, options []Option, selected *[]string) error
	Confirm(title string, value *bool) error
	Note(title string, body string) error
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
	output     io.Writer
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI drawing on stderr.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive, output: os.Stderr}
}

func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return ErrNotInteractive
}

// keyMap makes Esc and Ctrl+C both abort the form.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// interruptFilter turns InterruptMsg into QuitMsg so the renderer clears the form.
func interruptFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}

func (ui *HuhUI) runForm(field huh.Field) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}
	output := ui.output
	if output == nil {
		output = os.Stderr
	}
	form := huh.NewForm(huh.NewGroup(field)).
		WithKeyMap(keyMap()).
		WithProgramOptions(
			tea.WithOutput(output),
			tea.WithFilter(interruptFilter),
		)
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

func huhOptions(options []Option) []huh.Option[string] {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, o.Value)
	}
	return opts
}

// Select renders a single-choice prompt.
func (ui *HuhUI) Select(title string, options []Option, current *string) error {
	return ui.runForm(huh.NewSelect[string]().
		Title(title).
		Options(huhOptions(options)...).
		Value(current))
}

// MultiSelect renders a multi-choice prompt.
func (ui *HuhUI) MultiSelect(title string, options []Option, selected *[]string) error {
	return ui.runForm(huh.NewMultiSelect[string]().
		Title(title).
		Filterable(false).
		Options(huhOptions(options)...).
		Value(selected))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewConfirm().
		Title(title).
		Value(value))
}

// Note renders an informational screen.
func (ui *HuhUI) Note(title string, body string) error {
	return ui.runForm(huh.NewNote().
		Title(title).
		Description(body))
}
