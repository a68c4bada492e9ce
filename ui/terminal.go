package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

// TerminalUI writes coloured output to stdout. Colours are enabled
// automatically when stdout is a real terminal.
type TerminalUI struct {
	out io.Writer
	au  aurora.Aurora
}

func NewTerminalUI() *TerminalUI {
	colorsEnabled := term.IsTerminal(int(os.Stdout.Fd()))
	return &TerminalUI{
		out: os.Stdout,
		au:  aurora.NewAurora(colorsEnabled),
	}
}

func (u *TerminalUI) Info(format string, args ...any) {
	fmt.Fprintf(u.out, format+"\n", args...)
}

func (u *TerminalUI) Success(format string, args ...any) {
	fmt.Fprintf(u.out, "%s\n", u.au.Green(fmt.Sprintf(format, args...)))
}

func (u *TerminalUI) Warn(format string, args ...any) {
	fmt.Fprintf(u.out, "%s\n", u.au.Yellow(fmt.Sprintf(format, args...)))
}

func (u *TerminalUI) Error(format string, args ...any) {
	fmt.Fprintf(u.out, "%s\n", u.au.Red(fmt.Sprintf(format, args...)))
}

// Spinner starts an animated spinner with msg and returns a stop function.
// On non-terminal outputs the spinner is a no-op and only the message is
// printed once.
func (u *TerminalUI) Spinner(msg string) func() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		u.Info("%s", msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		fmt.Fprint(u.out, "\r")
	}
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	cardKeyStyle   = lipgloss.NewStyle().Faint(true).Width(14)
)

// Card renders a titled key/value card, used for receipts.
func (u *TerminalUI) Card(title string, rows [][2]string) {
	content := cardTitleStyle.Render(title) + "\n"
	for _, row := range rows {
		content += fmt.Sprintf("%s %s\n", cardKeyStyle.Render(row[0]), row[1])
	}
	fmt.Fprintln(u.out, cardStyle.Render(content))
}
