package observability

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	bannerColor = color.New(color.FgHiCyan)
	resultColor = color.New(color.FgCyan)
	errorColor  = color.New(color.FgHiRed)
	promptColor = color.New(color.FgHiMagenta, color.Bold)
)

// ------------------------------------------------------------
// Utility
// ------------------------------------------------------------

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ------------------------------------------------------------
// Banner
// ------------------------------------------------------------

const banner = `
    __ __ ___    ___    __  ___
   / //_//   |  /   |  /  |/  /
  / ,<  / /| | / /| | / /|_/ /
 / /| |/ ___ |/ ___ |/ /  / /
/_/ |_/_/  |_/_/  |_/_/  /_/

      >> THINK. PICK A TOOL. WORK. <<
`

// PrintBanner writes the centred logo to w.
func PrintBanner(w io.Writer) {
	width := termWidth()
	for _, l := range strings.Split(banner, "\n") {
		padding := (width - len(l)) / 2
		if padding < 0 {
			padding = 0
		}
		bannerColor.Fprintln(w, strings.Repeat(" ", padding)+l)
	}
}

// PrintPrompt writes the REPL prompt without a trailing newline.
func PrintPrompt(w io.Writer, prompt string) {
	promptColor.Fprint(w, prompt)
}

// PrintResult writes an agent answer in cyan.
func PrintResult(w io.Writer, result string) {
	resultColor.Fprintln(w, result)
}

// PrintError writes a failed request in red.
func PrintError(w io.Writer, err error) {
	errorColor.Fprintln(w, fmt.Sprintf("[ FAIL ] %v", err))
}
