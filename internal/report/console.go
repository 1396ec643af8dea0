// Package report renders scan results to the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/web3guy0/tribot/internal/triangle"
)

// ANSI escape codes
const (
	clearScreen = "\033[2J\033[H"

	reset   = "\033[0m"
	bold    = "\033[1m"
	fgRed   = "\033[31m"
	fgGreen = "\033[32m"
	fgCyan  = "\033[36m"
)

// Console renders each cycle's ranked routes as a top-N table,
// clearing the screen between cycles like a live dashboard.
type Console struct {
	out   io.Writer
	top   int
	color bool
}

// NewConsole creates a renderer writing to stdout.
func NewConsole(top int) *Console {
	return &Console{out: os.Stdout, top: top, color: true}
}

// NewConsoleWriter creates a renderer against a custom writer, colors
// off (tests, piped output).
func NewConsoleWriter(w io.Writer, top int) *Console {
	return &Console{out: w, top: top}
}

// Report implements scanner.Reporter.
func (c *Console) Report(opps []triangle.Opportunity) {
	if c.color {
		fmt.Fprint(c.out, clearScreen)
	}

	now := time.Now().Format("15:04:05")
	fmt.Fprintf(c.out, "%s[%s] Triangular arbitrage scan%s\n\n", c.paint(bold+fgCyan), now, c.paint(reset))

	if len(opps) == 0 {
		fmt.Fprintf(c.out, "%sNo opportunities found.%s\n", c.paint(fgRed), c.paint(reset))
		return
	}

	n := len(opps)
	if c.top > 0 && n > c.top {
		n = c.top
	}

	fmt.Fprintf(c.out, "Top %d routes:\n", n)
	for i, o := range opps[:n] {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, o.Route)
		fmt.Fprintf(c.out, "   %sprofit %s USDT%s | spread %s%% | liquidity %s USDT\n\n",
			c.paint(fgGreen),
			o.Profit.StringFixed(2),
			c.paint(reset),
			o.Pct.StringFixed(2),
			o.Liquidity.StringFixed(0),
		)
	}
}

func (c *Console) paint(code string) string {
	if !c.color {
		return ""
	}
	return code
}
