package debugger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/vic/ivm/pkg/host"
	"github.com/vic/ivm/pkg/reader"
)

// defaultLineWidth caps tree lines when stdout isn't a real terminal (a
// pipe, a log file) and term.GetSize has nothing to report.
const defaultLineWidth = 100

// lineWidth returns the current terminal width, falling back to
// defaultLineWidth when stdout isn't a TTY.
func lineWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultLineWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultLineWidth
	}
	return w
}

// truncate clips s to width, marking the cut with an ellipsis so a huge
// readback (a deep fib call tree mid-reduction, say) doesn't flood the
// console.
func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}

// Console is a line-oriented REPL over a running Host: step one interaction
// at a time, print the active queues as trees, and run the find_free_wires
// diagnostic on demand.
type Console struct {
	Host    *host.Host
	Tracker *Tracker
	out     io.Writer
}

// NewConsole returns a Console over h, attaching a fresh Tracker so
// the "stack" command has something to show.
func NewConsole(h *host.Host, out io.Writer) *Console {
	t := NewTracker()
	t.Attach(h)
	return &Console{Host: h, Tracker: t, out: out}
}

var commands = []string{"step", "run", "pairs", "free", "stack", "quit", "help"}

func completer(line string) []string {
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

// Run drives the console's prompt loop until "quit" or EOF.
func (c *Console) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer)

	for {
		input, err := line.Prompt("ivm> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if done := c.dispatch(input); done {
			return nil
		}
	}
}

func (c *Console) dispatch(input string) (quit bool) {
	fields := strings.Fields(input)
	switch fields[0] {
	case "quit", "q":
		return true
	case "help", "h", "?":
		fmt.Fprintln(c.out, "step [n] | run | pairs | free | stack | quit")
	case "step", "s":
		n := 1
		if len(fields) > 1 {
			if v, err := strconv.Atoi(fields[1]); err == nil {
				n = v
			}
		}
		for i := 0; i < n; i++ {
			if !c.Host.VM.Step() {
				fmt.Fprintln(c.out, "normalized")
				break
			}
		}
	case "run":
		if err := c.Host.Execute(); err != nil {
			fmt.Fprintln(c.out, "error:", err)
		} else {
			fmt.Fprintln(c.out, "normalized")
		}
	case "pairs":
		c.printPairs()
	case "free":
		c.printFreeWires()
	case "stack":
		c.printStack()
	default:
		fmt.Fprintf(c.out, "unknown command %q (try 'help')\n", fields[0])
	}
	return false
}

func (c *Console) printPairs() {
	r := reader.New()
	pairs := c.Host.VM.ActivePairs()
	if len(pairs) == 0 {
		fmt.Fprintln(c.out, "(no pending interactions)")
		return
	}
	width := lineWidth()
	for _, p := range pairs {
		line := fmt.Sprintf("%s = %s", r.Read(p[0]), r.Read(p[1]))
		fmt.Fprintln(c.out, truncate(line, width))
	}
}

func (c *Console) printFreeWires() {
	free := FreeWires(c.Host.VM)
	fmt.Fprintf(c.out, "%d free wire(s)\n", len(free))
}

func (c *Console) printStack() {
	if len(c.Tracker.stack) == 0 {
		fmt.Fprintln(c.out, "(interaction stack empty)")
		return
	}
	for i := len(c.Tracker.stack) - 1; i >= 0; i-- {
		f := c.Tracker.stack[i]
		fmt.Fprintf(c.out, "%s  %s = %s\n", f.Rule, f.A, f.B)
	}
}
