package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/lifecycle"
	"github.com/go-drift/carousel/pkg/loop"
)

// terminalView is a carousel.PageView that prints the page being shown.
// Silent moves are marked so padding corrections are visible when they
// happen.
type terminalView struct {
	mu  sync.Mutex
	out io.Writer
	seq loop.Sequence[string]
}

func newTerminalView(out io.Writer, items []string) *terminalView {
	return &terminalView{out: out, seq: loop.Pad(items)}
}

func (v *terminalView) SetIndex(index int, animated bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	item, ok := v.seq.At(index)
	if !ok {
		fmt.Fprintf(v.out, "[%d] (empty)\n", index)
		return
	}
	move := "->"
	if !animated {
		move = "=="
	}
	fmt.Fprintf(v.out, "%s %d/%d %s  [%s %d]\n",
		move, v.seq.Real(index)+1, v.seq.RealLen(), item, v.seq.Slot(index), index)
}

// Session inputs read from stdin by the run command.
const controlHelp = `Commands:
  next, prev        Swipe one page
  goto N            Swipe to padded index N
  drag X            Hold the page at offset X (pauses autoplay)
  release           Let go of the page
  active, inactive, background
                    Report an app state
  show, hide        Report the view appearing or disappearing
  state             Print the current state
  help              Show this help`

// control applies one line of user input to c. App states go through app,
// which forwards changes to every subscribed carousel. It returns false for
// input it does not understand.
func control(c *carousel.Carousel[string, string], app *lifecycle.Service, out io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "next":
		c.PageChanged(c.Snapshot().Index + 1)
	case "prev":
		c.PageChanged(c.Snapshot().Index - 1)
	case "goto":
		if len(fields) != 2 {
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return false
		}
		c.PageChanged(n)
	case "drag":
		if len(fields) != 2 {
			return false
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return false
		}
		c.OffsetChanged(x)
	case "release":
		c.OffsetChanged(0)
	case "active", "inactive", "background":
		state, err := lifecycle.ParseAppState(cmd)
		if err != nil {
			return false
		}
		app.Update(state)
	case "show":
		c.ViewWillAppear()
	case "hide":
		c.ViewWillDisappear()
	case "state":
		st := c.Snapshot()
		fmt.Fprintf(out, "index=%d real=%d slot=%s app=%s running=%t dragging=%t scale=%t pending=%t\n",
			st.Index, st.RealIndex, st.SlotName, app.State(), st.Running, st.Dragging, st.ScaleEnabled, st.Pending)
	case "help":
		fmt.Fprintln(out, controlHelp)
	default:
		return false
	}
	return true
}
