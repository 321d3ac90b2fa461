package microfiche

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownCommand is returned for command names or kinds the engine does
// not understand.
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind selects what a Command does.
type CommandKind uint8

const (
	CommandPrev         CommandKind = iota // one screenful back
	CommandNext                            // one screenful forward
	CommandShiftByPages                    // Pages screenfuls, signed
	CommandSlideToPage                     // animate to Page
	CommandSlideToPoint                    // animate to the boundary nearest Point
	CommandJumpToPage                      // present Page at once
	CommandJumpToPoint                     // present the boundary nearest Point at once
	CommandAutoplay                        // advance every Interval; zero stops
)

var commandNames = [...]string{
	CommandPrev:         "prev",
	CommandNext:         "next",
	CommandShiftByPages: "shift-by-pages",
	CommandSlideToPage:  "slide-to-page",
	CommandSlideToPoint: "slide-to-point",
	CommandJumpToPage:   "jump-to-page",
	CommandJumpToPoint:  "jump-to-point",
	CommandAutoplay:     "autoplay",
}

// String returns the command name used by ParseCommand.
func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return fmt.Sprintf("command(%d)", k)
}

// Command is a request that can be queued, scripted or sent from a control.
// Only the field matching Kind is read.
type Command struct {
	Kind     CommandKind
	Pages    int
	Page     int
	Point    float64
	Interval time.Duration
}

// ShiftCommand returns a command that moves n screenfuls.
func ShiftCommand(n int) Command { return Command{Kind: CommandShiftByPages, Pages: n} }

// SlideToPageCommand returns a command that animates to page p.
func SlideToPageCommand(p int) Command { return Command{Kind: CommandSlideToPage, Page: p} }

// SlideToPointCommand returns a command that animates to offset x.
func SlideToPointCommand(x float64) Command { return Command{Kind: CommandSlideToPoint, Point: x} }

// JumpToPageCommand returns a command that jumps to page p.
func JumpToPageCommand(p int) Command { return Command{Kind: CommandJumpToPage, Page: p} }

// JumpToPointCommand returns a command that jumps to offset x.
func JumpToPointCommand(x float64) Command { return Command{Kind: CommandJumpToPoint, Point: x} }

// AutoplayCommand returns a command that sets the autoplay interval.
func AutoplayCommand(d time.Duration) Command { return Command{Kind: CommandAutoplay, Interval: d} }

// String formats the command so that ParseCommand accepts it.
func (c Command) String() string {
	switch c.Kind {
	case CommandShiftByPages:
		return fmt.Sprintf("%s %d", c.Kind, c.Pages)
	case CommandSlideToPage, CommandJumpToPage:
		return fmt.Sprintf("%s %d", c.Kind, c.Page)
	case CommandSlideToPoint, CommandJumpToPoint:
		return fmt.Sprintf("%s %s", c.Kind, strconv.FormatFloat(c.Point, 'f', -1, 64))
	case CommandAutoplay:
		return fmt.Sprintf("%s %s", c.Kind, c.Interval)
	default:
		return c.Kind.String()
	}
}

// Run executes commands in order. It stops at the first command whose kind
// is not known.
func (e *Engine) Run(cmds ...Command) error {
	for _, c := range cmds {
		switch c.Kind {
		case CommandPrev:
			e.Prev()
		case CommandNext:
			e.Next()
		case CommandShiftByPages:
			e.ShiftByPages(c.Pages, 0)
		case CommandSlideToPage:
			e.SlideToPage(c.Page)
		case CommandSlideToPoint:
			e.SlideToPoint(c.Point)
		case CommandJumpToPage:
			e.JumpToPage(c.Page)
		case CommandJumpToPoint:
			e.JumpToPoint(c.Point)
		case CommandAutoplay:
			e.Autoplay(c.Interval)
		default:
			return fmt.Errorf("run %v: %w", c.Kind, ErrUnknownCommand)
		}
	}
	return nil
}

// RunLines parses and runs text commands in order. A line that fails is
// skipped and the rest still run; the failures are returned joined.
func (e *Engine) RunLines(lines ...string) error {
	var errs []error
	for _, line := range lines {
		cmd, err := ParseCommand(line)
		if err == nil {
			err = e.Run(cmd)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// normalizeName folds "slideToPage", "slide_to_page" and "Slide-To-Page"
// into one key.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer("-", "", "_", "").Replace(s)
}

var commandsByName = func() map[string]CommandKind {
	m := make(map[string]CommandKind, len(commandNames)+1)
	for k, name := range commandNames {
		m[normalizeName(name)] = CommandKind(k)
	}
	m["shift"] = CommandShiftByPages
	return m
}()

// ParseCommand parses the text form of a command: a name followed by at most
// one argument. Names are case-insensitive and may be written in kebab,
// snake or camel case ("slide-to-page 2", "jumpToPoint 600"). Autoplay takes
// a Go duration or a number of seconds; "off" stops it.
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("parse command %q: empty", s)
	}
	kind, ok := commandsByName[normalizeName(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("parse command %q: %w", s, ErrUnknownCommand)
	}

	c := Command{Kind: kind}
	args := fields[1:]
	switch kind {
	case CommandPrev, CommandNext:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("parse command %q: %s takes no argument", s, kind)
		}
		return c, nil
	}
	if len(args) != 1 {
		return Command{}, fmt.Errorf("parse command %q: %s takes one argument", s, kind)
	}

	var err error
	switch kind {
	case CommandShiftByPages:
		c.Pages, err = strconv.Atoi(args[0])
	case CommandSlideToPage, CommandJumpToPage:
		c.Page, err = strconv.Atoi(args[0])
	case CommandSlideToPoint, CommandJumpToPoint:
		c.Point, err = strconv.ParseFloat(args[0], 64)
	case CommandAutoplay:
		c.Interval, err = parseInterval(args[0])
	}
	if err != nil {
		return Command{}, fmt.Errorf("parse command %q: %w", s, err)
	}
	return c, nil
}

func parseInterval(s string) (time.Duration, error) {
	if strings.EqualFold(s, "off") {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}
