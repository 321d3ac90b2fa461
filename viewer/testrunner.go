package viewer

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Command string  `json:"command,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Page    *int    `json:"page,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
	// Exit ends the game loop once every step has run.
	Exit bool `json:"exit,omitempty"`
}

// TestRunner sequences injected input, commands, checks and screenshots
// across frames for automated testing. Attach it with SetTestRunner.
//
// Actions: "click" (x, y), "drag" (fromX, fromY, toX, toY, frames), "wait"
// (frames), "settle" (wait until no transition is in flight), "command"
// (a text command such as "slide-to-page 2"), "expect" (page) and
// "screenshot" (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	settling  bool
	done      bool
	exit      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "drag", "wait", "settle", "screenshot":
		case "command":
			if st.Command == "" {
				return nil, fmt.Errorf("parse test script: step %d: command is empty", i)
			}
		case "expect":
			if st.Page == nil {
				return nil, fmt.Errorf("parse test script: step %d: expect needs a page", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps, exit: script.Exit}, nil
}

// SetTestRunner attaches a runner. Its steps advance once per frame before
// input is processed.
func (v *Viewer) SetTestRunner(runner *TestRunner) {
	v.runner = runner
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. A failed command or expectation
// ends the run with an error.
func (r *TestRunner) step(v *Viewer) error {
	if r.done {
		return nil
	}
	// Wait for pending injections to drain before advancing.
	if len(v.injectQueue) > 0 {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.settling {
		if v.engine.Moving() {
			return nil
		}
		r.settling = false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		v.Screenshot(st.Label)
	case "click":
		v.InjectClick(st.X, st.Y)
	case "drag":
		v.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "settle":
		r.settling = true
	case "command":
		if err := v.Command(st.Command); err != nil {
			r.done = true
			return fmt.Errorf("test script step %d: %w", r.cursor-1, err)
		}
	case "expect":
		if got := v.engine.Page(); got != *st.Page {
			r.done = true
			return fmt.Errorf("test script step %d: page is %d, want %d", r.cursor-1, got, *st.Page)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.settling && len(v.injectQueue) == 0 {
		r.done = true
	}
	return nil
}
