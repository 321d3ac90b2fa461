package microfiche

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Backend names accepted by Options.Backend.
const (
	BackendTween   = "tween"
	BackendInstant = "instant"
)

// Options configures an Engine. It is fixed at construction.
//
// The engine does not defend against invalid values (MaxDuration below
// MinDuration, negative thresholds, Elasticity outside (0, 1]). Use Validate
// at setup time; LoadOptions does so automatically.
type Options struct {
	// Cyclic wraps from the last page to the first and back.
	Cyclic bool
	// Buttons and Bullets tell the presentation layer which controls to draw.
	Buttons bool
	Bullets bool

	// MinDuration and MaxDuration bound velocity-derived durations.
	// Duration is used for every non-flick transition.
	MinDuration time.Duration
	Duration    time.Duration
	MaxDuration time.Duration

	// DragThreshold is the movement in pixels on either axis that decides
	// between a horizontal drag and a vertical scroll.
	DragThreshold float64
	// Elasticity damps drags past either bound in bounded mode.
	Elasticity float64
	// SwipeThreshold is the fraction of the screen a drag must cover to
	// change page.
	SwipeThreshold float64

	// Debounce coalesces layout changes before recalibrating.
	Debounce time.Duration
	// Autoplay advances one page per interval when non-zero.
	Autoplay time.Duration

	// Easing names the tween curve; see EasingNames.
	Easing string
	// Backend selects the transition driver: BackendTween or BackendInstant.
	Backend string

	// Run lists commands executed once after construction, in text form
	// (see ParseCommand).
	Run []string

	// Debug enables engine logging.
	Debug bool
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Buttons:        true,
		Bullets:        true,
		MinDuration:    250 * time.Millisecond,
		Duration:       500 * time.Millisecond,
		MaxDuration:    500 * time.Millisecond,
		DragThreshold:  25,
		Elasticity:     0.5,
		SwipeThreshold: 0.125,
		Debounce:       200 * time.Millisecond,
		Easing:         "swing",
		Backend:        BackendTween,
	}
}

// Validate reports the first configuration precondition that does not hold.
func (o Options) Validate() error {
	switch {
	case o.MinDuration < 0 || o.Duration < 0 || o.MaxDuration < 0:
		return errors.New("durations must not be negative")
	case o.MaxDuration < o.MinDuration:
		return fmt.Errorf("max duration %v is below min duration %v", o.MaxDuration, o.MinDuration)
	case o.DragThreshold < 0:
		return fmt.Errorf("drag threshold %v is negative", o.DragThreshold)
	case o.Elasticity <= 0 || o.Elasticity > 1:
		return fmt.Errorf("elasticity %v is outside (0, 1]", o.Elasticity)
	case o.SwipeThreshold < 0:
		return fmt.Errorf("swipe threshold %v is negative", o.SwipeThreshold)
	case o.Autoplay < 0:
		return fmt.Errorf("autoplay interval %v is negative", o.Autoplay)
	case o.Backend != BackendTween && o.Backend != BackendInstant:
		return fmt.Errorf("unknown backend %q", o.Backend)
	}
	if _, ok := easings[o.Easing]; !ok {
		return fmt.Errorf("unknown easing %q", o.Easing)
	}
	for _, line := range o.Run {
		if _, err := ParseCommand(line); err != nil {
			return err
		}
	}
	return nil
}

// optionsFile is the on-disk shape of Options. Durations are milliseconds.
// Pointer fields distinguish "absent" from zero so absent keys keep their
// defaults.
type optionsFile struct {
	Cyclic         *bool    `yaml:"cyclic" toml:"cyclic"`
	Buttons        *bool    `yaml:"buttons" toml:"buttons"`
	Bullets        *bool    `yaml:"bullets" toml:"bullets"`
	MinDuration    *int64   `yaml:"min_duration" toml:"min_duration"`
	Duration       *int64   `yaml:"duration" toml:"duration"`
	MaxDuration    *int64   `yaml:"max_duration" toml:"max_duration"`
	DragThreshold  *float64 `yaml:"drag_threshold" toml:"drag_threshold"`
	Elasticity     *float64 `yaml:"elasticity" toml:"elasticity"`
	SwipeThreshold *float64 `yaml:"swipe_threshold" toml:"swipe_threshold"`
	Debounce       *int64   `yaml:"debounce" toml:"debounce"`
	Autoplay       *int64   `yaml:"autoplay" toml:"autoplay"`
	Easing         *string  `yaml:"easing" toml:"easing"`
	Backend        *string  `yaml:"backend" toml:"backend"`
	Run            []string `yaml:"run" toml:"run"`
	Debug          *bool    `yaml:"debug" toml:"debug"`
}

func (f *optionsFile) apply(o *Options) {
	ms := func(v *int64, dst *time.Duration) {
		if v != nil {
			*dst = time.Duration(*v) * time.Millisecond
		}
	}
	if f.Cyclic != nil {
		o.Cyclic = *f.Cyclic
	}
	if f.Buttons != nil {
		o.Buttons = *f.Buttons
	}
	if f.Bullets != nil {
		o.Bullets = *f.Bullets
	}
	ms(f.MinDuration, &o.MinDuration)
	ms(f.Duration, &o.Duration)
	ms(f.MaxDuration, &o.MaxDuration)
	ms(f.Debounce, &o.Debounce)
	ms(f.Autoplay, &o.Autoplay)
	if f.DragThreshold != nil {
		o.DragThreshold = *f.DragThreshold
	}
	if f.Elasticity != nil {
		o.Elasticity = *f.Elasticity
	}
	if f.SwipeThreshold != nil {
		o.SwipeThreshold = *f.SwipeThreshold
	}
	if f.Easing != nil {
		o.Easing = strings.ToLower(*f.Easing)
	}
	if f.Backend != nil {
		o.Backend = strings.ToLower(*f.Backend)
	}
	if f.Run != nil {
		o.Run = append([]string(nil), f.Run...)
	}
	if f.Debug != nil {
		o.Debug = *f.Debug
	}
}

// ParseOptions decodes options in the given format ("yaml" or "toml") on top
// of DefaultOptions and validates the result.
func ParseOptions(data []byte, format string) (Options, error) {
	var f optionsFile
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Options{}, fmt.Errorf("parse options: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return Options{}, fmt.Errorf("parse options: %w", err)
		}
	default:
		return Options{}, fmt.Errorf("parse options: unsupported format %q", format)
	}

	o := DefaultOptions()
	f.apply(&o)
	if err := o.Validate(); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	return o, nil
}

// LoadOptions reads an options file. The format follows the extension:
// .yaml/.yml or .toml.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("load options: %w", err)
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	o, err := ParseOptions(data, format)
	if err != nil {
		return Options{}, fmt.Errorf("load options %s: %w", path, err)
	}
	return o, nil
}
