package space

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	DEFAULT_ROOM_SIZE           = 10.0
	DEFAULT_GRAVITY             = 9.8
	DEFAULT_STACK_TOLERANCE     = 0.2
	DEFAULT_MOVE_THRESHOLD      = 0.001
	DEFAULT_GROUND_SNAP_EPSILON = 0.01
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownMode   = errors.New("unknown placement mode")
)

// Mode selects who owns the vertical position of an object.
// The two modes are never mixed: in ModeStacking the whole stack is translated
// rigidly and nothing falls, in ModeGravity objects move alone and settle by
// themselves every Step.
type Mode int

const (
	ModeStacking Mode = iota
	ModeGravity
)

func (m Mode) String() string {
	switch m {
	case ModeStacking:
		return "stacking"
	case ModeGravity:
		return "gravity"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String, case insensitive
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stacking":
		return ModeStacking, nil
	case "gravity":
		return ModeGravity, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *Mode) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	mode, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Config holds the engine tunables. Everything else is fixed behaviour.
type Config struct {
	// Half of the square room side; the floor spans [-RoomHalfExtent, RoomHalfExtent] on X and Z
	RoomHalfExtent float64 `yaml:"room_half_extent"`
	// Magnitude of the gravity acceleration (m/s²), only used in ModeGravity
	Gravity float64 `yaml:"gravity"`
	// Maximum vertical gap between a bottom face and a top face to consider them stacked
	StackTolerance float64 `yaml:"stack_tolerance"`
	// Drag moves with every delta component below this value are dropped
	MoveThreshold float64 `yaml:"move_threshold"`
	// Slack allowed between a falling bottom face and a surface below it
	GroundSnapEpsilon float64 `yaml:"ground_snap_epsilon"`

	Mode Mode `yaml:"mode"`
}

// DefaultConfig returns the tunables of a 10x10 room in stacking mode
func DefaultConfig() Config {
	return Config{
		RoomHalfExtent:    DEFAULT_ROOM_SIZE / 2,
		Gravity:           DEFAULT_GRAVITY,
		StackTolerance:    DEFAULT_STACK_TOLERANCE,
		MoveThreshold:     DEFAULT_MOVE_THRESHOLD,
		GroundSnapEpsilon: DEFAULT_GROUND_SNAP_EPSILON,
		Mode:              ModeStacking,
	}
}

// Validate checks the preconditions the geometry relies on.
// The engine itself never validates: NaN or negative values produce undefined placements.
func (c Config) Validate() error {
	checks := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"room_half_extent", c.RoomHalfExtent, true},
		{"gravity", c.Gravity, false},
		{"stack_tolerance", c.StackTolerance, true},
		{"move_threshold", c.MoveThreshold, false},
		{"ground_snap_epsilon", c.GroundSnapEpsilon, false},
	}

	for _, check := range checks {
		if math.IsNaN(check.value) || math.IsInf(check.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, check.name, check.value)
		}
		if check.positive && check.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, check.name, check.value)
		}
		if check.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, check.name, check.value)
		}
	}

	if c.Mode != ModeStacking && c.Mode != ModeGravity {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, ErrUnknownMode, c.Mode)
	}

	return nil
}
