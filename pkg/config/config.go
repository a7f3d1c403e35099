// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// Sentinel validation errors, wrapped with the offending field.
var (
	ErrInvalidDimensions = errors.New("arena width and height must be positive")
	ErrInvalidRadius     = errors.New("radius must be positive")
	ErrInvalidColor      = errors.New("color must be a hex string like #rrggbb")
	ErrInvalidBattery    = errors.New("battery max charge must be positive")
	ErrInvalidSpeed      = errors.New("speed must be non-negative and within max speed")
	ErrInvalidTickRate   = errors.New("tick rate must be positive")
)

// ArenaConfig is the static snapshot an arena is built from
type ArenaConfig struct {
	Width           float64          `json:"width"`
	Height          float64          `json:"height"`
	Robot           RobotConfig      `json:"robot"`
	HomeBase        HomeBaseConfig   `json:"homeBase"`
	RechargeStation CircleConfig     `json:"rechargeStation"`
	Obstacles       []CircleConfig   `json:"obstacles"`
	Simulation      SimulationConfig `json:"simulation"`
}

// CircleConfig places one circular entity
type CircleConfig struct {
	Radius float64 `json:"radius"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Color  string  `json:"color"`
}

// RobotConfig contains the player robot's parameters
type RobotConfig struct {
	CircleConfig
	BatteryMaxCharge float64 `json:"batteryMaxCharge"`
	AngleDelta       float64 `json:"angleDelta"`
	CollisionDelta   float64 `json:"collisionDelta"`
	InitialHeading   float64 `json:"initialHeading"`
	InitialSpeed     float64 `json:"initialSpeed"`
	MaxSpeed         float64 `json:"maxSpeed"`
}

// HomeBaseConfig contains the home base's parameters
type HomeBaseConfig struct {
	CircleConfig
	Heading        float64 `json:"heading"`
	Speed          float64 `json:"speed"`
	CollisionDelta float64 `json:"collisionDelta"`
}

// SimulationConfig controls pacing and diagnostics
type SimulationConfig struct {
	TickRate float64 `json:"tickRate"` // ticks per second
	LogLevel string  `json:"logLevel"`
}

// Position returns the configured center
func (c CircleConfig) Position() physics.Vector2D {
	return physics.Vector2D{X: c.X, Y: c.Y}
}

// RGBA parses the configured color
func (c CircleConfig) RGBA() (color.RGBA, error) {
	return ParseColor(c.Color)
}

// ParseColor converts a hex color string to RGBA with full opacity
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatColor converts RGBA to the hex form ParseColor accepts
func FormatColor(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*ArenaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *ArenaConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the classic arena layout
func DefaultConfig() *ArenaConfig {
	return &ArenaConfig{
		Width:  1024,
		Height: 768,
		Robot: RobotConfig{
			CircleConfig:     CircleConfig{Radius: 20, X: 500, Y: 500, Color: "#0000ff"},
			BatteryMaxCharge: 100,
			AngleDelta:       10,
			CollisionDelta:   2,
			InitialHeading:   270,
			InitialSpeed:     5,
			MaxSpeed:         5,
		},
		HomeBase: HomeBaseConfig{
			CircleConfig:   CircleConfig{Radius: 20, X: 400, Y: 400, Color: "#ff0000"},
			Heading:        45,
			Speed:          1,
			CollisionDelta: 1,
		},
		RechargeStation: CircleConfig{Radius: 20, X: 500, Y: 300, Color: "#008080"},
		Obstacles: []CircleConfig{
			{Radius: 30, X: 200, Y: 200, Color: "#ffffff"},
			{Radius: 30, X: 400, Y: 600, Color: "#ffffff"},
			{Radius: 30, X: 200, Y: 350, Color: "#ffffff"},
			{Radius: 30, X: 700, Y: 300, Color: "#ffffff"},
			{Radius: 30, X: 400, Y: 100, Color: "#ffffff"},
		},
		Simulation: SimulationConfig{
			TickRate: 20,
			LogLevel: "INFO",
		},
	}
}

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvWidth      = "ROBOTARENA_WIDTH"
	EnvHeight     = "ROBOTARENA_HEIGHT"
	EnvTickRate   = "ROBOTARENA_TICK_RATE"
	EnvBatteryMax = "ROBOTARENA_BATTERY_MAX"
	EnvRobotSpeed = "ROBOTARENA_ROBOT_SPEED"
)

// ApplyEnvironmentOverrides replaces fields whose environment variable is
// set. A set but unparsable variable is an error.
func ApplyEnvironmentOverrides(config *ArenaConfig) error {
	overrides := []struct {
		name  string
		apply func(float64)
	}{
		{EnvWidth, func(v float64) { config.Width = v }},
		{EnvHeight, func(v float64) { config.Height = v }},
		{EnvTickRate, func(v float64) { config.Simulation.TickRate = v }},
		{EnvBatteryMax, func(v float64) { config.Robot.BatteryMaxCharge = v }},
		{EnvRobotSpeed, func(v float64) {
			config.Robot.InitialSpeed = v
			if v > config.Robot.MaxSpeed {
				config.Robot.MaxSpeed = v
			}
		}},
	}

	for _, o := range overrides {
		raw, ok := os.LookupEnv(o.name)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", o.name, err)
		}
		o.apply(v)
	}
	return nil
}

// Validate checks the configuration for values the arena cannot run with
func (c *ArenaConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidDimensions, c.Width, c.Height)
	}

	type named struct {
		name   string
		circle CircleConfig
	}
	circles := []named{
		{"robot", c.Robot.CircleConfig},
		{"homeBase", c.HomeBase.CircleConfig},
		{"rechargeStation", c.RechargeStation},
	}
	for i, o := range c.Obstacles {
		circles = append(circles, named{fmt.Sprintf("obstacles[%d]", i), o})
	}
	for _, n := range circles {
		if n.circle.Radius <= 0 {
			return fmt.Errorf("%s: %w", n.name, ErrInvalidRadius)
		}
		if _, err := n.circle.RGBA(); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
	}

	if c.Robot.BatteryMaxCharge <= 0 {
		return ErrInvalidBattery
	}
	if c.Robot.MaxSpeed < 0 || c.Robot.InitialSpeed < 0 || c.Robot.InitialSpeed > c.Robot.MaxSpeed {
		return fmt.Errorf("robot: %w", ErrInvalidSpeed)
	}
	if c.HomeBase.Speed < 0 {
		return fmt.Errorf("homeBase: %w", ErrInvalidSpeed)
	}
	if c.Simulation.TickRate <= 0 {
		return ErrInvalidTickRate
	}
	return nil
}
