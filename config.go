package retrograde

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/ChristopherRabotin/retrograde/tools"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// StepSize is the default step size of propagation.
	StepSize = 24 * time.Hour
	// J2000 is the Julian date of the default epoch.
	J2000 = 2451545.0
	// DefaultRadius is the display radius of bodies which are not celestial presets.
	DefaultRadius = 6.0
)

// DefaultColor is the color of bodies which are not celestial presets.
var DefaultColor = color.RGBA{255, 255, 255, 255}

// Interaction defines which bodies attract each other.
type Interaction uint8

const (
	// TwoBody only accounts for the attraction of the anchor.
	TwoBody Interaction = iota + 1
	// NBody sums the attraction of every other body.
	NBody
)

func (i Interaction) String() string {
	switch i {
	case TwoBody:
		return "two-body"
	case NBody:
		return "n-body"
	}
	panic("cannot stringify unknown interaction")
}

// InteractionFromString returns the interaction from its name.
func InteractionFromString(name string) (Interaction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "two-body", "twobody", "2body", "":
		return TwoBody, nil
	case "n-body", "nbody":
		return NBody, nil
	default:
		return 0, fmt.Errorf("undefined interaction '%s'", name)
	}
}

// BodyConfig is the initial state of a body.
type BodyConfig struct {
	Name     string
	Position [2]float64 // AU
	Velocity [2]float64 // m/s
	Mass     float64    // kg
	Radius   float64    // pixels
	Color    color.RGBA
	Anchor   bool
}

// Config defines a simulation. It must not be changed once a simulation is created from it.
type Config struct {
	G           float64       // gravitational constant
	AU          float64       // meters per astronomical unit
	Step        time.Duration // fixed time step
	Interaction Interaction
	Epoch       time.Time // start of the simulated clock
	AutoOrbit   bool      // seed circular velocities for non anchors at rest
	Bodies      []BodyConfig
}

// DefaultConfig returns the Sun, Earth and Mars where only the Sun attracts.
func DefaultConfig() Config {
	mars := Mars.BodyConfig()
	mars.Position[0] = -1.5
	mars.Velocity[1] = 24.07e3
	return Config{
		G:           G,
		AU:          AU,
		Step:        StepSize,
		Interaction: TwoBody,
		Epoch:       julian.JDToTime(J2000),
		Bodies:      []BodyConfig{Sun.BodyConfig(), Earth.BodyConfig(), mars},
	}
}

// NBodyConfig returns a scenario where every body attracts every other one, including the Sun which is free to move.
// The optional bodies (e.g. Mercury or Venus) are appended after the Sun, Earth and Mars.
func NBodyConfig(extra ...CelestialObject) Config {
	sun := Sun.BodyConfig()
	sun.Anchor = false
	sun.Mass = 1.98892e30
	earth := Earth.BodyConfig()
	earth.Mass = 5.9742e24
	earth.Velocity[1] = 29.783e3
	mars := Mars.BodyConfig()
	mars.Mass = 6.39e23
	bodies := []BodyConfig{sun, earth, mars}
	for _, obj := range extra {
		bodies = append(bodies, obj.BodyConfig())
	}
	return Config{
		G:           6.67428e-11,
		AU:          149.6e9,
		Step:        StepSize,
		Interaction: NBody,
		Epoch:       julian.JDToTime(J2000),
		Bodies:      bodies,
	}
}

// Validate returns an error if this configuration cannot be simulated.
func (c Config) Validate() error {
	if c.G <= 0 {
		return fmt.Errorf("gravitational constant must be positive (got %g)", c.G)
	}
	if c.AU <= 0 {
		return fmt.Errorf("astronomical unit must be positive (got %g m)", c.AU)
	}
	if c.Step <= 0 {
		return fmt.Errorf("time step must be positive (got %s)", c.Step)
	}
	if c.Interaction != TwoBody && c.Interaction != NBody {
		return fmt.Errorf("unknown interaction %d", c.Interaction)
	}
	if len(c.Bodies) == 0 {
		return errors.New("no bodies to simulate")
	}
	names := make(map[string]bool, len(c.Bodies))
	anchors := 0
	for i, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("body #%d has no name", i)
		}
		if names[b.Name] {
			return fmt.Errorf("body name `%s` is used more than once", b.Name)
		}
		names[b.Name] = true
		if b.Mass <= 0 {
			return fmt.Errorf("mass of %s must be positive (got %g kg)", b.Name, b.Mass)
		}
		if b.Radius <= 0 {
			return fmt.Errorf("radius of %s must be positive (got %g px)", b.Name, b.Radius)
		}
		if b.Anchor {
			anchors++
		}
	}
	if c.Interaction == TwoBody && anchors != 1 {
		return fmt.Errorf("two-body interaction requires exactly one anchor (got %d)", anchors)
	}
	return nil
}

// anchor returns the first anchored body, if any.
func (c Config) anchor() (BodyConfig, bool) {
	for _, b := range c.Bodies {
		if b.Anchor {
			return b, true
		}
	}
	return BodyConfig{}, false
}

// SetOrbitalVelocities sets, for every non anchored body at rest, the velocity of a circular orbit about the anchor.
// The velocity is perpendicular to the position vector relative to the anchor.
func (c *Config) SetOrbitalVelocities() error {
	central, ok := c.anchor()
	if !ok {
		return errors.New("auto orbit requires an anchor")
	}
	origin := r2.Vec{X: central.Position[0] * c.AU, Y: central.Position[1] * c.AU}
	for i := range c.Bodies {
		b := &c.Bodies[i]
		if b.Anchor || b.Velocity[0] != 0 || b.Velocity[1] != 0 {
			continue
		}
		pos := r2.Vec{X: b.Position[0] * c.AU, Y: b.Position[1] * c.AU}
		vel, err := tools.OrbitalVelocity(c.G, central.Mass, origin, pos)
		if err != nil {
			return fmt.Errorf("auto orbit of %s: %w", b.Name, err)
		}
		b.Velocity = [2]float64{vel.X, vel.Y}
	}
	return nil
}

// ReadScenario reads the provided TOML scenario. The extension is optional.
func ReadScenario(scenario string) (*viper.Viper, error) {
	dir, name := filepath.Split(strings.Replace(scenario, ".toml", "", 1))
	if dir == "" {
		dir = "."
	}
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigName(name)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s.toml: %w", filepath.Join(dir, name), err)
	}
	return v, nil
}

// LoadConfig reads the `simulation` section and the `bodies.N` tables of a scenario.
// Any value not set in the scenario is taken from DefaultConfig, and bodies named after
// a known celestial object inherit its initial state.
func LoadConfig(v *viper.Viper) (Config, error) {
	conf := DefaultConfig()
	if v.IsSet("simulation.G") {
		conf.G = v.GetFloat64("simulation.G")
	}
	if v.IsSet("simulation.AU") {
		conf.AU = v.GetFloat64("simulation.AU")
	}
	if v.IsSet("simulation.step") {
		conf.Step = v.GetDuration("simulation.step")
	}
	if v.IsSet("simulation.interaction") {
		interaction, err := InteractionFromString(v.GetString("simulation.interaction"))
		if err != nil {
			return conf, err
		}
		conf.Interaction = interaction
	}
	if v.IsSet("simulation.start") {
		conf.Epoch = confReadJDEorTime(v, "simulation.start")
	}
	conf.AutoOrbit = v.GetBool("simulation.auto_orbit")

	if v.IsSet("bodies.0") {
		conf.Bodies = nil
		for bodyNo := 0; v.IsSet(fmt.Sprintf("bodies.%d", bodyNo)); bodyNo++ {
			body, err := confReadBody(v, fmt.Sprintf("bodies.%d", bodyNo))
			if err != nil {
				return conf, err
			}
			conf.Bodies = append(conf.Bodies, body)
		}
	}

	if conf.AutoOrbit {
		if err := conf.SetOrbitalVelocities(); err != nil {
			return conf, err
		}
	}
	return conf, conf.Validate()
}

func confReadBody(v *viper.Viper, key string) (BodyConfig, error) {
	name := v.GetString(key + ".name")
	body := BodyConfig{Name: name, Radius: DefaultRadius, Color: DefaultColor}
	if obj, err := CelestialObjectFromString(name); err == nil {
		body = obj.BodyConfig()
		body.Name = name
	}
	if v.IsSet(key + ".x") {
		body.Position[0] = v.GetFloat64(key + ".x")
	}
	if v.IsSet(key + ".y") {
		body.Position[1] = v.GetFloat64(key + ".y")
	}
	if v.IsSet(key + ".vx") {
		body.Velocity[0] = v.GetFloat64(key + ".vx")
	}
	if v.IsSet(key + ".vy") {
		body.Velocity[1] = v.GetFloat64(key + ".vy")
	}
	if v.IsSet(key + ".mass") {
		body.Mass = v.GetFloat64(key + ".mass")
	}
	if v.IsSet(key + ".radius") {
		body.Radius = v.GetFloat64(key + ".radius")
	}
	if v.IsSet(key + ".anchor") {
		body.Anchor = v.GetBool(key + ".anchor")
	}
	if v.IsSet(key + ".color") {
		clr, err := ParseColor(v.GetString(key + ".color"))
		if err != nil {
			return body, fmt.Errorf("%s.color: %w", key, err)
		}
		body.Color = clr
	}
	return body, nil
}

// ParseColor parses a hex color such as `#BC2732`.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

func confReadJDEorTime(v *viper.Viper, key string) (dt time.Time) {
	jde := v.GetFloat64(key)
	if jde == 0 {
		dt = v.GetTime(key)
	} else {
		dt = julian.JDToTime(jde)
	}
	return dt.UTC()
}
