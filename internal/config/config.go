package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/datawolf04/physlab/internal/dynamo"
	"github.com/datawolf04/physlab/internal/heat1d"
	"github.com/datawolf04/physlab/internal/hotbox"
	"github.com/datawolf04/physlab/internal/physics"
)

const (
	DefaultDt        = 0.5
	DefaultDuration  = 3600.0
	DefaultTolerance = 1e-6
	DefaultMaxDt     = 30.0
	DefaultAirTemp   = 25.0
)

type Config struct {
	Experiment string           `yaml:"experiment"`
	Integrator string           `yaml:"integrator"`
	Sim        SimConfig        `yaml:"sim"`
	Hotbox     HotboxConfig     `yaml:"hotbox"`
	Heat1D     Heat1DConfig     `yaml:"heat1d"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Collision  CollisionConfig  `yaml:"collision"`
}

type SimConfig struct {
	Dt          float64   `yaml:"dt"`
	Duration    float64   `yaml:"duration"`
	Adaptive    bool      `yaml:"adaptive"`
	Tolerance   float64   `yaml:"tolerance"`
	MaxDt       float64   `yaml:"max_dt"`
	OutputTimes []float64 `yaml:"output_times,omitempty"`
}

type HotboxConfig struct {
	Length         float64 `yaml:"length"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Spacing        float64 `yaml:"spacing"`
	Diffusivity    float64 `yaml:"diffusivity"`
	SourceCoef     float64 `yaml:"source_coef"`
	ConvectionCoef float64 `yaml:"convection_coef"`
	AirTemp        float64 `yaml:"air_temp"`
	SolarIntensity float64 `yaml:"solar_intensity"`
	InitialTemp    float64 `yaml:"initial_temp"`
	Profile        string  `yaml:"profile"` // top, uniform, none
}

type Heat1DConfig struct {
	InitialTemp float64 `yaml:"initial_temp"`
	Points      int     `yaml:"points"`
	MaxTime     float64 `yaml:"max_time"`
	Dt          float64 `yaml:"dt"`
	Biot        float64 `yaml:"biot"`
}

type ProjectileConfig struct {
	Speed    float64 `yaml:"speed"`
	AngleDeg float64 `yaml:"angle_deg"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	DragCoef float64 `yaml:"drag_coef"`
}

type CollisionConfig struct {
	PuckMass    float64 `yaml:"puck_mass"`
	StickMass   float64 `yaml:"stick_mass"`
	StickLength float64 `yaml:"stick_length"`
	PuckSpeed   float64 `yaml:"puck_speed"`
	ImpactParam float64 `yaml:"impact_param"`
	Restitution float64 `yaml:"restitution"`
	StartDist   float64 `yaml:"start_dist"`
}

func DefaultConfig() *Config {
	return &Config{
		Experiment: "hotbox",
		Integrator: "rk45",
		Sim: SimConfig{
			Dt:        DefaultDt,
			Duration:  DefaultDuration,
			Adaptive:  true,
			Tolerance: DefaultTolerance,
			MaxDt:     DefaultMaxDt,
		},
		Hotbox: HotboxConfig{
			Length:         3,
			Width:          2,
			Height:         1.5,
			Spacing:        0.1,
			Diffusivity:    22.39e-6,
			SourceCoef:     1e-3,
			ConvectionCoef: 1,
			AirTemp:        DefaultAirTemp,
			SolarIntensity: 1000,
			InitialTemp:    DefaultAirTemp,
			Profile:        "top",
		},
		Heat1D: Heat1DConfig{
			InitialTemp: 10,
			Points:      51,
			MaxTime:     1,
			Dt:          0.002,
			Biot:        0.5,
		},
		Projectile: ProjectileConfig{
			Speed:    20,
			AngleDeg: 45,
			Height:   30,
			Mass:     1,
			DragCoef: 0.02,
		},
		Collision: CollisionConfig{
			PuckMass:    1,
			StickMass:   2,
			StickLength: 6,
			PuckSpeed:   2,
			ImpactParam: 2,
			Restitution: 0.5,
			StartDist:   4,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimSettings converts the YAML section into the solver's run config.
func (c *Config) SimSettings() dynamo.Config {
	sim := dynamo.DefaultConfig()
	sim.Dt = c.Sim.Dt
	sim.Duration = c.Sim.Duration
	sim.Adaptive = c.Sim.Adaptive
	sim.Tolerance = c.Sim.Tolerance
	sim.MaxDt = c.Sim.MaxDt
	sim.OutputTimes = c.Sim.OutputTimes
	return sim
}

func (c *Config) HotboxParams() hotbox.Params {
	var profile hotbox.SourceProfile
	switch c.Hotbox.Profile {
	case "uniform":
		profile = hotbox.Uniform
	case "none":
		profile = hotbox.NoSource
	default:
		profile = hotbox.TopFace
	}
	return hotbox.Params{
		Length:         c.Hotbox.Length,
		Width:          c.Hotbox.Width,
		Height:         c.Hotbox.Height,
		Spacing:        c.Hotbox.Spacing,
		Diffusivity:    c.Hotbox.Diffusivity,
		SourceCoef:     c.Hotbox.SourceCoef,
		ConvectionCoef: c.Hotbox.ConvectionCoef,
		AirTemp:        c.Hotbox.AirTemp,
		SolarIntensity: c.Hotbox.SolarIntensity,
		Profile:        profile,
	}
}

func (c *Config) RobinParams() heat1d.RobinParams {
	return heat1d.RobinParams{
		InitialTemp: c.Heat1D.InitialTemp,
		Points:      c.Heat1D.Points,
		MaxTime:     c.Heat1D.MaxTime,
		Dt:          c.Heat1D.Dt,
		Biot:        c.Heat1D.Biot,
	}
}

func (c *Config) DragParams() physics.DragParams {
	return physics.DragParams{
		Speed:    c.Projectile.Speed,
		AngleDeg: c.Projectile.AngleDeg,
		Height:   c.Projectile.Height,
		Mass:     c.Projectile.Mass,
		DragCoef: c.Projectile.DragCoef,
	}
}

func (c *Config) CollisionParams() physics.CollisionParams {
	return physics.CollisionParams{
		PuckMass:    c.Collision.PuckMass,
		StickMass:   c.Collision.StickMass,
		StickLength: c.Collision.StickLength,
		PuckSpeed:   c.Collision.PuckSpeed,
		ImpactParam: c.Collision.ImpactParam,
		Restitution: c.Collision.Restitution,
	}
}
