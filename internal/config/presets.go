package config

func presetFrom(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"hotbox": {
		"toybox": presetFrom(func(c *Config) {
			c.Hotbox.Spacing = 0.1
			c.Sim.Duration = 10 * 3600
		}),
		"full": presetFrom(func(c *Config) {
			c.Hotbox.Spacing = 0.05
			c.Sim.Duration = 10 * 3600
		}),
		"overcast": presetFrom(func(c *Config) {
			c.Hotbox.SolarIntensity = 200
			c.Sim.Duration = 10 * 3600
		}),
		"uniform-heating": presetFrom(func(c *Config) {
			c.Hotbox.Profile = "uniform"
			c.Sim.Duration = 4 * 3600
		}),
	},
	"heat1d": {
		"slow-cooling": presetFrom(func(c *Config) {
			c.Experiment = "heat1d"
			c.Heat1D.Biot = 0.1
			c.Heat1D.MaxTime = 2
		}),
		"fast-cooling": presetFrom(func(c *Config) {
			c.Experiment = "heat1d"
			c.Heat1D.Biot = 5
			c.Heat1D.MaxTime = 0.5
		}),
	},
	"projectile": {
		"cliff": presetFrom(func(c *Config) {
			c.Experiment = "projectile"
			c.Projectile.Height = 100
			c.Projectile.AngleDeg = 30
		}),
		"mortar": presetFrom(func(c *Config) {
			c.Experiment = "projectile"
			c.Projectile.Speed = 50
			c.Projectile.AngleDeg = 70
			c.Projectile.Height = 0.5
		}),
		"vacuum": presetFrom(func(c *Config) {
			c.Experiment = "projectile"
			c.Projectile.DragCoef = 0
		}),
	},
	"collision": {
		"glancing": presetFrom(func(c *Config) {
			c.Experiment = "collision"
			c.Collision.ImpactParam = 2.8
		}),
		"elastic": presetFrom(func(c *Config) {
			c.Experiment = "collision"
			c.Collision.Restitution = 1
		}),
		"center-hit": presetFrom(func(c *Config) {
			c.Experiment = "collision"
			c.Collision.ImpactParam = 0
		}),
	},
}

func GetPreset(experiment, preset string) *Config {
	group, ok := Presets[experiment]
	if !ok {
		return nil
	}
	cfg, ok := group[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(experiment string) []string {
	group, ok := Presets[experiment]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
