// Package config loads rockfield settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/taigrr/rockfield/pkg/sim"
)

// Config is the top-level configuration file.
type Config struct {
	World  WorldConfig  `toml:"world"`
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
}

// WorldConfig tunes the simulation. See sim.Params for the meaning of each
// field.
type WorldConfig struct {
	AsteroidCount        int     `toml:"asteroid_count"`
	AsteroidRadius       float64 `toml:"asteroid_radius"`
	AsteroidVariation    float64 `toml:"asteroid_variation"`
	MinCollisionDistance float64 `toml:"min_collision_distance"`
	MinFragmentSize      float64 `toml:"min_fragment_size"`
	MaxDistance          float64 `toml:"max_distance"`
	SpawnMinDistance     float64 `toml:"spawn_min_distance"`
	SpawnMaxDistance     float64 `toml:"spawn_max_distance"`
	RespawnDistance      float64 `toml:"respawn_distance"`
	RespawnSpeedBoost    float64 `toml:"respawn_speed_boost"`
	MaxAsteroidSpeed     float64 `toml:"max_asteroid_speed"`
	MaxRotationSpeed     float64 `toml:"max_rotation_speed"`
	BackdropPoints       int     `toml:"backdrop_points"`
	BulletSpeed          float64 `toml:"bullet_speed"`
	Thrust               float64 `toml:"thrust"`
	TurnRate             float64 `toml:"turn_rate"`
	Damping              float64 `toml:"damping"`

	// Seed for the world's random source. Zero picks one from the clock.
	Seed uint64 `toml:"seed"`
}

// RenderConfig controls the terminal renderer and chase camera.
type RenderConfig struct {
	FPS            int     `toml:"fps"`
	FOVDegrees     float64 `toml:"fov_degrees"`
	Background     string  `toml:"background"` // "r,g,b"
	ChaseDistance  float64 `toml:"chase_distance"`
	ChaseHeight    float64 `toml:"chase_height"`
	ChaseFrequency float64 `toml:"chase_frequency"`
	ChaseDamping   float64 `toml:"chase_damping"`

	// ShipModel optionally replaces the built-in ship with a GLB file.
	ShipModel string `toml:"ship_model"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `toml:"level"`
	File        string `toml:"file"` // empty disables logging
	Development bool   `toml:"development"`

	// StatsInterval is how often frame statistics are logged.
	StatsInterval duration `toml:"stats_interval"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

// Default returns the built-in configuration.
func Default() Config {
	p := sim.DefaultParams()
	return Config{
		World: WorldConfig{
			AsteroidCount:        p.AsteroidCount,
			AsteroidRadius:       p.AsteroidRadius,
			AsteroidVariation:    p.AsteroidVariation,
			MinCollisionDistance: p.MinCollisionDistance,
			MinFragmentSize:      p.MinFragmentSize,
			MaxDistance:          p.MaxDistance,
			SpawnMinDistance:     p.SpawnMinDistance,
			SpawnMaxDistance:     p.SpawnMaxDistance,
			RespawnDistance:      p.RespawnDistance,
			RespawnSpeedBoost:    p.RespawnSpeedBoost,
			MaxAsteroidSpeed:     p.MaxAsteroidSpeed,
			MaxRotationSpeed:     p.MaxRotationSpeed,
			BackdropPoints:       p.BackdropPoints,
			BulletSpeed:          p.BulletSpeed,
			Thrust:               p.Thrust,
			TurnRate:             p.TurnRate,
			Damping:              p.Damping,
		},
		Render: RenderConfig{
			FPS:            60,
			FOVDegrees:     60,
			Background:     "8,8,16",
			ChaseDistance:  12,
			ChaseHeight:    3,
			ChaseFrequency: 6,
			ChaseDamping:   0.8,
		},
		Log: LogConfig{
			Level:         "info",
			File:          "rockfield.log",
			StatsInterval: duration{5 * time.Second},
		},
	}
}

// Load reads the configuration at path on top of Default. A missing file
// yields the defaults. Unknown keys are rejected with ErrUnknownKeys.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	meta, err := toml.DecodeFile(path, &c)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err ErrUnknownKeys
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ErrUnknownKeys lists configuration keys that do not match any setting.
type ErrUnknownKeys []string

func (e ErrUnknownKeys) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// Validate reports every setting that is out of range.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	w := c.World
	check(w.AsteroidCount >= 0, "world.asteroid_count must not be negative")
	check(w.AsteroidRadius > 0, "world.asteroid_radius must be positive")
	check(w.AsteroidVariation >= 0, "world.asteroid_variation must not be negative")
	check(w.AsteroidVariation < 2*w.AsteroidRadius, "world.asteroid_variation must be less than twice the radius")
	check(w.MinCollisionDistance > 0, "world.min_collision_distance must be positive")
	check(w.MinFragmentSize > 0 && w.MinFragmentSize < 1, "world.min_fragment_size must be in (0, 1)")
	check(w.MaxDistance > 0, "world.max_distance must be positive")
	check(w.SpawnMinDistance >= 0 && w.SpawnMinDistance <= w.SpawnMaxDistance,
		"world.spawn_min_distance must be in [0, spawn_max_distance]")
	check(w.SpawnMaxDistance <= w.MaxDistance, "world.spawn_max_distance must not exceed max_distance")
	check(w.RespawnDistance > 0 && w.RespawnDistance <= w.MaxDistance,
		"world.respawn_distance must be in (0, max_distance]")
	check(w.RespawnSpeedBoost >= 0, "world.respawn_speed_boost must not be negative")
	check(w.MaxAsteroidSpeed >= 0, "world.max_asteroid_speed must not be negative")
	check(w.MaxRotationSpeed >= 0, "world.max_rotation_speed must not be negative")
	check(w.BackdropPoints >= 0, "world.backdrop_points must not be negative")
	check(w.BulletSpeed > 0, "world.bullet_speed must be positive")
	check(w.Thrust >= 0, "world.thrust must not be negative")
	check(w.TurnRate >= 0, "world.turn_rate must not be negative")
	check(w.Damping > 0 && w.Damping <= 1, "world.damping must be in (0, 1], got %v", w.Damping)

	r := c.Render
	check(r.FPS > 0 && r.FPS <= 240, "render.fps must be in [1, 240], got %d", r.FPS)
	check(r.FOVDegrees > 0 && r.FOVDegrees < 180, "render.fov_degrees must be in (0, 180)")
	check(r.ChaseDistance >= 0, "render.chase_distance must not be negative")
	check(r.ChaseFrequency > 0, "render.chase_frequency must be positive")
	check(r.ChaseDamping >= 0, "render.chase_damping must not be negative")
	if _, err := r.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}

	check(c.Log.StatsInterval.Duration >= 0, "log.stats_interval must not be negative")

	return errors.Join(errs...)
}

// WorldParams converts the world section to simulation parameters.
func (c Config) WorldParams() sim.Params {
	w := c.World
	return sim.Params{
		AsteroidCount:        w.AsteroidCount,
		AsteroidRadius:       w.AsteroidRadius,
		AsteroidVariation:    w.AsteroidVariation,
		MinCollisionDistance: w.MinCollisionDistance,
		MinFragmentSize:      w.MinFragmentSize,
		MaxDistance:          w.MaxDistance,
		SpawnMinDistance:     w.SpawnMinDistance,
		SpawnMaxDistance:     w.SpawnMaxDistance,
		RespawnDistance:      w.RespawnDistance,
		RespawnSpeedBoost:    w.RespawnSpeedBoost,
		MaxAsteroidSpeed:     w.MaxAsteroidSpeed,
		MaxRotationSpeed:     w.MaxRotationSpeed,
		BackdropPoints:       w.BackdropPoints,
		BulletSpeed:          w.BulletSpeed,
		Thrust:               w.Thrust,
		TurnRate:             w.TurnRate,
		Damping:              w.Damping,
	}
}

// BackgroundColor parses the "r,g,b" background setting.
func (r RenderConfig) BackgroundColor() (color.RGBA, error) {
	parts := strings.Split(r.Background, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("render.background %q: want r,g,b", r.Background)
	}
	var rgb [3]uint8
	for i, s := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("render.background %q: %w", r.Background, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}
