package sim

// Params holds the tunable constants of a world. The zero value is not
// usable; start from DefaultParams.
type Params struct {
	AsteroidCount        int     // initial population
	AsteroidRadius       float64 // lattice radius of a full-size asteroid
	AsteroidVariation    float64 // per-vertex radius jitter of a full-size asteroid
	MinCollisionDistance float64 // collision radius of a full-size asteroid
	MinFragmentSize      float64 // asteroids at or below this size do not split
	MaxDistance          float64 // play volume horizon
	SpawnMinDistance     float64
	SpawnMaxDistance     float64
	RespawnDistance      float64 // inner radius of the respawn shell
	RespawnSpeedBoost    float64 // respawn speed bonus per sqrt(score)
	MaxAsteroidSpeed     float64
	MaxRotationSpeed     float64
	BackdropPoints       int
	BulletSpeed          float64 // added to the ship speed at fire time
	Thrust               float64 // acceleration per second of held thrust
	TurnRate             float64 // radians per second
	Damping              float64 // velocity factor per second
}

// DefaultParams returns the classic rockfield tuning.
func DefaultParams() Params {
	return Params{
		AsteroidCount:        20,
		AsteroidRadius:       24,
		AsteroidVariation:    12,
		MinCollisionDistance: 36,
		MinFragmentSize:      0.24,
		MaxDistance:          1000,
		SpawnMinDistance:     250,
		SpawnMaxDistance:     500,
		RespawnDistance:      1000,
		RespawnSpeedBoost:    250,
		MaxAsteroidSpeed:     250,
		MaxRotationSpeed:     0.25,
		BackdropPoints:       25000,
		BulletSpeed:          700,
		Thrust:               120,
		TurnRate:             1,
		Damping:              0.75,
	}
}
