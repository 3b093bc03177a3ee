package config

// PhysicsConfig is the root config for physics.json / physics.yaml
type PhysicsConfig struct {
	Display   DisplayConfig   `json:"display" yaml:"display"`
	Player    PlayerConfig    `json:"player" yaml:"player"`
	Faller    FallerConfig    `json:"faller" yaml:"faller"`
	Bouncer   BouncerConfig   `json:"bouncer" yaml:"bouncer"`
	Collision CollisionConfig `json:"collision" yaml:"collision"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int `json:"screenHeight" yaml:"screenHeight"`
	Scale        int `json:"scale" yaml:"scale"`
	Framerate    int `json:"framerate" yaml:"framerate"`
}

// PlayerConfig holds the player controller constants.
// Speeds are pixels/sec, accelerations pixels/sec², angles degrees.
type PlayerConfig struct {
	// Collision boxes
	StandWidth  float64 `json:"standWidth" yaml:"standWidth"`
	StandHeight float64 `json:"standHeight" yaml:"standHeight"`
	RollWidth   float64 `json:"rollWidth" yaml:"rollWidth"`
	RollHeight  float64 `json:"rollHeight" yaml:"rollHeight"`

	// Ground movement
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	Deceleration float64 `json:"deceleration" yaml:"deceleration"`
	Friction     float64 `json:"friction" yaml:"friction"`
	TopSpeed     float64 `json:"topSpeed" yaml:"topSpeed"`
	MaxRunSpeed  float64 `json:"maxRunSpeed" yaml:"maxRunSpeed"`

	// Slope gravity
	Slope         float64 `json:"slope" yaml:"slope"`
	SlopeRollUp   float64 `json:"slopeRollUp" yaml:"slopeRollUp"`
	SlopeRollDown float64 `json:"slopeRollDown" yaml:"slopeRollDown"`

	// Rolling
	RollFriction     float64 `json:"rollFriction" yaml:"rollFriction"`
	RollDeceleration float64 `json:"rollDeceleration" yaml:"rollDeceleration"`
	MaxRollSpeed     float64 `json:"maxRollSpeed" yaml:"maxRollSpeed"`
	RollMinSpeed     float64 `json:"rollMinSpeed" yaml:"rollMinSpeed"`
	UnrollSpeed      float64 `json:"unrollSpeed" yaml:"unrollSpeed"`

	// Air
	AirAcceleration float64 `json:"airAcceleration" yaml:"airAcceleration"`
	Gravity         float64 `json:"gravity" yaml:"gravity"`
	MaxFallSpeed    float64 `json:"maxFallSpeed" yaml:"maxFallSpeed"`
	AngleSmoothing  float64 `json:"angleSmoothing" yaml:"angleSmoothing"` // degrees/sec back towards 0

	// Jump
	JumpForce        float64 `json:"jumpForce" yaml:"jumpForce"`
	JumpReleaseSpeed float64 `json:"jumpReleaseSpeed" yaml:"jumpReleaseSpeed"`
	JumpClearance    float64 `json:"jumpClearance" yaml:"jumpClearance"` // headroom cast beyond the box

	// Braking and slipping
	BrakeSpeed  float64 `json:"brakeSpeed" yaml:"brakeSpeed"`
	SlipSpeed   float64 `json:"slipSpeed" yaml:"slipSpeed"`
	ControlLock float64 `json:"controlLock" yaml:"controlLock"` // seconds

	// Sensors
	GroundSnap float64 `json:"groundSnap" yaml:"groundSnap"` // ground sensor reach beyond the box

	// Spin dash
	SpinDashSpeed    float64 `json:"spinDashSpeed" yaml:"spinDashSpeed"`
	SpinDashRevStep  float64 `json:"spinDashRevStep" yaml:"spinDashRevStep"`
	SpinDashRevMax   float64 `json:"spinDashRevMax" yaml:"spinDashRevMax"`
	SpinDashRevBonus float64 `json:"spinDashRevBonus" yaml:"spinDashRevBonus"` // speed per whole rev
	SpinDashDecay    float64 `json:"spinDashDecay" yaml:"spinDashDecay"`       // fraction of rev lost per second
}

// FallerConfig configures gravity-only movers (debris, pickups).
type FallerConfig struct {
	Gravity      float64 `json:"gravity" yaml:"gravity"`
	MaxFallSpeed float64 `json:"maxFallSpeed" yaml:"maxFallSpeed"`
	FallOnce     bool    `json:"fallOnce" yaml:"fallOnce"`
	TerrainOnly  bool    `json:"terrainOnly" yaml:"terrainOnly"`
}

// BouncerConfig configures reflecting movers.
type BouncerConfig struct {
	Gravity  float64 `json:"gravity" yaml:"gravity"`
	MaxSpeed float64 `json:"maxSpeed" yaml:"maxSpeed"`
	BounceX  float64 `json:"bounceX" yaml:"bounceX"`
	BounceY  float64 `json:"bounceY" yaml:"bounceY"`
}

type CollisionConfig struct {
	QuadtreeCapacity int  `json:"quadtreeCapacity" yaml:"quadtreeCapacity"`
	QuadtreeDepth    int  `json:"quadtreeDepth" yaml:"quadtreeDepth"`
	WallIterations   int  `json:"wallIterations" yaml:"wallIterations"`
	DebugTraces      bool `json:"debugTraces" yaml:"debugTraces"`
}
