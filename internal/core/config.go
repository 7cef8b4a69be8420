package core

// RuntimeConfig contains configuration passed to the platform layer.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game session.
type GameState struct {
	Frames   int  // Frames simulated so far
	Score    int  // Current score
	GameOver bool // Whether the session has ended
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState

	// Crashed is true only on the frame where the collision was detected.
	Crashed bool
}
