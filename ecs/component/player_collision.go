package component

// PlayerCollision stores per-player collision state derived from physics contacts.
type PlayerCollision struct {
	// Grounded is true when the body rested on something below it during
	// the last physics step.
	Grounded bool
	// HazardContact is set on the step the player first touches a hazard.
	HazardContact bool
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
