package component

// Hazard marks a static collider whose contact ends the run.
type Hazard struct{}

var HazardComponent = NewComponent[Hazard]()
