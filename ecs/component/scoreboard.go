package component

// Scoreboard is the per-level run state. It is rebuilt on every level load.
type Scoreboard struct {
	Level     int
	Score     int
	Collected int
	Total     int
}

var ScoreboardComponent = NewComponent[Scoreboard]()
