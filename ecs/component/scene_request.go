package component

type SceneAction int

const (
	SceneStart SceneAction = iota
	SceneRestart
)

// SceneRequest asks the host to switch scenes once the current frame ends.
// Level and Score are forwarded as scene data, zero meaning unset.
type SceneRequest struct {
	Action SceneAction
	Scene  string
	Level  int
	Score  int
}

var SceneRequestComponent = NewComponent[SceneRequest]()

const (
	GameSceneKey     = "GameScene"
	WinSceneKey      = "WinScene"
	GameOverSceneKey = "GameOverScene"
)
