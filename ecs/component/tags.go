package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type ScoreTextTag struct{}

var ScoreTextTagComponent = NewComponent[ScoreTextTag]()

type CoinTextTag struct{}

var CoinTextTagComponent = NewComponent[CoinTextTag]()
