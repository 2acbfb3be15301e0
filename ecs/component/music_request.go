package component

// MusicRequest is a one-shot request for global music playback.
//
// The music system guarantees only one active song at a time. When a new
// request arrives while another song is active, the current song fades out to
// silence, then the requested song starts immediately. An empty Track stops
// playback; Immediate skips the fade, which is what scene transitions need
// because the world is discarded on the next frame.
type MusicRequest struct {
	Track         string
	Volume        float64
	Loop          bool
	FadeOutFrames int
	Immediate     bool
}

var MusicRequestComponent = NewComponent[MusicRequest]()
