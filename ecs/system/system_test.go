package system

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/coindash/ecs"
	"github.com/milk9111/coindash/ecs/component"
	"github.com/milk9111/coindash/levels"
)

// coinMap is a 4x2 map whose coin layer holds three collectibles (2, 4)
// and one decoration (5).
const coinMap = `{
  "width": 4, "height": 2, "tilewidth": 32, "tileheight": 32,
  "layers": [
    {"name": "coin", "type": "tilelayer", "width": 4, "height": 2, "data": [2, 4, 0, 0, 0, 5, 0, 2]}
  ],
  "tilesets": [{"firstgid": 1, "name": "tileset", "tilewidth": 32, "tileheight": 32, "columns": 5, "tilecount": 5}]
}`

func newPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	adds := []error{
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}),
		ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 20, Height: 20, Mass: 1}),
		ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 160, JumpSpeed: 300}),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}),
		ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}),
		ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}),
		ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
			Defs: map[string]component.AnimationDef{
				"left":  {Name: "left", ColStart: 1, FrameCount: 3, FrameW: 32, FrameH: 48, FPS: 10, Loop: true},
				"turn":  {Name: "turn", ColStart: 4, FrameCount: 1, FrameW: 32, FrameH: 48, FPS: 20},
				"right": {Name: "right", ColStart: 5, FrameCount: 4, FrameW: 32, FrameH: 48, FPS: 10, Loop: true},
			},
			Current: "turn",
			Playing: true,
		}),
		ecs.Add(w, e, component.AudioComponent.Kind(), &component.Audio{
			Names:   []string{"jump", "collect", "win", "gameover"},
			Players: make([]*audio.Player, 4),
			Volume:  []float64{0.05, 0.5, 0.5, 0.2},
			Play:    make([]bool, 4),
			Stop:    make([]bool, 4),
		}),
	}
	for _, err := range adds {
		if err != nil {
			t.Fatalf("building player: %v", err)
		}
	}
	return e
}

func flagged(t *testing.T, w *ecs.World, e ecs.Entity, name string) bool {
	t.Helper()
	a, ok := ecs.Get(w, e, component.AudioComponent.Kind())
	if !ok {
		t.Fatalf("player has no audio")
	}
	for i, n := range a.Names {
		if n == name {
			return a.Play[i]
		}
	}
	t.Fatalf("no clip %q", name)
	return false
}

func newCoinWorld(t *testing.T, total int) (*ecs.World, ecs.Entity, *levels.Layer) {
	t.Helper()
	m, err := levels.Parse([]byte(coinMap))
	if err != nil {
		t.Fatalf("parse map: %v", err)
	}
	w := ecs.NewWorld()
	ent := ecs.CreateEntity(w)
	ecs.Add(w, ent, component.TileMapComponent.Kind(), &component.TileMap{Map: m, Layers: []string{"coin"}})
	ecs.Add(w, ent, component.CollectibleLayerComponent.Kind(), &component.CollectibleLayer{Layer: "coin", Indices: []int{2, 4}})
	ecs.Add(w, ent, component.ScoreboardComponent.Kind(), &component.Scoreboard{Level: 1, Total: total})

	for _, tag := range []bool{true, false} {
		txt := ecs.CreateEntity(w)
		ecs.Add(w, txt, component.TextComponent.Kind(), &component.Text{})
		if tag {
			ecs.Add(w, txt, component.ScoreTextTagComponent.Kind(), &component.ScoreTextTag{})
		} else {
			ecs.Add(w, txt, component.CoinTextTagComponent.Kind(), &component.CoinTextTag{})
		}
	}

	layer, _ := m.Layer("coin")
	return w, ent, layer
}

func hudText[T any](t *testing.T, w *ecs.World, tag component.ComponentKind[T]) string {
	t.Helper()
	e, ok := ecs.First(w, tag)
	if !ok {
		t.Fatalf("missing HUD text")
	}
	txt, _ := ecs.Get(w, e, component.TextComponent.Kind())
	return txt.Value
}

type pointsByTile map[int]int

func (p pointsByTile) Points(tile, _ int) int { return p[tile] }

func TestCollectibleSystemPicksUpOverlappingCoins(t *testing.T) {
	w, _, layer := newCoinWorld(t, 3)
	// 20x20 box centered at (32, 16) spans x 22..42, touching cells (0,0) and (1,0)
	player := newPlayer(t, w, 32, 16)

	NewCollectibleSystem(pointsByTile{2: 10, 4: 50}, 3).Update(w)

	if layer.TileAt(0, 0) != 0 || layer.TileAt(1, 0) != 0 {
		t.Fatalf("overlapped coins should be removed")
	}
	if layer.TileAt(3, 1) != 2 {
		t.Fatalf("distant coin should remain")
	}
	_, board, _ := ecs.GetFirst(w, component.ScoreboardComponent.Kind())
	if board.Score != 60 || board.Collected != 2 {
		t.Fatalf("unexpected scoreboard %+v", board)
	}
	if got := hudText(t, w, component.ScoreTextTagComponent.Kind()); got != "Score: 60" {
		t.Fatalf("score text = %q", got)
	}
	if got := hudText(t, w, component.CoinTextTagComponent.Kind()); got != "x 2" {
		t.Fatalf("coin text = %q", got)
	}
	if !flagged(t, w, player, "collect") || flagged(t, w, player, "win") {
		t.Fatalf("expected collect sound only")
	}
	if ScenePending(w) {
		t.Fatalf("level is not complete yet")
	}
}

func TestCollectibleSystemIgnoresOtherTiles(t *testing.T) {
	w, _, layer := newCoinWorld(t, 3)
	// centered on the decoration tile at (1,1)
	newPlayer(t, w, 48, 48)

	NewCollectibleSystem(nil, 3).Update(w)
	if layer.TileAt(1, 1) != 5 {
		t.Fatalf("non collectible tile was removed")
	}
	_, board, _ := ecs.GetFirst(w, component.ScoreboardComponent.Kind())
	if board.Collected != 0 {
		t.Fatalf("unexpected pickup: %+v", board)
	}
}

func TestCollectibleSystemLevelComplete(t *testing.T) {
	tests := []struct {
		name       string
		level      int
		wantAction component.SceneAction
		wantScene  string
		wantLevel  int
	}{
		{"next level", 1, component.SceneRestart, "", 2},
		{"last level", 3, component.SceneStart, component.WinSceneKey, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, _ := newCoinWorld(t, 2)
			_, board, _ := ecs.GetFirst(w, component.ScoreboardComponent.Kind())
			board.Level = tt.level
			player := newPlayer(t, w, 32, 16)

			sys := NewCollectibleSystem(FixedPoints(10), 3)
			sys.Update(w)

			if board.Collected != 2 || board.Score != 20 {
				t.Fatalf("unexpected scoreboard %+v", board)
			}
			if !flagged(t, w, player, "win") {
				t.Fatalf("expected win sound")
			}
			if _, req, ok := ecs.GetFirst(w, component.MusicRequestComponent.Kind()); !ok || !req.Immediate {
				t.Fatalf("expected an immediate music stop")
			}

			req, ok := TakeSceneRequest(w)
			if !ok {
				t.Fatalf("expected a scene request")
			}
			if req.Action != tt.wantAction || req.Scene != tt.wantScene || req.Level != tt.wantLevel {
				t.Fatalf("unexpected request %+v", req)
			}
		})
	}
}

func TestCollectibleSystemStopsAfterRequest(t *testing.T) {
	w, _, layer := newCoinWorld(t, 3)
	newPlayer(t, w, 32, 16)
	RequestScene(w, &component.SceneRequest{Action: component.SceneStart, Scene: component.GameOverSceneKey})

	NewCollectibleSystem(nil, 3).Update(w)
	if layer.TileAt(0, 0) != 2 {
		t.Fatalf("pickups must stop once a transition is pending")
	}
}

func TestRequestSceneFirstWins(t *testing.T) {
	w := ecs.NewWorld()
	if !RequestScene(w, &component.SceneRequest{Scene: component.GameOverSceneKey}) {
		t.Fatalf("first request should be accepted")
	}
	if RequestScene(w, &component.SceneRequest{Scene: component.WinSceneKey}) {
		t.Fatalf("second request should be dropped")
	}
	req, ok := TakeSceneRequest(w)
	if !ok || req.Scene != component.GameOverSceneKey {
		t.Fatalf("unexpected request %+v", req)
	}
	if ScenePending(w) {
		t.Fatalf("request should be consumed")
	}
}

func TestHazardSystem(t *testing.T) {
	w := ecs.NewWorld()
	player := newPlayer(t, w, 0, 0)
	board := ecs.CreateEntity(w)
	ecs.Add(w, board, component.ScoreboardComponent.Kind(), &component.Scoreboard{Level: 2, Score: 70})

	sys := NewHazardSystem()
	sys.Update(w)
	if ScenePending(w) {
		t.Fatalf("no contact, no request")
	}

	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	pc.HazardContact = true
	sys.Update(w)

	if !flagged(t, w, player, "gameover") {
		t.Fatalf("expected game over sound")
	}
	req, ok := TakeSceneRequest(w)
	if !ok || req.Scene != component.GameOverSceneKey || req.Score != 70 {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestHazardBeatsFinalPickup(t *testing.T) {
	w, _, _ := newCoinWorld(t, 2)
	player := newPlayer(t, w, 32, 16)
	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	pc.HazardContact = true

	NewHazardSystem().Update(w)
	NewCollectibleSystem(nil, 3).Update(w)

	req, ok := TakeSceneRequest(w)
	if !ok || req.Scene != component.GameOverSceneKey {
		t.Fatalf("expected game over to win the frame, got %+v", req)
	}
}

func TestPlayerController(t *testing.T) {
	tests := []struct {
		name      string
		input     component.Input
		grounded  bool
		wantVX    float64
		wantVY    float64
		wantAnim  string
		wantLeft  bool
		wantJumpS bool
	}{
		{"idle", component.Input{}, true, 0, 0, "turn", false, false},
		{"left", component.Input{Left: true}, true, -160, 0, "left", true, false},
		{"right", component.Input{Right: true}, true, 160, 0, "right", false, false},
		{"left wins over right", component.Input{Left: true, Right: true}, true, -160, 0, "left", true, false},
		{"jump grounded", component.Input{Up: true}, true, 0, -300, "turn", false, true},
		{"jump airborne", component.Input{Up: true}, false, 0, 0, "turn", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newPlayer(t, w, 0, 0)
			body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			body.Body = cp.NewBody(1, math.Inf(1))

			in, _ := ecs.Get(w, e, component.InputComponent.Kind())
			*in = tt.input
			pc, _ := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
			pc.Grounded = tt.grounded

			NewPlayerControllerSystem().Update(w)

			v := body.Body.Velocity()
			if v.X != tt.wantVX || v.Y != tt.wantVY {
				t.Fatalf("velocity = (%v, %v), want (%v, %v)", v.X, v.Y, tt.wantVX, tt.wantVY)
			}
			anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
			if anim.Current != tt.wantAnim {
				t.Fatalf("animation = %q, want %q", anim.Current, tt.wantAnim)
			}
			sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
			if sprite.FacingLeft != tt.wantLeft {
				t.Fatalf("FacingLeft = %v, want %v", sprite.FacingLeft, tt.wantLeft)
			}
			if flagged(t, w, e, "jump") != tt.wantJumpS {
				t.Fatalf("jump sound flagged = %v, want %v", !tt.wantJumpS, tt.wantJumpS)
			}
		})
	}
}

func TestPlayerControllerKeepsRunningClip(t *testing.T) {
	w := ecs.NewWorld()
	e := newPlayer(t, w, 0, 0)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	body.Body = cp.NewBody(1, math.Inf(1))
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.Left = true
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())

	sys := NewPlayerControllerSystem()
	sys.Update(w)
	anim.Frame = 2
	sys.Update(w)
	if anim.Frame != 2 {
		t.Fatalf("holding left should not restart the clip")
	}
}

func TestAnimationSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := newPlayer(t, w, 0, 0)
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	anim.Play("left", false)

	sys := NewAnimationSystem()
	// 10 fps at 60 ticks/s is 6 ticks per frame
	for i := 0; i < 6; i++ {
		sys.Update(w)
	}
	if anim.Frame != 1 {
		t.Fatalf("frame = %d, want 1", anim.Frame)
	}
	if sprite.Source.Min.X != (1+1)*32 || sprite.Source.Dy() != 48 || !sprite.UseSource {
		t.Fatalf("unexpected source %v", sprite.Source)
	}
	for i := 0; i < 12; i++ {
		sys.Update(w)
	}
	if anim.Frame != 0 || !anim.Playing {
		t.Fatalf("looping clip should wrap, frame=%d playing=%v", anim.Frame, anim.Playing)
	}

	anim.Play("turn", false)
	for i := 0; i < 10; i++ {
		sys.Update(w)
	}
	if anim.Frame != 0 || anim.Playing {
		t.Fatalf("single frame clip should hold, frame=%d playing=%v", anim.Frame, anim.Playing)
	}
	if sprite.Source.Min.X != 4*32 {
		t.Fatalf("turn source = %v", sprite.Source)
	}
}

func TestCameraSystem(t *testing.T) {
	tests := []struct {
		name         string
		px, py       float64
		wantX, wantY float64
	}{
		{"centered", 1000, 500, 600, 200},
		{"clamped top left", 100, 900, 0, 424},
		{"clamped bottom right", 1900, 1000, 1120, 424},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			newPlayer(t, w, tt.px, tt.py)
			bounds := ecs.CreateEntity(w)
			ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 1920, Height: 1024})
			cam := ecs.CreateEntity(w)
			ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{})
			ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{TargetName: "player", Zoom: 1, Bounded: true, ViewW: 800, ViewH: 600})

			NewCameraSystem().Update(w)

			x, y, zoom := cameraView(w)
			if x != tt.wantX || y != tt.wantY || zoom != 1 {
				t.Fatalf("camera at (%v, %v) zoom %v, want (%v, %v)", x, y, zoom, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMusicSystemRequests(t *testing.T) {
	w := ecs.NewWorld()
	ent := ecs.CreateEntity(w)
	player := &component.MusicPlayer{}
	ecs.Add(w, ent, component.MusicPlayerComponent.Kind(), player)

	loads := 0
	sys := NewMusicSystem(1)
	sys.load = func(string) (*audio.Player, error) {
		loads++
		return nil, nil
	}

	RequestMusic(w, "gameBGM", 0.1)
	sys.Update(w)
	if player.CurrentTrack != "gameBGM" || !player.CurrentLoop || player.CurrentVolume != 0.1 {
		t.Fatalf("unexpected music state %+v", player)
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
	if _, ok := ecs.First(w, component.MusicRequestComponent.Kind()); ok {
		t.Fatalf("requests should be consumed")
	}

	StopMusicNow(w)
	sys.Update(w)
	if player.CurrentTrack != "" || player.PendingActive {
		t.Fatalf("immediate stop should clear the track, got %+v", player)
	}
}

func TestPhysicsGroundedAndHazard(t *testing.T) {
	tests := []struct {
		name       string
		hazard     bool
		wantGround bool
	}{
		{"platform", false, true},
		{"lava", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := newPlayer(t, w, 100, 60)

			floor := ecs.CreateEntity(w)
			ecs.Add(w, floor, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 100})
			ecs.Add(w, floor, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 200, Height: 32, Static: true, AlignTopLeft: true})
			if tt.hazard {
				ecs.Add(w, floor, component.HazardComponent.Kind(), &component.Hazard{})
			}

			sys := NewPhysicsSystem(300)
			pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
			hazardFrames := 0
			for i := 0; i < 120; i++ {
				sys.Update(w)
				if pc.HazardContact {
					hazardFrames++
				}
			}

			if pc.Grounded != tt.wantGround {
				t.Fatalf("Grounded = %v, want %v", pc.Grounded, tt.wantGround)
			}
			if tt.hazard && hazardFrames == 0 {
				t.Fatalf("lava contact was never reported")
			}
			if !tt.hazard && hazardFrames != 0 {
				t.Fatalf("platform reported hazard contact")
			}

			tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
			if math.Abs(tr.Y-90) > 1 {
				t.Fatalf("player should rest on the floor, y=%v", tr.Y)
			}
		})
	}
}

func TestPhysicsAirborne(t *testing.T) {
	w := ecs.NewWorld()
	player := newPlayer(t, w, 100, 60)
	sys := NewPhysicsSystem(0)
	sys.Update(w)

	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	if pc.Grounded {
		t.Fatalf("falling player should not be grounded")
	}
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if body.Body == nil || body.Body.Velocity().Y <= 0 {
		t.Fatalf("default gravity should pull the player down")
	}
}

func TestInputSystemCopiesKeys(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Down: true}); err != nil {
		t.Fatalf("add input: %v", err)
	}

	held := map[ebiten.Key]bool{ebiten.KeyArrowLeft: true, ebiten.KeyArrowUp: true}
	NewInputSystemWithKeys(func(k ebiten.Key) bool { return held[k] }).Update(w)

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	want := component.Input{Left: true, Up: true}
	if *in != want {
		t.Fatalf("expected %+v, got %+v", want, *in)
	}
}
