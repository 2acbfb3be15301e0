package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the top-level game configuration in game.yaml.
type GameSpec struct {
	Title              string     `yaml:"title"`
	Screen             ScreenSpec `yaml:"screen"`
	Gravity            float64    `yaml:"gravity"`
	Levels             int        `yaml:"levels"`
	SolidLayer         string     `yaml:"solid_layer"`
	HazardLayer        string     `yaml:"hazard_layer"`
	CollectibleLayer   string     `yaml:"collectible_layer"`
	CollectibleIndices []int      `yaml:"collectible_indices"`
	PickupScript       string     `yaml:"pickup_script"`
	Music              MusicSpec  `yaml:"music"`
	HUD                HUDSpec    `yaml:"hud"`
}

type ScreenSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type MusicSpec struct {
	Track  string  `yaml:"track"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

type HUDSpec struct {
	FontSize  float64      `yaml:"font_size"`
	Color     *YAMLColor   `yaml:"color"`
	Score     PositionSpec `yaml:"score"`
	CoinIcon  IconSpec     `yaml:"coin_icon"`
	CoinCount PositionSpec `yaml:"coin_count"`
}

type PositionSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type IconSpec struct {
	Image string  `yaml:"image"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

func (g *GameSpec) applyDefaults() {
	if g.Screen.Width <= 0 || g.Screen.Height <= 0 {
		g.Screen = ScreenSpec{Width: 800, Height: 600}
	}
	if g.Levels <= 0 {
		g.Levels = 3
	}
	if g.SolidLayer == "" {
		g.SolidLayer = "platform"
	}
	if g.HazardLayer == "" {
		g.HazardLayer = "lava"
	}
	if g.CollectibleLayer == "" {
		g.CollectibleLayer = "coin"
	}
	if len(g.CollectibleIndices) == 0 {
		g.CollectibleIndices = []int{2, 4}
	}
	if g.HUD.FontSize <= 0 {
		g.HUD.FontSize = 32
	}
	if g.HUD.Color == nil {
		g.HUD.Color = &YAMLColor{Color: color.White}
	}
}

type CameraSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Target    string        `yaml:"target"`
	Zoom      float64       `yaml:"zoom"`
	Bounded   bool          `yaml:"bounded"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name        string          `yaml:"name"`
	MoveSpeed   float64         `yaml:"move_speed"`
	JumpSpeed   float64         `yaml:"jump_speed"`
	Mass        float64         `yaml:"mass"`
	Transform   TransformSpec   `yaml:"transform"`
	Collider    ColliderSpec    `yaml:"collider"`
	Sprite      SpriteSpec      `yaml:"sprite"`
	Animation   AnimationSpec   `yaml:"animation"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
	Audio       []AudioSpec     `yaml:"audio"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// ColliderSpec sizes are in source pixels, before the transform scale.
type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	OffsetX  float64 `yaml:"offsetX"`
	OffsetY  float64 `yaml:"offsetY"`
	Friction float64 `yaml:"friction"`
}

type SpriteSpec struct {
	Image     string  `yaml:"image"`
	UseSource bool    `yaml:"use_source"`
	OriginX   float64 `yaml:"origin_x"`
	OriginY   float64 `yaml:"origin_y"`
}

type AnimationSpec struct {
	Sheet   string                      `yaml:"sheet"`
	Defs    map[string]AnimationDefSpec `yaml:"defs"`
	Current string                      `yaml:"current"`
	Playing bool                        `yaml:"playing"`
}

type AnimationDefSpec struct {
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
