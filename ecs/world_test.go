package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/coindash/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			dead := ents[c.destroyIndex]
			if !DestroyEntity(w, dead) {
				t.Fatalf("DestroyEntity should succeed for a live entity")
			}
			if IsAlive(w, dead) || DestroyEntity(w, dead) {
				t.Fatalf("entity should be gone after destruction")
			}
			reused := CreateEntity(w)
			if reused == dead || IsAlive(w, dead) {
				t.Fatalf("reused slot must not revive the old handle")
			}
		})
	}
}

func TestZeroEntityNeverAlive(t *testing.T) {
	w := NewWorld()
	CreateEntity(w)
	var zero Entity
	if IsAlive(w, zero) {
		t.Fatalf("zero entity must not be alive")
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	DestroyEntity(w, e)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"dead entity", Add(w, e, component.ScoreboardComponent.Kind(), &component.Scoreboard{}), component.ErrEntityNotAlive},
		{"nil value", Add(w, CreateEntity(w), component.ScoreboardComponent.Kind(), nil), component.ErrNilComponent},
		{"zero kind", Add(w, CreateEntity(w), component.ComponentKind[component.Scoreboard]{}, &component.Scoreboard{}), component.ErrInvalidComponentKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Fatalf("got %v, want %v", tt.err, tt.want)
			}
		})
	}
}

func TestComponentsAreMutatedInPlace(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	if err := Add(w, e, component.ScoreboardComponent.Kind(), &component.Scoreboard{Level: 1, Total: 10}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	board, ok := Get(w, e, component.ScoreboardComponent.Kind())
	if !ok {
		t.Fatalf("expected scoreboard")
	}
	board.Score += 10
	board.Collected++

	_, again, ok := GetFirst(w, component.ScoreboardComponent.Kind())
	if !ok || again.Score != 10 || again.Collected != 1 {
		t.Fatalf("expected in-place update, got %+v", again)
	}

	if !Remove(w, e, component.ScoreboardComponent.Kind()) {
		t.Fatalf("Remove should report success")
	}
	if Has(w, e, component.ScoreboardComponent.Kind()) {
		t.Fatalf("scoreboard should be removed")
	}
	if _, ok := First(w, component.ScoreboardComponent.Kind()); ok {
		t.Fatalf("First should find nothing after removal")
	}
}

func TestDestroyClearsComponents(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 900})
	DestroyEntity(w, e)

	fresh := CreateEntity(w)
	if Has(w, fresh, component.PlayerTagComponent.Kind()) || Has(w, fresh, component.TransformComponent.Kind()) {
		t.Fatalf("recycled entity inherited components")
	}
}

func TestQueries(t *testing.T) {
	w := NewWorld()
	player := CreateEntity(w)
	coinText := CreateEntity(w)
	scoreText := CreateEntity(w)
	platform := CreateEntity(w)

	Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 900})
	Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 25.6, Height: 38.4})
	Add(w, player, component.InputComponent.Kind(), &component.Input{})

	for _, e := range []Entity{coinText, scoreText} {
		Add(w, e, component.TransformComponent.Kind(), &component.Transform{})
		Add(w, e, component.TextComponent.Kind(), &component.Text{})
		Add(w, e, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{})
	}
	Add(w, coinText, component.CoinTextTagComponent.Kind(), &component.CoinTextTag{})
	Add(w, scoreText, component.ScoreTextTagComponent.Kind(), &component.ScoreTextTag{})

	Add(w, platform, component.TransformComponent.Kind(), &component.Transform{})
	Add(w, platform, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Static: true})

	t.Run("query", func(t *testing.T) {
		got := Query(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind())
		if len(got) != 2 {
			t.Fatalf("expected player and platform, got %v", got)
		}
		if Query(w, component.TransformComponent.Kind(), component.HazardComponent.Kind()) != nil {
			t.Fatalf("query on an unused kind should be empty")
		}
	})

	t.Run("for_each", func(t *testing.T) {
		n := 0
		ForEach(w, component.TextComponent.Kind(), func(Entity, *component.Text) { n++ })
		if n != 2 {
			t.Fatalf("expected 2 texts, got %d", n)
		}
	})

	t.Run("for_each2", func(t *testing.T) {
		var hit []Entity
		ForEach2(w, component.CoinTextTagComponent.Kind(), component.TextComponent.Kind(), func(e Entity, _ *component.CoinTextTag, txt *component.Text) {
			txt.Value = "x 1"
			hit = append(hit, e)
		})
		if len(hit) != 1 || hit[0] != coinText {
			t.Fatalf("expected only the coin text, got %v", hit)
		}
		txt, _ := Get(w, coinText, component.TextComponent.Kind())
		if txt.Value != "x 1" {
			t.Fatalf("text not updated: %q", txt.Value)
		}
	})

	t.Run("for_each3", func(t *testing.T) {
		var hit []Entity
		ForEach3(w, component.TransformComponent.Kind(), component.TextComponent.Kind(), component.ScreenSpaceComponent.Kind(),
			func(e Entity, _ *component.Transform, _ *component.Text, _ *component.ScreenSpace) {
				hit = append(hit, e)
			})
		if len(hit) != 2 {
			t.Fatalf("expected both HUD texts, got %v", hit)
		}
	})

	t.Run("for_each4", func(t *testing.T) {
		var hit []Entity
		ForEach4(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.InputComponent.Kind(),
			func(e Entity, _ *component.PlayerTag, _ *component.Transform, _ *component.PhysicsBody, _ *component.Input) {
				hit = append(hit, e)
			})
		if len(hit) != 1 || hit[0] != player {
			t.Fatalf("expected only the player, got %v", hit)
		}
	})

	t.Run("ignores_dead", func(t *testing.T) {
		DestroyEntity(w, player)
		n := 0
		ForEach4(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.InputComponent.Kind(),
			func(Entity, *component.PlayerTag, *component.Transform, *component.PhysicsBody, *component.Input) {
				n++
			})
		if n != 0 {
			t.Fatalf("destroyed player still visited")
		}
	})
}

type orderSystem struct {
	name string
	log  *[]string
}

func (s orderSystem) Update(*World) { *s.log = append(*s.log, s.name) }

func TestSystemsRunInInsertionOrder(t *testing.T) {
	w := NewWorld()
	var order []string
	for _, name := range []string{"input", "physics", "hazard", "collectible"} {
		w.AddSystem(orderSystem{name: name, log: &order})
	}
	w.AddSystem(nil)

	w.Update()
	want := []string{"input", "physics", "hazard", "collectible"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if len(w.Systems()) != 4 {
		t.Fatalf("nil systems should be ignored")
	}
}
