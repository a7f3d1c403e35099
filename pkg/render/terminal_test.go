package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

func TestNewTerminalRenderer_Dimensions(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		w, h       float64
		wantScaleX float64
		wantScaleY float64
	}{
		{"default arena", 64, 24, 1024, 768, 16, 32},
		{"square", 10, 10, 100, 100, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTerminalRenderer(&bytes.Buffer{}, tt.cols, tt.rows, tt.w, tt.h)
			if len(r.buffer) != tt.rows {
				t.Fatalf("buffer rows = %d, want %d", len(r.buffer), tt.rows)
			}
			for i, row := range r.buffer {
				if len(row) != tt.cols {
					t.Errorf("row %d width = %d, want %d", i, len(row), tt.cols)
				}
			}
			if r.scaleX != tt.wantScaleX || r.scaleY != tt.wantScaleY {
				t.Errorf("scale = %v x %v, want %v x %v", r.scaleX, r.scaleY, tt.wantScaleX, tt.wantScaleY)
			}
		})
	}
}

func TestWorldToScreen(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 64, 24, 1024, 768)

	tests := []struct {
		pos    physics.Vector2D
		wx, wy int
	}{
		{physics.Vector2D{X: 0, Y: 0}, 0, 0},
		{physics.Vector2D{X: 500, Y: 500}, 31, 15},
		{physics.Vector2D{X: 1023, Y: 767}, 63, 23},
	}
	for _, tt := range tests {
		if x, y := r.worldToScreen(tt.pos); x != tt.wx || y != tt.wy {
			t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.wx, tt.wy)
		}
	}
}

func TestClear(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, 10, 5, 100, 50)
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = 'X'
		}
	}
	r.status = "stale"

	r.Clear()

	for y := range r.buffer {
		for x := range r.buffer[y] {
			if r.buffer[y][x] != ' ' {
				t.Fatalf("cell (%d, %d) = %q after Clear", x, y, r.buffer[y][x])
			}
		}
	}
	if r.status != "" {
		t.Error("Clear() kept the status line")
	}
}

func TestRenderEntities(t *testing.T) {
	ids := entity.NewIDAllocator()
	robot := entity.NewRobot(ids, entity.RobotParams{
		Radius:           5,
		Position:         physics.Vector2D{X: 15, Y: 15},
		BatteryMaxCharge: 100,
		InitialHeading:   270,
		InitialSpeed:     5,
		MaxSpeed:         5,
	})
	home := entity.NewHomeBase(ids, entity.HomeBaseParams{Radius: 5, Position: physics.Vector2D{X: 75, Y: 15}})
	station := entity.NewRechargeStation(ids, entity.ImmobileParams{Radius: 5, Position: physics.Vector2D{X: 15, Y: 35}})
	obstacle := entity.NewObstacle(ids, entity.ImmobileParams{Radius: 15, Position: physics.Vector2D{X: 75, Y: 35}})

	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 10, 5, 100, 50)
	r.SetClearScreen(false)

	r.Clear()
	robot.Render(r)
	home.Render(r)
	station.Render(r)
	obstacle.Render(r)
	r.Present()

	cells := []struct {
		x, y int
		want rune
	}{
		{1, 1, SymbolRobot},
		{7, 1, SymbolHomeBase},
		{1, 3, SymbolStation},
		{7, 3, SymbolObstacle},
		{6, 3, SymbolObstacle},
		{8, 3, SymbolObstacle},
		{4, 2, ' '},
	}
	for _, c := range cells {
		if got := r.buffer[c.y][c.x]; got != c.want {
			t.Errorf("cell (%d, %d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("output has %d lines, want 8:\n%s", len(lines), out.String())
	}
	if lines[0] != "+----------+" {
		t.Errorf("top border = %q", lines[0])
	}
	if !strings.HasPrefix(lines[7], "Robot0 battery 100.0") {
		t.Errorf("status line = %q", lines[7])
	}
	if strings.Contains(out.String(), "\033[") {
		t.Error("clear sequence written while disabled")
	}
}

func TestPresent_ClearSequence(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 4, 2, 40, 20)
	r.Clear()
	r.Present()
	if !strings.HasPrefix(out.String(), "\033[H\033[2J") {
		t.Errorf("frame does not start with the clear sequence: %q", out.String())
	}
}
