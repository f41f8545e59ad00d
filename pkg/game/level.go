package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/leterax/go-footik/levels"
	"github.com/leterax/go-footik/pkg/voxel"
)

// ErrEmptyLevel is returned for a level without any terrain rows.
var ErrEmptyLevel = errors.New("level has no terrain")

const defaultKillY = -32

// Level is a heightmap level. Heights holds one row per Z, each row a
// whitespace separated list of column heights along X.
type Level struct {
	Name    string       `yaml:"name"`
	Base    int          `yaml:"base"`
	Surface string       `yaml:"surface"`
	Fill    string       `yaml:"fill"`
	Spawn   [2]float32   `yaml:"spawn"`
	KillY   *float32     `yaml:"kill_y"`
	Heights []string     `yaml:"heights"`
	Blocks  []LevelBlock `yaml:"blocks"`

	surface voxel.BlockType
	fill    voxel.BlockType
	columns [][]int
}

// LevelBlock places a single block after the heightmap is built.
type LevelBlock struct {
	At    [3]int `yaml:"at"`
	Block string `yaml:"block"`

	blockType voxel.BlockType
}

// LoadLevel reads a level from disk or from the embedded level set.
func LoadLevel(path string) (*Level, error) {
	data, err := levels.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

// ParseLevel decodes and validates level YAML.
func ParseLevel(data []byte) (*Level, error) {
	lvl := &Level{
		Surface: "grass",
		Fill:    "dirt",
	}
	if err := yaml.Unmarshal(data, lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if err := lvl.resolve(); err != nil {
		return nil, err
	}
	return lvl, nil
}

func (l *Level) resolve() error {
	var err error
	if l.surface, err = voxel.ParseBlockType(l.Surface); err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	if l.fill, err = voxel.ParseBlockType(l.Fill); err != nil {
		return fmt.Errorf("fill: %w", err)
	}

	l.columns = l.columns[:0]
	for z, row := range l.Heights {
		fields := strings.Fields(row)
		if len(fields) == 0 {
			continue
		}
		heights := make([]int, len(fields))
		for x, f := range fields {
			h, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("heights row %d column %d: %w", z, x, err)
			}
			if h < 0 {
				return fmt.Errorf("heights row %d column %d: negative height %d", z, x, h)
			}
			heights[x] = h
		}
		l.columns = append(l.columns, heights)
	}
	if len(l.columns) == 0 {
		return ErrEmptyLevel
	}

	for i := range l.Blocks {
		b := &l.Blocks[i]
		if b.blockType, err = voxel.ParseBlockType(b.Block); err != nil {
			return fmt.Errorf("blocks[%d]: %w", i, err)
		}
	}
	return nil
}

// Size returns the heightmap footprint in blocks.
func (l *Level) Size() (width, depth int) {
	for _, row := range l.columns {
		if len(row) > width {
			width = len(row)
		}
	}
	return width, len(l.columns)
}

// ceiling is the highest Y any level block occupies.
func (l *Level) ceiling() int {
	top := l.Base
	for _, row := range l.columns {
		for _, h := range row {
			top = max(top, l.Base+h-1)
		}
	}
	for _, b := range l.Blocks {
		top = max(top, b.At[1])
	}
	return top
}

// KillHeight is the Y below which a falling character respawns.
func (l *Level) KillHeight() float32 {
	if l.KillY != nil {
		return *l.KillY
	}
	return defaultKillY
}

// Build replaces the contents of w with the level.
func (l *Level) Build(w *voxel.World) {
	w.Clear()
	for z, row := range l.columns {
		for x, h := range row {
			for i := 0; i < h; i++ {
				block := l.fill
				if i == h-1 {
					block = l.surface
				}
				w.SetBlock(x, l.Base+i, z, block)
			}
		}
	}
	for _, b := range l.Blocks {
		w.SetBlock(b.At[0], b.At[1], b.At[2], b.blockType)
	}
}

// SpawnPoint returns the actor location for a capsule of halfHeight standing
// on the spawn column of an already built world.
func (l *Level) SpawnPoint(w *voxel.World, halfHeight float32) mgl32.Vec3 {
	x, z := l.Spawn[0], l.Spawn[1]
	pos := voxel.BlockPosAt(mgl32.Vec3{x, 0, z})

	top, ok := w.TopSolid(pos.X, pos.Z, l.Base, l.ceiling())
	floor := float32(l.Base)
	if ok {
		floor = float32(top + 1)
	}
	return mgl32.Vec3{x, floor + halfHeight, z}
}
