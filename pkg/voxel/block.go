package voxel

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockType represents the different types of blocks in the world
type BlockType uint8

const (
	Air BlockType = iota
	Grass
	Dirt
	Stone
	Sand
	Snow
	OakPlanks
	StoneBricks
	Glass
	Water
)

// BlockProperties contains physical and visual properties of a block
type BlockProperties struct {
	Name  string
	Solid bool
	Color mgl32.Vec3
}

var blockProperties = map[BlockType]BlockProperties{
	Air:         {Name: "air", Solid: false},
	Grass:       {Name: "grass", Solid: true, Color: mgl32.Vec3{0.36, 0.62, 0.27}},
	Dirt:        {Name: "dirt", Solid: true, Color: mgl32.Vec3{0.47, 0.33, 0.22}},
	Stone:       {Name: "stone", Solid: true, Color: mgl32.Vec3{0.5, 0.5, 0.52}},
	Sand:        {Name: "sand", Solid: true, Color: mgl32.Vec3{0.86, 0.8, 0.56}},
	Snow:        {Name: "snow", Solid: true, Color: mgl32.Vec3{0.95, 0.96, 0.98}},
	OakPlanks:   {Name: "oak_planks", Solid: true, Color: mgl32.Vec3{0.66, 0.52, 0.32}},
	StoneBricks: {Name: "stone_bricks", Solid: true, Color: mgl32.Vec3{0.45, 0.45, 0.45}},
	// Glass is solid for traces, water is not.
	Glass: {Name: "glass", Solid: true, Color: mgl32.Vec3{0.75, 0.88, 0.95}},
	Water: {Name: "water", Solid: false, Color: mgl32.Vec3{0.2, 0.35, 0.8}},
}

// GetBlockProperties returns properties for a specific block type
func GetBlockProperties(blockType BlockType) BlockProperties {
	props, exists := blockProperties[blockType]
	if !exists {
		// Unknown blocks still block movement and traces
		return BlockProperties{Name: "unknown", Solid: true, Color: mgl32.Vec3{1, 0, 1}}
	}
	return props
}

// IsSolid returns whether the block type is solid
func (b BlockType) IsSolid() bool {
	return GetBlockProperties(b).Solid
}

// Color returns the flat shading color of the block
func (b BlockType) Color() mgl32.Vec3 {
	return GetBlockProperties(b).Color
}

func (b BlockType) String() string {
	return GetBlockProperties(b).Name
}

// ParseBlockType looks a block type up by its name, case-insensitively
func ParseBlockType(name string) (BlockType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, props := range blockProperties {
		if props.Name == name {
			return t, nil
		}
	}
	return Air, fmt.Errorf("unknown block type %q", name)
}
