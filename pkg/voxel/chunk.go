package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Chunk represents a 3D cube of voxels
type Chunk struct {
	// Position in chunk coordinates (not world coordinates)
	Coord ChunkCoord
	// Size of the chunk in each dimension
	Size int
	// Voxel data, indexed with LocalToIndex
	Blocks []BlockType

	solidCount int
}

// NewChunk creates a new empty chunk at the specified coordinates
func NewChunk(coord ChunkCoord, size int) *Chunk {
	return &Chunk{
		Coord:  coord,
		Size:   size,
		Blocks: make([]BlockType, size*size*size),
	}
}

// FillWithBlockType fills the entire chunk with a single block type
func (c *Chunk) FillWithBlockType(blockType BlockType) {
	for i := range c.Blocks {
		c.Blocks[i] = blockType
	}
	if blockType.IsSolid() {
		c.solidCount = len(c.Blocks)
	} else {
		c.solidCount = 0
	}
}

// isValidCoordinate checks if the given coordinates are within the chunk boundaries
func (c *Chunk) isValidCoordinate(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < c.Size && y < c.Size && z < c.Size
}

// GetBlock returns the block type at the specified local coordinates
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if !c.isValidCoordinate(x, y, z) {
		return Air
	}
	return c.Blocks[LocalToIndex(x, y, z, c.Size)]
}

// SetBlock sets the block type at the specified local coordinates
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) {
	if !c.isValidCoordinate(x, y, z) {
		return
	}
	idx := LocalToIndex(x, y, z, c.Size)
	if c.Blocks[idx].IsSolid() {
		c.solidCount--
	}
	if blockType.IsSolid() {
		c.solidCount++
	}
	c.Blocks[idx] = blockType
}

// Empty reports whether the chunk holds no solid blocks
func (c *Chunk) Empty() bool {
	return c.solidCount == 0
}

// WorldPosition returns the world position of this chunk (corner)
func (c *Chunk) WorldPosition() mgl32.Vec3 {
	return ChunkToWorldPos(c.Coord, c.Size)
}

// ForEachBlock calls fn for every non-air block with its world position
func (c *Chunk) ForEachBlock(fn func(pos BlockPos, blockType BlockType)) {
	base := c.WorldPosition()
	bx, by, bz := int(base.X()), int(base.Y()), int(base.Z())
	for i, b := range c.Blocks {
		if b == Air {
			continue
		}
		x, y, z := IndexToLocal(i, c.Size)
		fn(BlockPos{X: bx + x, Y: by + y, Z: bz + z}, b)
	}
}
