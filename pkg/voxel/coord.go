package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord represents the x,y,z coordinates of a chunk
type ChunkCoord struct {
	X, Y, Z int32
}

// BlockPos is the integer position of a single block in world space
type BlockPos struct {
	X, Y, Z int
}

// BlockPosAt returns the block containing a world-space point
func BlockPosAt(p mgl32.Vec3) BlockPos {
	return BlockPos{
		X: int(math.Floor(float64(p.X()))),
		Y: int(math.Floor(float64(p.Y()))),
		Z: int(math.Floor(float64(p.Z()))),
	}
}

// Center returns the world-space center of the block
func (p BlockPos) Center() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X) + 0.5, float32(p.Y) + 0.5, float32(p.Z) + 0.5}
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// WorldToChunkCoord converts a world block position to chunk coordinates
func WorldToChunkCoord(worldX, worldY, worldZ int, chunkSize int) ChunkCoord {
	return ChunkCoord{
		X: int32(floorDiv(worldX, chunkSize)),
		Y: int32(floorDiv(worldY, chunkSize)),
		Z: int32(floorDiv(worldZ, chunkSize)),
	}
}

// WorldToLocalCoord converts a world position to local coordinates within a chunk
func WorldToLocalCoord(worldX, worldY, worldZ int, chunkSize int) (int, int, int) {
	localX := worldX % chunkSize
	localY := worldY % chunkSize
	localZ := worldZ % chunkSize

	// Handle negative coordinates properly
	if localX < 0 {
		localX += chunkSize
	}
	if localY < 0 {
		localY += chunkSize
	}
	if localZ < 0 {
		localZ += chunkSize
	}

	return localX, localY, localZ
}

// ChunkToWorldPos converts chunk coordinates to world position (corner of chunk)
func ChunkToWorldPos(coord ChunkCoord, chunkSize int) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(int(coord.X) * chunkSize),
		float32(int(coord.Y) * chunkSize),
		float32(int(coord.Z) * chunkSize),
	}
}

// LocalToIndex converts local block coordinates to an index in a flat array
func LocalToIndex(x, y, z, chunkSize int) int {
	return x*chunkSize*chunkSize + y*chunkSize + z
}

// IndexToLocal converts a flat array index to local coordinates within a chunk
func IndexToLocal(index, chunkSize int) (x, y, z int) {
	x = index / (chunkSize * chunkSize)
	remainder := index % (chunkSize * chunkSize)
	y = remainder / chunkSize
	z = remainder % chunkSize
	return
}
