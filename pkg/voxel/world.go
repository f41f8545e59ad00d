package voxel

// DefaultChunkSize is the edge length of a chunk in blocks
const DefaultChunkSize = 16

// World is a sparse set of chunks holding static block geometry.
// It is not safe for concurrent use.
type World struct {
	chunkSize int
	chunks    map[ChunkCoord]*Chunk
}

// NewWorld creates an empty world. A non-positive chunkSize uses DefaultChunkSize.
func NewWorld(chunkSize int) *World {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &World{
		chunkSize: chunkSize,
		chunks:    make(map[ChunkCoord]*Chunk),
	}
}

// ChunkSize returns the chunk edge length
func (w *World) ChunkSize() int {
	return w.chunkSize
}

// Block returns the block at a world position; unloaded space is air
func (w *World) Block(x, y, z int) BlockType {
	chunk, ok := w.chunks[WorldToChunkCoord(x, y, z, w.chunkSize)]
	if !ok {
		return Air
	}
	lx, ly, lz := WorldToLocalCoord(x, y, z, w.chunkSize)
	return chunk.GetBlock(lx, ly, lz)
}

// SetBlock sets the block at a world position, creating its chunk on demand
func (w *World) SetBlock(x, y, z int, blockType BlockType) {
	coord := WorldToChunkCoord(x, y, z, w.chunkSize)
	chunk, ok := w.chunks[coord]
	if !ok {
		if blockType == Air {
			return
		}
		chunk = NewChunk(coord, w.chunkSize)
		w.chunks[coord] = chunk
	}
	lx, ly, lz := WorldToLocalCoord(x, y, z, w.chunkSize)
	chunk.SetBlock(lx, ly, lz, blockType)
}

// IsSolid reports whether the block at a world position is solid
func (w *World) IsSolid(x, y, z int) bool {
	return w.Block(x, y, z).IsSolid()
}

// Chunk returns the chunk at coord, if loaded
func (w *World) Chunk(coord ChunkCoord) (*Chunk, bool) {
	c, ok := w.chunks[coord]
	return c, ok
}

// Chunks returns all loaded chunks
func (w *World) Chunks() []*Chunk {
	chunks := make([]*Chunk, 0, len(w.chunks))
	for _, chunk := range w.chunks {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// ForEachBlock visits every non-air block in the world
func (w *World) ForEachBlock(fn func(pos BlockPos, blockType BlockType)) {
	for _, chunk := range w.chunks {
		chunk.ForEachBlock(fn)
	}
}

// Clear removes all chunks
func (w *World) Clear() {
	w.chunks = make(map[ChunkCoord]*Chunk)
}

// TopSolid returns the Y of the highest solid block in the column at (x, z)
// at or below maxY, scanning down to minY.
func (w *World) TopSolid(x, z, minY, maxY int) (int, bool) {
	for y := maxY; y >= minY; y-- {
		if w.IsSolid(x, y, z) {
			return y, true
		}
	}
	return 0, false
}
