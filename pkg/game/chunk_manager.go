package game

import (
	"log/slog"

	"github.com/leterax/go-footik/pkg/voxel"
)

// ChunkManager owns the voxel world built from the current level and tells
// the renderer when its chunks need to be uploaded again.
// It is only touched from the frame loop.
type ChunkManager struct {
	world *voxel.World
	level *Level
	log   *slog.Logger

	// Flag to track when chunks have changed
	chunksChanged bool
}

// NewChunkManager creates a manager with an empty world
func NewChunkManager(chunkSize int, log *slog.Logger) *ChunkManager {
	if log == nil {
		log = slog.Default()
	}
	return &ChunkManager{
		world:         voxel.NewWorld(chunkSize),
		log:           log,
		chunksChanged: true,
	}
}

// Load rebuilds the world from lvl
func (cm *ChunkManager) Load(lvl *Level) {
	lvl.Build(cm.world)
	cm.level = lvl

	width, depth := lvl.Size()
	cm.log.Info("level built",
		"name", lvl.Name,
		"width", width,
		"depth", depth,
		"chunks", len(cm.world.Chunks()))

	cm.markChunksChanged()
}

// World returns the block world
func (cm *ChunkManager) World() *voxel.World {
	return cm.world
}

// Level returns the level currently loaded, or nil
func (cm *ChunkManager) Level() *Level {
	return cm.level
}

// markChunksChanged sets the flag indicating chunks have changed
func (cm *ChunkManager) markChunksChanged() {
	cm.chunksChanged = true
}

// resetChunksChanged resets the changed flag and returns previous state
func (cm *ChunkManager) resetChunksChanged() bool {
	prevState := cm.chunksChanged
	cm.chunksChanged = false
	return prevState
}

// GetChunks returns a slice of all non-empty chunks for rendering
func (cm *ChunkManager) GetChunks() []*voxel.Chunk {
	all := cm.world.Chunks()
	chunks := make([]*voxel.Chunk, 0, len(all))
	for _, chunk := range all {
		if !chunk.Empty() {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// HaveChunksChanged returns true if the world was rebuilt since the last
// time this method was called
func (cm *ChunkManager) HaveChunksChanged() bool {
	return cm.resetChunksChanged()
}
