package rawwave

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/riff"
)

// CIDList is the chunk ID for a LIST chunk.
var CIDList = [4]byte{'L', 'I', 'S', 'T'}

const (
	chunkHeaderSize = 8
	formTypeSize    = 4
)

// Chunk is a node of a parsed RIFF tree.
// Data is a view into the buffer the tree was parsed from and holds exactly
// Size bytes, starting right after the 8 byte chunk header.
type Chunk struct {
	ID   [4]byte
	Size uint32
	Data []byte

	parent      int
	firstChild  int
	numChildren int
}

// IsContainer reports whether the chunk holds sub chunks (RIFF or LIST).
func (c *Chunk) IsContainer() bool {
	return c != nil && isContainerID(c.ID)
}

// FormType returns the 4 byte form (RIFF) or list (LIST) type of a container.
func (c *Chunk) FormType() ([4]byte, bool) {
	var form [4]byte
	if !c.IsContainer() || len(c.Data) < formTypeSize {
		return form, false
	}

	copy(form[:], c.Data[:formTypeSize])

	return form, true
}

func (c *Chunk) String() string {
	return fmt.Sprintf("%s (%d bytes)", c.ID[:], c.Size)
}

// ChunkTree is a RIFF chunk tree stored in an arena.
// Node relationships are arena indices, the tree is immutable once parsed and
// borrows the input buffer.
type ChunkTree struct {
	chunks []Chunk
}

// ParseChunks builds the chunk tree of a RIFF buffer.
// Containers are expanded breadth first; the children of a container occupy a
// contiguous range of the arena in stream order.
func ParseChunks(data []byte) (*ChunkTree, error) {
	if len(data) < chunkHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes can't hold a chunk header", ErrMalformedFormat, len(data))
	}

	root, _, err := readChunk(data, 0, -1)
	if err != nil {
		return nil, err
	}

	tree := &ChunkTree{chunks: []Chunk{root}}

	for idx := 0; idx < len(tree.chunks); idx++ {
		parent := tree.chunks[idx]
		if !isContainerID(parent.ID) {
			continue
		}

		if len(parent.Data) < formTypeSize {
			return nil, fmt.Errorf("%w: %s container without form type", ErrMalformedFormat, parent.ID[:])
		}

		first := len(tree.chunks)

		for offset := formTypeSize; len(parent.Data)-offset >= chunkHeaderSize; {
			child, next, err := readChunk(parent.Data, offset, idx)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", parent.ID[:], err)
			}

			tree.chunks = append(tree.chunks, child)
			offset = next
		}

		tree.chunks[idx].firstChild = first
		tree.chunks[idx].numChildren = len(tree.chunks) - first
	}

	return tree, nil
}

// readChunk reads the chunk whose header starts at offset in buf and returns
// it with the offset of the following sibling.
// A pad byte after an odd sized payload is skipped when buf still holds it.
func readChunk(buf []byte, offset int, parent int) (Chunk, int, error) {
	var chnk Chunk

	copy(chnk.ID[:], buf[offset:offset+4])
	chnk.Size = binary.LittleEndian.Uint32(buf[offset+4 : offset+chunkHeaderSize])

	start := offset + chunkHeaderSize
	if uint64(start)+uint64(chnk.Size) > uint64(len(buf)) {
		return chnk, 0, fmt.Errorf("%w: chunk %q declares %d bytes but only %d remain",
			ErrMalformedFormat, chnk.ID[:], chnk.Size, len(buf)-start)
	}

	end := start + int(chnk.Size)
	chnk.Data = buf[start:end:end]
	chnk.parent = parent

	if chnk.Size%2 == 1 && end < len(buf) {
		end++
	}

	return chnk, end, nil
}

// Root returns the top level chunk.
func (t *ChunkTree) Root() *Chunk {
	if t == nil || len(t.chunks) == 0 {
		return nil
	}

	return &t.chunks[0]
}

// Len returns the number of chunks in the tree, the root included.
func (t *ChunkTree) Len() int {
	if t == nil {
		return 0
	}

	return len(t.chunks)
}

// Children returns the sub chunks of c in stream order.
// The returned slice aliases the tree and must not be modified.
func (t *ChunkTree) Children(c *Chunk) []Chunk {
	if t == nil || c == nil || c.numChildren == 0 {
		return nil
	}

	return t.chunks[c.firstChild : c.firstChild+c.numChildren]
}

// Parent returns the container holding c.
func (t *ChunkTree) Parent(c *Chunk) (*Chunk, bool) {
	if t == nil || c == nil || c.parent < 0 {
		return nil, false
	}

	return &t.chunks[c.parent], true
}

// Find resolves a path made of concatenated 4 byte chunk IDs, such as
// "RIFFfmt ". The first sibling matching each ID wins.
func (t *ChunkTree) Find(path string) (*Chunk, bool) {
	if path == "" || len(path)%4 != 0 {
		return nil, false
	}

	ids := make([][4]byte, 0, len(path)/4)
	for i := 0; i < len(path); i += 4 {
		var id [4]byte
		copy(id[:], path[i:i+4])
		ids = append(ids, id)
	}

	return t.Lookup(ids...)
}

// Lookup is like Find but takes the path as a list of chunk IDs.
func (t *ChunkTree) Lookup(path ...[4]byte) (*Chunk, bool) {
	if t == nil || len(t.chunks) == 0 || len(path) == 0 {
		return nil, false
	}

	first, count := 0, 1

	for depth, id := range path {
		match := -1

		for i := first; i < first+count; i++ {
			if t.chunks[i].ID == id {
				match = i

				break
			}
		}

		if match < 0 {
			return nil, false
		}

		if depth == len(path)-1 {
			return &t.chunks[match], true
		}

		first, count = t.chunks[match].firstChild, t.chunks[match].numChildren
	}

	return nil, false
}

func isContainerID(id [4]byte) bool {
	return id == riff.RiffID || id == CIDList
}
