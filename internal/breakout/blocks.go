package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// DefaultBlockCount is the number of blocks in a fresh row.
const DefaultBlockCount = 8

// Block is a destructible target. Pos is the block's centre.
type Block struct {
	ID    NodeRef
	Pos   core.Vec
	Width float64
}

// BlockLayout describes how the single row of blocks is placed.
type BlockLayout struct {
	Count       int     // number of blocks; <= 0 means DefaultBlockCount
	Width       float64 // width of one block
	FieldWidth  float64
	FieldHeight float64
	// Row is the height of the row measured from the bottom of the field,
	// as a fraction of FieldHeight (0.8 puts blocks near the top).
	Row float64
}

// BlockField tracks the blocks still standing in one session.
// The set only shrinks.
type BlockField struct {
	blocks map[NodeRef]Block
	order  []NodeRef
	total  int
}

// NewBlockField lays out one centred row of blocks.
func NewBlockField(l BlockLayout) *BlockField {
	count := l.Count
	if count <= 0 {
		count = DefaultBlockCount
	}

	width := l.Width
	if width*float64(count) > l.FieldWidth {
		width = l.FieldWidth / float64(count)
	}

	xOffset := (l.FieldWidth - width*float64(count)) / 2
	y := l.FieldHeight * (1 - l.Row)

	f := &BlockField{
		blocks: make(map[NodeRef]Block, count),
		order:  make([]NodeRef, 0, count),
		total:  count,
	}
	for i := range count {
		id := firstBlockNode + NodeRef(i)
		f.blocks[id] = Block{
			ID:    id,
			Pos:   core.Vec{X: xOffset + (float64(i)+0.5)*width, Y: y},
			Width: width,
		}
		f.order = append(f.order, id)
	}
	return f
}

// Destroy removes a block. It returns false when the block is unknown or
// already gone; that is not an error.
func (f *BlockField) Destroy(id NodeRef) bool {
	if _, ok := f.blocks[id]; !ok {
		return false
	}
	delete(f.blocks, id)
	return true
}

// Remaining returns the number of blocks still standing.
func (f *BlockField) Remaining() int {
	return len(f.blocks)
}

// Total returns the number of blocks the field started with.
func (f *BlockField) Total() int {
	return f.total
}

// IsCleared reports whether every block has been destroyed.
func (f *BlockField) IsCleared() bool {
	return f.Remaining() == 0
}

// Block looks up a standing block.
func (f *BlockField) Block(id NodeRef) (Block, bool) {
	b, ok := f.blocks[id]
	return b, ok
}

// Blocks returns the standing blocks from left to right.
func (f *BlockField) Blocks() []Block {
	out := make([]Block, 0, len(f.blocks))
	for _, id := range f.order {
		if b, ok := f.blocks[id]; ok {
			out = append(out, b)
		}
	}
	return out
}
