package flstring

import (
	"math"
	"strconv"
)

// Builder growth constants.
const (
	builderInitialCapacity = 64
	// Below this, exponential growth doubles; above it, grows by half.
	// Small buffers double toward a useful size fast, large ones waste less.
	builderHalfGrowthThreshold = 256
)

// Builder accumulates bytes into a contiguous recycler-backed buffer and
// produces a String via Build. The buffer's ownership transfers to the
// built String when the content does not fit inline, so building a large
// result copies nothing.
//
// Builder implements io.Writer, io.StringWriter and io.ByteWriter. It is
// not safe for concurrent use.
type Builder struct {
	buf    []byte
	size   int
	policy GrowthPolicy
	step   int
	logger *Logger
}

// NewBuilder returns a Builder configured by opts.
func NewBuilder(optFns ...Option) (*Builder, error) {
	o := applyOptions(optFns)
	if o.initialCapacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if o.policy == GrowLinear && o.linearStep <= 0 {
		return nil, ErrInvalidGrowthStep
	}
	b := &Builder{
		policy: o.policy,
		step:   o.linearStep,
		logger: o.logger,
	}
	if b.logger == nil {
		b.logger = NoopLogger()
	}
	if o.initialCapacity > 0 {
		if err := b.Reserve(o.initialCapacity); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Len returns the number of accumulated bytes.
func (b *Builder) Len() int { return b.size }

// Cap returns the current buffer capacity.
func (b *Builder) Cap() int { return len(b.buf) }

// Empty reports whether nothing has been accumulated.
func (b *Builder) Empty() bool { return b.size == 0 }

// Bytes returns the accumulated content as a slice aliasing the buffer.
func (b *Builder) Bytes() []byte { return b.buf[:b.size] }

// Reserve ensures buffer capacity for at least capacity bytes.
func (b *Builder) Reserve(capacity int) error {
	if capacity < 0 {
		return ErrInvalidCapacity
	}
	return b.growTo(capacity)
}

// ReserveForElements reserves for elementCount elements of avgElementSize
// bytes each, clamping the product on overflow.
func (b *Builder) ReserveForElements(elementCount, avgElementSize int) error {
	if elementCount < 0 || avgElementSize < 0 {
		return ErrInvalidCapacity
	}
	if avgElementSize > 0 && elementCount > math.MaxInt/avgElementSize {
		return b.Reserve(math.MaxInt)
	}
	return b.Reserve(elementCount * avgElementSize)
}

// growTo reallocates to at least newCapacity, ignoring the growth policy.
func (b *Builder) growTo(newCapacity int) error {
	if newCapacity <= len(b.buf) {
		return nil
	}
	block, err := allocBlock(newCapacity)
	if err != nil {
		return err
	}
	copy(block, b.buf[:b.size])
	if b.buf != nil {
		freeBlock(b.buf)
	}
	b.logger.Debug("builder buffer grown", "capacity", len(block), "size", b.size)
	b.buf = block
	return nil
}

// growFor grows per the configured policy so minSize bytes fit.
func (b *Builder) growFor(minSize int) error {
	if minSize <= len(b.buf) {
		return nil
	}
	return b.growTo(b.growthCapacity(minSize))
}

func (b *Builder) growthCapacity(minSize int) int {
	target := minSize
	if target < builderInitialCapacity {
		target = builderInitialCapacity
	}

	if b.policy == GrowLinear {
		cur := len(b.buf)
		if cur >= target {
			return cur
		}
		steps := (target - cur + b.step - 1) / b.step
		grown := cur + steps*b.step
		if grown < target {
			grown = target
		}
		return grown
	}

	candidate := len(b.buf)
	if candidate < builderInitialCapacity {
		candidate = builderInitialCapacity
	}
	for candidate < target {
		if candidate < builderHalfGrowthThreshold {
			candidate *= 2
		} else {
			candidate += candidate / 2
		}
	}
	return candidate
}

// Append appends p to the accumulated content.
func (b *Builder) Append(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := b.growFor(b.size + len(p)); err != nil {
		return err
	}
	b.size += copy(b.buf[b.size:], p)
	return nil
}

// AppendString appends v.
func (b *Builder) AppendString(v string) error {
	if len(v) == 0 {
		return nil
	}
	if err := b.growFor(b.size + len(v)); err != nil {
		return err
	}
	b.size += copy(b.buf[b.size:], v)
	return nil
}

// AppendByte appends a single byte.
func (b *Builder) AppendByte(c byte) error {
	if err := b.growFor(b.size + 1); err != nil {
		return err
	}
	b.buf[b.size] = c
	b.size++
	return nil
}

// AppendRepeat appends count copies of ch.
func (b *Builder) AppendRepeat(count int, ch byte) error {
	if count < 0 {
		return ErrInvalidCapacity
	}
	if count == 0 {
		return nil
	}
	if err := b.growFor(b.size + count); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		b.buf[b.size+i] = ch
	}
	b.size += count
	return nil
}

// AppendInt appends the decimal representation of v.
func (b *Builder) AppendInt(v int64) error {
	var tmp [20]byte
	return b.Append(strconv.AppendInt(tmp[:0], v, 10))
}

// AppendUint appends the decimal representation of v.
func (b *Builder) AppendUint(v uint64) error {
	var tmp [20]byte
	return b.Append(strconv.AppendUint(tmp[:0], v, 10))
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	if err := b.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (b *Builder) WriteString(v string) (int, error) {
	if err := b.AppendString(v); err != nil {
		return 0, err
	}
	return len(v), nil
}

// WriteByte implements io.ByteWriter.
func (b *Builder) WriteByte(c byte) error {
	return b.AppendByte(c)
}

// Build produces a String from the accumulated content and leaves the
// builder empty. Content beyond the inline capacity hands the buffer to the
// String without copying; inline-sized content is copied and the buffer is
// retained for reuse.
func (b *Builder) Build() (String, error) {
	if b.size <= InlineCapacity {
		s, err := FromBytes(b.buf[:b.size])
		if err != nil {
			return String{}, err
		}
		b.size = 0
		return s, nil
	}
	// The String's storage needs one byte past the content for the
	// terminator.
	if err := b.growTo(b.size + 1); err != nil {
		return String{}, err
	}
	b.buf[b.size] = 0
	s := String{
		heap:  b.buf,
		size:  b.size,
		flags: heapFlag,
	}
	b.buf = nil
	b.size = 0
	return s, nil
}

// Reset discards the content but keeps the buffer for reuse.
func (b *Builder) Reset() {
	b.size = 0
}

// Release returns the buffer to the allocation path and resets the builder.
func (b *Builder) Release() {
	if b.buf != nil {
		freeBlock(b.buf)
		b.buf = nil
	}
	b.size = 0
}
