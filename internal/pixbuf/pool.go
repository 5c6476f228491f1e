package pixbuf

import "sync"

// Pool is a thread-safe pool for reusing Buf instances.
//
// Pool groups buffers by their geometry, so surfaces that are lost and
// restored, or released and created again at the same size, reuse memory.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buf
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identical buffer specifications.
type poolKey struct {
	width  int
	height int
	bpp    int
	stride int
}

// NewPool creates a new buffer pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Buf),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a buffer from the pool or creates a new one.
// A reused buffer is cleared before it is returned.
func (p *Pool) Get(width, height, bpp, stride int) (*Buf, error) {
	if stride == 0 {
		stride = width * bpp
	}
	key := poolKey{width: width, height: height, bpp: bpp, stride: stride}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.Clear()
		return buf, nil
	}
	p.mu.Unlock()

	return New(width, height, bpp, stride)
}

// Put returns a buffer to the pool for reuse.
// If buf is nil or the bucket is at max capacity, the buffer is discarded.
func (p *Pool) Put(buf *Buf) {
	if buf == nil {
		return
	}

	key := poolKey{
		width:  buf.width,
		height: buf.height,
		bpp:    buf.bpp,
		stride: buf.stride,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of pooled buffers.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
