// SPDX-License-Identifier: EPL-2.0

package engine

import "sync/atomic"

// take is a fixed capacity capture buffer written from the input callback.
// Writers reserve a range with a CAS on n before copying into it, so the
// buffer is never grown and never written out of bounds. Input that does not
// fit is counted and dropped.
type take struct {
	buf     []float32
	n       atomic.Int64
	dropped atomic.Uint64
}

func newTake(capacity int) *take {
	t := &take{}
	t.allocate(capacity)
	return t
}

// allocate sizes the buffer to capacity samples. It must not run while the
// input stream is started.
func (t *take) allocate(capacity int) {
	t.buf = make([]float32, max(capacity, 0))
	t.reset()
}

func (t *take) write(in []float32) {
	for {
		cur := t.n.Load()
		k := min(int64(len(in)), int64(len(t.buf))-cur)
		if k <= 0 {
			t.dropped.Add(uint64(len(in)))
			return
		}
		if t.n.CompareAndSwap(cur, cur+k) {
			copy(t.buf[cur:cur+k], in[:k])
			if rest := int64(len(in)) - k; rest > 0 {
				t.dropped.Add(uint64(rest))
			}
			return
		}
	}
}

func (t *take) reset() {
	t.n.Store(0)
	t.dropped.Store(0)
}

// samples returns a copy of what has been captured so far.
func (t *take) samples() []float32 {
	n := t.n.Load()
	out := make([]float32, n)
	copy(out, t.buf[:n])
	return out
}
