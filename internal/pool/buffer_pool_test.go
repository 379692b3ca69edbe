package pool

import "testing"

func TestBufferPoolReturnsEmptyBuffers(t *testing.T) {
	bp := NewBufferPool(16)

	buf := bp.Get()
	*buf = append(*buf, "dirty"...)
	bp.Put(buf)

	if got := bp.Get(); len(*got) != 0 {
		t.Errorf("Get returned buffer with length %d, want 0", len(*got))
	}
}

func TestStringBuilderPool(t *testing.T) {
	sp := NewStringBuilderPool()

	sb := sp.Get()
	sb.WriteString("hello")
	sb.Write([]byte(" world"))
	if sb.String() != "hello world" || sb.Len() != 11 {
		t.Errorf("builder = %q (len %d)", sb.String(), sb.Len())
	}
	sp.Put(sb)

	if got := sp.Get(); got.Len() != 0 {
		t.Errorf("reused builder has length %d, want 0", got.Len())
	}
}
