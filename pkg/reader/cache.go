package reader

import (
	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/tree"
	"github.com/vic/ivm/pkg/values"
)

// CachedExtValPort wraps an opaque host value the extrinsics layer cannot
// represent as a primitive n32/f32 (spec.md §4.4). It carries its own
// serialized form so readback round-trips it verbatim rather than trying to
// re-derive a textual shape for host data the reader cannot inspect.
type CachedExtValPort struct {
	Cache      *ExtrinsicsCache
	Index      int
	Serialized tree.Tree
	Tr         *heap.Trace
}

func (CachedExtValPort) PortTag() heap.Tag { return heap.TagExtVal }

// ForkValue returns the same port: the cache holds the value by index, so
// duplicating the port duplicates only the (cheap) reference to it.
func (p CachedExtValPort) ForkValue() heap.ExtValPort { return p }

// DropValue is a no-op: spec.md §1 explicitly excludes garbage collection
// of cached host data from this VM's scope.
func (CachedExtValPort) DropValue() {}

// Value returns the cached host value this port refers to.
func (p CachedExtValPort) Value() interface{} { return p.Cache.values[p.Index] }

// ExtrinsicsCache is an append-only list of host values referenced from the
// graph by index, plus the "cache" ext_fn that looks one up (spec.md §4.4).
type ExtrinsicsCache struct {
	values []interface{}
}

// NewExtrinsicsCache returns an empty cache.
func NewExtrinsicsCache() *ExtrinsicsCache { return &ExtrinsicsCache{} }

// Add appends v and returns a fresh port wrapping it, with its `@cache(idx
// 0)` serialized form already attached.
func (c *ExtrinsicsCache) Add(v interface{}) CachedExtValPort {
	idx := len(c.values)
	c.values = append(c.values, v)
	return c.wrap(idx)
}

func (c *ExtrinsicsCache) wrap(idx int) CachedExtValPort {
	return CachedExtValPort{
		Cache: c,
		Index: idx,
		Serialized: tree.ExtFnNode{
			Label: "cache",
			Left:  tree.N32Node{Value: values.N32(idx)},
			Right: tree.N32Node{Value: 0},
		},
	}
}

// InstallInto registers the cache as the "cache" ext_fn: called with an
// index operand, it returns a fresh CachedExtValPort wrapping cache[idx].
func (c *ExtrinsicsCache) InstallInto(ext *extrinsics.Extrinsics) {
	ext.Fns["cache"] = func(a, b heap.ExtValPort) heap.ExtValPort {
		idx, ok := a.(extrinsics.PrimitiveExtValPort)
		if !ok {
			idx = b.(extrinsics.PrimitiveExtValPort)
		}
		return c.wrap(int(idx.N32Val))
	}
}
