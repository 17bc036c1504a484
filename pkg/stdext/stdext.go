// Package stdext is the standard library of extrinsics: n32/f32 arithmetic
// and comparison, and byte-oriented stdio (spec.md §6.1's "Standard
// extrinsics", grounded on the original compat.py).
package stdext

import (
	"bufio"
	"io"
	"math"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/host"
	"github.com/vic/ivm/pkg/values"
)

func n32(v values.N32) heap.ExtValPort     { return extrinsics.N32Port(v) }
func f32(v values.F32) heap.ExtValPort     { return extrinsics.F32Port(v) }
func boolN32(b bool) heap.ExtValPort {
	if b {
		return n32(1)
	}
	return n32(0)
}

func asN32(p heap.ExtValPort) values.N32 { return p.(extrinsics.PrimitiveExtValPort).N32Val }
func asF32(p heap.ExtValPort) values.F32 { return p.(extrinsics.PrimitiveExtValPort).F32Val }

// Register installs the standard extrinsics into h, writing io_print_byte
// and io_flush to stdout and reading io_read_byte from stdin.
func Register(h *host.Host, stdout io.Writer, stdin io.Reader) {
	w := bufio.NewWriter(stdout)
	r := bufio.NewReader(stdin)

	h.AddExtFun("n32_add", func(a, b heap.ExtValPort) heap.ExtValPort { return n32(asN32(a) + asN32(b)) })
	h.AddExtFun("n32_sub", func(a, b heap.ExtValPort) heap.ExtValPort { return n32(asN32(a) - asN32(b)) })
	h.AddExtFun("n32_mul", func(a, b heap.ExtValPort) heap.ExtValPort { return n32(asN32(a) * asN32(b)) })
	h.AddExtFun("n32_div", func(a, b heap.ExtValPort) heap.ExtValPort { return n32(asN32(a) / asN32(b)) })
	h.AddExtFun("n32_rem", func(a, b heap.ExtValPort) heap.ExtValPort { return n32(asN32(a) % asN32(b)) })
	h.AddExtFun("n32_eq", func(a, b heap.ExtValPort) heap.ExtValPort { return boolN32(asN32(a) == asN32(b)) })
	h.AddExtFun("n32_ne", func(a, b heap.ExtValPort) heap.ExtValPort { return boolN32(asN32(a) != asN32(b)) })
	h.AddExtFun("n32_lt", func(a, b heap.ExtValPort) heap.ExtValPort { return boolN32(asN32(a) < asN32(b)) })

	h.AddExtFun("f32_add", func(a, b heap.ExtValPort) heap.ExtValPort { return f32(asF32(a) + asF32(b)) })
	h.AddExtFun("f32_sub", func(a, b heap.ExtValPort) heap.ExtValPort { return f32(asF32(a) - asF32(b)) })
	h.AddExtFun("f32_mul", func(a, b heap.ExtValPort) heap.ExtValPort { return f32(asF32(a) * asF32(b)) })
	h.AddExtFun("f32_div", func(a, b heap.ExtValPort) heap.ExtValPort { return f32(asF32(a) / asF32(b)) })
	h.AddExtFun("f32_rem", func(a, b heap.ExtValPort) heap.ExtValPort {
		return f32(values.F32(math.Mod(float64(asF32(a)), float64(asF32(b)))))
	})
	h.AddExtFun("f32_eq", func(a, b heap.ExtValPort) heap.ExtValPort { return boolN32(asF32(a) == asF32(b)) })
	h.AddExtFun("f32_ne", func(a, b heap.ExtValPort) heap.ExtValPort { return boolN32(asF32(a) != asF32(b)) })
	h.AddExtFun("f32_lt", func(a, b heap.ExtValPort) heap.ExtValPort { return boolN32(asF32(a) < asF32(b)) })

	h.AddExtFun("io_print_byte", func(a, b heap.ExtValPort) heap.ExtValPort {
		w.WriteByte(byte(asN32(b)))
		return n32(0)
	})
	h.AddExtFun("io_flush", func(a, b heap.ExtValPort) heap.ExtValPort {
		w.Flush()
		return n32(0)
	})
	h.AddExtFun("io_read_byte", func(a, b heap.ExtValPort) heap.ExtValPort {
		c, err := r.ReadByte()
		if err != nil {
			return b
		}
		return n32(values.N32(c))
	})
}
