package heap

// ExtValPort is the nilary variant wrapping host-opaque data (spec.md §3.2,
// §4.4). Concrete implementations live in pkg/extrinsics (primitive n32/f32)
// and pkg/reader (cached host values); both satisfy this interface so the VM
// core can fork/drop them without knowing which.
type ExtValPort interface {
	Port
	ForkValue() ExtValPort
	DropValue()
}
