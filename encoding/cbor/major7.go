package cbor

// The decoder names major-type-7 results distinctly from the encoder's
// constructors for the same values, since a decoded bool/nil/float and a
// caller-constructed one only ever need to compare equal, never share
// identity. They're the same representation underneath.
type (
	Major7Bool      = Bool
	Major7Nil       = Nil
	Major7Undefined = Undefined
	Major7Float32   = Float32
	Major7Float64   = Float64
)
