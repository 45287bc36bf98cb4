package tech

// Kind is the role a physical layer plays in the stackup.
type Kind uint8

const (
	// Cut is a via/contact layer connecting two routing layers.
	Cut Kind = iota
	// Routing is a metal or access layer used for wiring.
	Routing
)

func (k Kind) String() string {
	switch k {
	case Cut:
		return "CUT"
	case Routing:
		return "ROUTING"
	}
	return "UNKNOWN"
}
