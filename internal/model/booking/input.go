package booking

// Input is one user-originated event consumed by the dialogue engine:
// either a free-text utterance or a structured choice coming from a
// selection affordance. The two kinds go through the same dispatch.
type Input interface {
	isInput()
}

// FreeText is a raw typed utterance.
type FreeText string

func (FreeText) isInput() {}

// StructuredChoice identifies an item picked from a presented list,
// e.g. a ride option. Only valid while the session sits in its
// selection state.
type StructuredChoice struct {
	ID string
}

func (StructuredChoice) isInput() {}
