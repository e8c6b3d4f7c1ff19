package petri

// Builder provides a fluent API for constructing 1-safe Petri nets. It
// accumulates the first error encountered so call chains don't need to be
// interrupted at each step; Done reports it.
//
// Example:
//
//	net, err := petri.Build().
//	    Place("p1", true).
//	    Place("p2", false).
//	    Transition("t1").
//	    Arc("p1", "t1").
//	    Arc("t1", "p2").
//	    Done()
type Builder struct {
	net *PetriNet
	err error
}

// Build creates a new Builder for constructing a Petri net.
func Build() *Builder {
	return &Builder{net: New()}
}

// Place adds a place with the given initial token state.
func (b *Builder) Place(id string, hasToken bool) *Builder {
	return b.PlaceNamed(id, hasToken, "")
}

// PlaceNamed adds a place with a display name.
func (b *Builder) PlaceNamed(id string, hasToken bool, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.net.AddPlace(id, hasToken, name)
	return b
}

// Transition adds a transition.
func (b *Builder) Transition(id string) *Builder {
	return b.TransitionNamed(id, "")
}

// TransitionNamed adds a transition with a display name.
func (b *Builder) TransitionNamed(id string, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.net.AddTransition(id, name)
	return b
}

// Arc adds a place-transition or transition-place arc.
func (b *Builder) Arc(src, dst string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.net.AddArc(src, dst)
	return b
}

// Flow is a convenience for the common place -> transition -> place pattern.
func (b *Builder) Flow(fromPlace, transition, toPlace string) *Builder {
	return b.Arc(fromPlace, transition).Arc(transition, toPlace)
}

// Chain creates a sequential chain of places connected by fresh
// transitions: elements must alternate place, transition, place, ...
// starting and ending on a place. The first place receives the initial
// token.
func (b *Builder) Chain(elements ...string) *Builder {
	if b.err != nil {
		return b
	}
	if len(elements) < 3 || len(elements)%2 == 0 {
		return b
	}
	b.Place(elements[0], true)
	for i := 1; i < len(elements); i += 2 {
		trans := elements[i]
		nextPlace := elements[i+1]
		b.Transition(trans)
		b.Place(nextPlace, false)
		b.Arc(elements[i-1], trans)
		b.Arc(trans, nextPlace)
	}
	return b
}

// Done returns the completed net, or the first error encountered while
// building it.
func (b *Builder) Done() (*PetriNet, error) {
	return b.net, b.err
}
