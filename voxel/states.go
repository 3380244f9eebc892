package voxel

import "fmt"

// State is the activation state of a voxel.
type State int

const (
	None State = iota
	Open
	Massive
)

func (s State) String() string {
	switch s {
	case None:
		return "None"
	case Open:
		return "Open"
	case Massive:
		return "Massive"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// FaceState classifies the interface between a voxel and its neighbour.
type FaceState int

const (
	FaceNone FaceState = iota
	FaceOpen
	FaceClosed
)

func (s FaceState) String() string {
	switch s {
	case FaceNone:
		return "None"
	case FaceOpen:
		return "Open"
	case FaceClosed:
		return "Closed"
	}
	return fmt.Sprintf("FaceState(%d)", int(s))
}

// ActivationState maps a field sample to a state: below 1 is None, below 2
// is Open and anything else, NaN included, is Massive.
func ActivationState(v float64) State {
	switch {
	case v < 1:
		return None
	case v < 2:
		return Open
	}
	return Massive
}

// InternalFaceState returns the role of the face between a voxel in state s
// and its neighbour n, nil when there is none. Only open voxels own internal
// faces, and only walls against massive material are closed.
func InternalFaceState(s State, n *State) FaceState {
	if s != Open {
		return FaceNone
	}
	if n != nil && *n == Massive {
		return FaceClosed
	}
	return FaceOpen
}

// IsFaceClosed reports whether the face between a voxel in state s and its
// neighbour n belongs to the enclosure: s must be present and n missing or None.
func IsFaceClosed(s State, n *State) bool {
	if s == None {
		return false
	}
	return n == nil || *n == None
}

// NeighbourState returns the state of v's neighbour in slot, or nil.
func (c *Complex) NeighbourState(v, slot int) *State {
	link := c.Voxels[v].Neighbours[slot]
	if !link.Valid {
		return nil
	}
	return &c.Voxels[link.Voxel].State
}

// Classify sets every voxel's state from f sampled at the voxel center.
func (c *Complex) Classify(f Field) {
	if f == nil {
		panic("voxel: classify with nil field")
	}
	for i := range c.Voxels {
		c.Voxels[i].State = ActivationState(f(c.Center(i)))
	}
}

// Count returns how many voxels are in state s.
func (c *Complex) Count(s State) (n int) {
	for _, v := range c.Voxels {
		if v.State == s {
			n++
		}
	}
	return n
}
