package core

import "slices"

// Placement is a loader-supplied starting cell.
type Placement struct {
	Row int
	Col int
}

// AutonomousSpec describes an autonomous entity to place at construction.
type AutonomousSpec struct {
	Row    int
	Col    int
	Policy MovePolicy
	Name   string // Policy name, informational (e.g. "random", "patrol")
}

// Avatar is the single player-controlled entity.
type Avatar struct {
	ID    EntityID
	Row   int
	Col   int
	Keys  []KeyColor // Inventory in pickup order
	Alive bool
}

// HasKey reports whether the inventory holds a key of color c.
func (a Avatar) HasKey(c KeyColor) bool {
	return slices.Contains(a.Keys, c)
}

// addKey appends a key to the inventory.
func (a *Avatar) addKey(c KeyColor) {
	a.Keys = append(a.Keys, c)
}

// removeKey removes the first key of color c. Returns false if none is held.
func (a *Avatar) removeKey(c KeyColor) bool {
	i := slices.Index(a.Keys, c)
	if i < 0 {
		return false
	}
	a.Keys = slices.Delete(a.Keys, i, i+1)
	return true
}

// clone returns a copy that shares no memory with a.
func (a Avatar) clone() Avatar {
	a.Keys = slices.Clone(a.Keys)
	return a
}

// Autonomous is a non-player entity whose moves come from its policy.
type Autonomous struct {
	ID     EntityID
	Row    int
	Col    int
	Name   string
	Policy MovePolicy
}

// AutonomousView is the read-only copy of an autonomous entity handed to renderers.
type AutonomousView struct {
	ID   EntityID
	Row  int
	Col  int
	Name string
}
