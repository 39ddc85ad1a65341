package mundt_calc

import "fmt"

// **** 空気ノードの分類 ****

// Class of an air node in the vertical air column of a zone.
type AirNodeClass int

const (
	// Class not yet assigned by the topology build.
	AirNodeUnset AirNodeClass = -1

	InletAirNode     AirNodeClass = 0 // supply inlet
	FloorAirNode     AirNodeClass = 1 // near-floor air
	ControlAirNode   AirNodeClass = 2 // thermostat
	CeilingAirNode   AirNodeClass = 3 // near-ceiling air
	MundtRoomAirNode AirNodeClass = 4 // generic wall/room node
	ReturnAirNode    AirNodeClass = 5 // return/leaving air
)

func (c AirNodeClass) String() string {
	switch c {
	case InletAirNode:
		return "inlet"
	case FloorAirNode:
		return "floor"
	case ControlAirNode:
		return "control"
	case CeilingAirNode:
		return "ceiling"
	case MundtRoomAirNode:
		return "room"
	case ReturnAirNode:
		return "return"
	default:
		return "unset"
	}
}

func AirNodeClassFromString(s string) (AirNodeClass, error) {
	m := map[string]AirNodeClass{
		"inlet":   InletAirNode,
		"floor":   FloorAirNode,
		"control": ControlAirNode,
		"ceiling": CeilingAirNode,
		"room":    MundtRoomAirNode,
		"return":  ReturnAirNode,
	}
	c, ok := m[s]
	if !ok {
		return AirNodeUnset, fmt.Errorf("unknown air node class %q", s)
	}
	return c, nil
}

// Declared air node. The topology build consumes these definitions with a
// single forward cursor per zone; definitions of one zone must therefore be
// contiguous and in a fixed order in the global list.
type AirNodeDef struct {
	Name     string       // identity name
	ZoneName string       // name of the zone the node belongs to
	Class    AirNodeClass // functional class
	Height   float64      // vertical position, m
	SurfMask []bool       // local surface membership, [zone surfaces]
}
