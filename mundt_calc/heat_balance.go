package mundt_calc

// **** 熱収支側のデータテーブル ****
//
// In-memory tables of the host heat-balance engine. The coupling adapter
// pulls the per-step state from here before a solve and pushes the solved
// temperatures back. The driver (core.go) or a test populates these tables;
// the model itself only ever writes the fields listed as outbound in
// setSurfHBData.

// Reference air temperature mode of a surface.
type TAirRefMode int

const (
	ZoneMeanAirTemp TAirRefMode = iota // well mixed, use mean zone air
	AdjacentAirTemp                    // use the adjacent air node temperature
)

// Scheme for translating solved node temperatures back into the heat balance.
type CouplingScheme int

const (
	DirectCoupling   CouplingScheme = iota // solved values are taken verbatim
	IndirectCoupling                       // expressed as deltas around the setpoint
)

func CouplingSchemeFromString(s string) CouplingScheme {
	return map[string]CouplingScheme{
		"direct":   DirectCoupling,
		"indirect": IndirectCoupling,
	}[s]
}

// Room air model assigned to a zone.
type RoomAirModelType int

const (
	RoomAirModelMixing RoomAirModelType = iota // well-mixed single node
	RoomAirModelMundt                          // nodal Mundt model
)

// Static zone record of the host engine.
type ZoneRecord struct {
	Name              string
	SurfFirst         int // index of the first surface of the zone in HeatBalance.Surfaces
	SurfLast          int // index of the last surface of the zone
	IsControlled      bool
	CeilingHeight     float64 // m
	FloorArea         float64 // m2
	Multiplier        float64
	ListMultiplier    float64
	OutDryBulbTemp    float64 // degree C
	NoHeatToReturnAir bool
	SystemZoneNode    int // index of the zone supply node in HeatBalance.Nodes
}

// Surface record of the host engine. Area is static; the rest is overwritten
// every heat-balance step.
type SurfaceRecord struct {
	Area           float64     // m2
	TempSurfIn     float64     // inside surface temperature, degree C
	HConvIn        float64     // inside convection coefficient, W/m2K
	TempEffBulkAir float64     // effective bulk air temperature seen by the surface, degree C
	TAirRef        TAirRefMode // reference air temperature mode
}

// Node of the host air loop network.
type LoopNode struct {
	Temp         float64 // degree C
	MassFlowRate float64 // kg/s
}

// Equipment configuration of a controlled zone.
type ZoneEquipConfig struct {
	InletNodes []int // indices into HeatBalance.Nodes
}

// Room air model state of a zone.
type AirModelState struct {
	AirModelType     RoomAirModelType
	TempCoupleScheme CouplingScheme
	SimAirModel      bool // true while the air model result is in use
}

// HeatBalance carries the host-engine state the Mundt model couples to.
// All per-zone slices are indexed by zone number.
type HeatBalance struct {
	OutBaroPress float64 // outdoor barometric pressure, Pa

	Zones     []ZoneRecord
	Surfaces  []SurfaceRecord
	Nodes     []LoopNode
	ZoneEquip []ZoneEquipConfig
	AirModels []AirModelState

	// Global ordered list of declared air nodes and the declared per-zone
	// counts. Definitions of one zone are contiguous.
	AirNodeDefs     []AirNodeDef
	NumZoneAirNodes []int

	MAT                        []float64 // mean air temperature, degree C
	ZT                         []float64 // zone air temperature used by the system, degree C
	ZoneAirHumRat              []float64 // humidity ratio, kg/kgDA
	MCPI                       []float64 // infiltration mass flow times cp, W/K
	SumConvHTRadSys            []float64 // convective part of radiant systems, W
	SumConvPool                []float64 // convective part of pools, W
	SysDepZoneLoadsLagged      []float64 // lagged system-dependent loads, W
	NonAirSystemResponse       []float64 // non-air HVAC response, W
	TempZoneThermostatSetPoint []float64 // degree C
	TempTstatAir               []float64 // air temperature at the thermostat, degree C
	SumIntConvGain             []float64 // all internal convective gains, W
	SumRetAirConvGain          []float64 // return-air convective gains, W
	ConvectiveFloorSplit       []float64 // fraction of convective gain apportioned to the floor
	InfiltratFloorSplit        []float64 // fraction of infiltration load apportioned to the floor
}

// NumOfZones returns the number of zones in the building model.
func (hb *HeatBalance) NumOfZones() int {
	return len(hb.Zones)
}

// numOfSurfs returns the surface count of the zone.
func (hb *HeatBalance) numOfSurfs(zone_num int) int {
	z := &hb.Zones[zone_num]
	return z.SurfLast - z.SurfFirst + 1
}
