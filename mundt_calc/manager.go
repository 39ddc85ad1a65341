package mundt_calc

import "fmt"

// Per-invocation scalar working state of the zone currently being processed.
// Threaded by value through the pipeline so that zones never share state.
type zoneContext struct {
	zoneNum      int // zone number
	mundtZoneNum int // ordinal among zones using the Mundt model

	// geometric zone state, pulled alongside the rest but not read by the solve
	zoneHeight    float64 // m
	zoneFloorArea float64 // m2


	supplyAirTemp       float64 // degree C
	supplyAirVolumeRate float64 // m3/s
	zoneAirDensity      float64 // kg/m3
	qsysCoolTot         float64 // zone sensible cooling load, W
	convIntGain         float64 // convective internal gains, W
	qventCool           float64 // ventilation/infiltration cooling, W
}

// MundtModel evaluates the nodal Mundt stratification profile of the zones
// assigned to it. The topology is built once in NewMundtModel; ManageZone is
// called once per zone per heat-balance step.
type MundtModel struct {
	cfg ModelConfig
	hb  *HeatBalance
	top *Topology
	rec *Recorder
}

/*
Build the model over the host heat-balance tables.

	Args:
		cfg: model constants
		hb: host heat-balance tables
		rec: recorder for per-node temperature series, may be nil
	Returns:
		the model, or the accumulated configuration errors of the topology
		build
*/
func NewMundtModel(cfg ModelConfig, hb *HeatBalance, rec *Recorder) (*MundtModel, error) {
	top, err := NewTopology(hb, rec)
	if err != nil {
		return nil, err
	}
	return &MundtModel{cfg: cfg, hb: hb, top: top, rec: rec}, nil
}

// Topology exposes the built topology, read-only after construction.
func (m *MundtModel) Topology() *Topology {
	return m.top
}

/*
Run one invocation of the Mundt model for the zone: inbound coupling, the
flow/load gate, role resolution and the stratification solve when the gate
passes, and outbound coupling unconditionally.

	Args:
		zone_num: zone number
	Returns:
		an error on a fatal configuration problem; a zone failing the
		flow/load gate is not an error, it degrades to the well-mixed
		fallback
*/
func (m *MundtModel) ManageZone(zone_num int) error {
	if m.top.zoneData[zone_num].mundtZoneIndex < 0 {
		return fmt.Errorf("ManageZone: zone %q does not use the Mundt model", m.hb.Zones[zone_num].Name)
	}

	ctx, err := m.getSurfHBData(zone_num)
	if err != nil {
		return err
	}

	// use the Mundt model only for the cooling case
	var rs *roleSet
	if ctx.supplyAirVolumeRate > m.cfg.FlowCutoff && ctx.qsysCoolTot > m.cfg.LoadCutoff {
		rs, err = m.setupRoles(ctx)
		if err != nil {
			return fmt.Errorf("ManageZone: errors in setting up Mundt model: %w", err)
		}
		m.calcMundtModel(ctx, rs)
	}

	m.setSurfHBData(ctx, rs)

	return nil
}
