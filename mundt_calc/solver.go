package mundt_calc

// **** Mundt 成層モデルの計算 ****
//
// Role resolution and the closed-form stratification solve. The equations
// are the simplified Mundt model of ASHRAE RP-1222: a single linear vertical
// temperature gradient anchored at the return-air node.

import (
	"fmt"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

// Local indices of the role-bound air nodes of the zone being solved,
// together with its floor surface set. Rebuilt on every invocation.
type roleSet struct {
	supplyNodeID int
	footNodeID   int
	ceilNodeID   int
	tstatNodeID  int
	returnNodeID int
	roomNodeIDs  []int

	floorSurfIDs []int         // local surface indices whose mask bit is set on the floor node
	floorArea    *mat.VecDense // m2
	floorHc      *mat.VecDense // W/m2K
	floorTemp    *mat.VecDense // degree C
}

/*
Bind the zone's air nodes to the roles the gradient equations require and
derive the floor surface set.

	Args:
		ctx: current zone context
	Returns:
		the bound role set, or an accumulated error when a node carries an
		unsupported class or a required role is absent
*/
func (m *MundtModel) setupRoles(ctx *zoneContext) (*roleSet, error) {
	rs := &roleSet{
		supplyNodeID: -1,
		footNodeID:   -1,
		ceilNodeID:   -1,
		tstatNodeID:  -1,
		returnNodeID: -1,
	}

	nodes := m.top.lineNode[ctx.mundtZoneNum]
	zone_name := m.hb.Zones[ctx.zoneNum].Name

	var errs error
	for n := range nodes {
		switch nodes[n].classType {
		case InletAirNode:
			rs.supplyNodeID = n
		case FloorAirNode:
			rs.footNodeID = n
		case ControlAirNode:
			rs.tstatNodeID = n
		case CeilingAirNode:
			rs.ceilNodeID = n
		case MundtRoomAirNode:
			rs.roomNodeIDs = append(rs.roomNodeIDs, n)
		case ReturnAirNode:
			rs.returnNodeID = n
		default:
			errs = multierr.Append(errs,
				fmt.Errorf("non-standard type of air node for Mundt model, zone=%q", zone_name))
		}
	}

	if rs.footNodeID < 0 {
		errs = multierr.Append(errs,
			fmt.Errorf("Mundt model has no floor air node, zone=%q", zone_name))
	}
	// the gradient line is anchored at these heights
	if rs.returnNodeID < 0 {
		errs = multierr.Append(errs,
			fmt.Errorf("Mundt model has no return air node, zone=%q", zone_name))
	}
	if rs.ceilNodeID < 0 {
		errs = multierr.Append(errs,
			fmt.Errorf("Mundt model has no ceiling air node, zone=%q", zone_name))
	}
	if rs.tstatNodeID < 0 {
		errs = multierr.Append(errs,
			fmt.Errorf("Mundt model has no control air node, zone=%q", zone_name))
	}
	if errs != nil {
		return nil, errs
	}

	// refresh the floor surface set from the floor node's membership mask,
	// defaulting before copying the live surface state
	mask := nodes[rs.footNodeID].surfMask
	num_floor_surfs := count_mask(mask)
	rs.floorSurfIDs = make([]int, 0, num_floor_surfs)
	for s, set := range mask {
		if set {
			rs.floorSurfIDs = append(rs.floorSurfIDs, s)
		}
	}

	if num_floor_surfs > 0 {
		temp := make([]float64, num_floor_surfs)
		hc := make([]float64, num_floor_surfs)
		area := make([]float64, num_floor_surfs)
		for i := range temp {
			temp[i] = default_temp
			hc[i] = 0.0
			area[i] = 0.0
		}
		for i, s := range rs.floorSurfIDs {
			surf := &m.top.mundtAirSurf[ctx.mundtZoneNum][s]
			temp[i] = surf.temp
			hc[i] = surf.hc
			area[i] = surf.area
		}
		rs.floorTemp = mat.NewVecDense(num_floor_surfs, temp)
		rs.floorHc = mat.NewVecDense(num_floor_surfs, hc)
		rs.floorArea = mat.NewVecDense(num_floor_surfs, area)
	}

	return rs, nil
}

/*
Film conductance sums over the floor surface set.

	Returns:
		sum of hc*area and sum of hc*area*temp, W/K and W
*/
func (rs *roleSet) floor_sums() (float64, float64) {
	if rs.floorArea == nil {
		return 0.0, 0.0
	}
	ha := mat.NewVecDense(rs.floorArea.Len(), nil)
	ha.MulElemVec(rs.floorArea, rs.floorHc)
	return mat.Sum(ha), mat.Dot(ha, rs.floorTemp)
}

/*
Closed-form stratification solve and fan-out of the results onto the node
and surface records.

	Notes:
		Eq 2.2-2.4 of the ASHRAE RP-1222 final report. The gradient is
		clamped to [MinSlope, MaxSlope]; clamping to the maximum recomputes
		the floor air temperature from the leaving temperature so the line
		stays consistent, clamping to the minimum treats the zone as
		isothermal.
*/
func (m *MundtModel) calcMundtModel(ctx *zoneContext, rs *roleSet) {
	nodes := m.top.lineNode[ctx.mundtZoneNum]

	// apply floor splits
	q_equip_conv_floor := m.hb.ConvectiveFloorSplit[ctx.zoneNum] * ctx.convIntGain
	q_sens_infil_floor := -m.hb.InfiltratFloorSplit[ctx.zoneNum] * ctx.qventCool

	floor_sum_ha, floor_sum_hat := rs.floor_sums()

	// supply thermal capacity rate, W/K
	mcp_sys := ctx.zoneAirDensity * m.cfg.CpAir * ctx.supplyAirVolumeRate

	// Eq 2.2: energy balance at the floor node
	t_air_foot := (mcp_sys*ctx.supplyAirTemp + floor_sum_hat + q_equip_conv_floor + q_sens_infil_floor) /
		(mcp_sys + floor_sum_ha)

	// Eq 2.3: leaving air temperature; degenerate to supply when there is no
	// cooling load
	var t_leaving float64
	if ctx.qsysCoolTot <= 0.0 {
		t_leaving = ctx.supplyAirTemp
	} else {
		t_leaving = ctx.qsysCoolTot/mcp_sys + ctx.supplyAirTemp
	}

	// Eq 2.4: vertical gradient between floor and return heights
	foot_to_return := nodes[rs.returnNodeID].height - nodes[rs.footNodeID].height
	slope := (t_leaving - t_air_foot) / foot_to_return
	if slope > m.cfg.MaxSlope {
		slope = m.cfg.MaxSlope
		t_air_foot = t_leaving - slope*foot_to_return
	}
	if slope < m.cfg.MinSlope { // pretty much isothermal
		slope = m.cfg.MinSlope
		t_air_foot = t_leaving
	}

	t_air_ceil := t_leaving - slope*(nodes[rs.returnNodeID].height-nodes[rs.ceilNodeID].height)
	t_control_point := t_leaving - slope*(nodes[rs.returnNodeID].height-nodes[rs.tstatNodeID].height)

	// fan the results out; overwrite, never accumulate
	if rs.supplyNodeID >= 0 {
		m.setNodeResult(ctx.mundtZoneNum, rs.supplyNodeID, ctx.supplyAirTemp)
	}
	m.setNodeResult(ctx.mundtZoneNum, rs.returnNodeID, t_leaving)
	m.setNodeResult(ctx.mundtZoneNum, rs.ceilNodeID, t_air_ceil)
	m.setNodeResult(ctx.mundtZoneNum, rs.footNodeID, t_air_foot)
	m.setNodeResult(ctx.mundtZoneNum, rs.tstatNodeID, t_control_point)

	for _, s := range rs.floorSurfIDs {
		m.setSurfTmeanAir(ctx.mundtZoneNum, s, t_air_foot)
	}

	for s, set := range nodes[rs.ceilNodeID].surfMask {
		if set {
			m.setSurfTmeanAir(ctx.mundtZoneNum, s, t_air_ceil)
		}
	}

	for _, rn := range rs.roomNodeIDs {
		t_this_node := t_leaving - slope*(nodes[rs.returnNodeID].height-nodes[rn].height)
		m.setNodeResult(ctx.mundtZoneNum, rn, t_this_node)
		for s, set := range nodes[rn].surfMask {
			if set {
				m.setSurfTmeanAir(ctx.mundtZoneNum, s, t_this_node)
			}
		}
	}
}

// setNodeResult overwrites the solved temperature of an air node.
func (m *MundtModel) setNodeResult(mundt_zone_num int, node_id int, temp float64) {
	m.top.lineNode[mundt_zone_num][node_id].temp = temp
}

// setSurfTmeanAir overwrites the effective air temperature adjacent to a
// surface.
func (m *MundtModel) setSurfTmeanAir(mundt_zone_num int, surf_id int, t_eff_air float64) {
	m.top.mundtAirSurf[mundt_zone_num][surf_id].tMeanAir = t_eff_air
}
