package mundt_calc

// **** 表面・空気ドメイン間の結合 ****
//
// Two directional translators between the host heat balance and the air
// model: getSurfHBData pulls the zone's current state into a zoneContext
// before a solve, setSurfHBData pushes the solved (or fallback) temperatures
// back afterwards.

import (
	"fmt"
)

/*
Map data from the surface domain to the air domain for the zone.

	Args:
		zone_num: zone number
	Returns:
		the current zone context, or an error when the zone is not controlled
	Notes:
		The supply temperature is the flow-weighted mean over all inlet
		nodes; when the total inlet thermal capacity rate is not positive it
		falls back to the first inlet's temperature. The sensible cooling
		load is the negative of the supply enthalpy rate relative to the
		zone mean air temperature.
*/
func (m *MundtModel) getSurfHBData(zone_num int) (*zoneContext, error) {
	zone := &m.hb.Zones[zone_num]

	if !zone.IsControlled {
		return nil, fmt.Errorf("zones must be controlled for Mundt air model, no system serves zone %q", zone.Name)
	}

	ctx := &zoneContext{
		zoneNum:      zone_num,
		mundtZoneNum: m.top.zoneData[zone_num].mundtZoneIndex,
	}

	ctx.zoneHeight = zone.CeilingHeight
	ctx.zoneFloorArea = zone.FloorArea
	zone_mult := zone.Multiplier * zone.ListMultiplier

	// supply air flow rate is the same as the zone air flow rate
	mat_n := m.hb.MAT[zone_num]
	ctx.zoneAirDensity = PsyRhoAirFnPbTdbW(m.hb.OutBaroPress, mat_n, PsyWFnTdpPb(mat_n, m.hb.OutBaroPress))
	zone_mass_flow_rate := m.hb.Nodes[zone.SystemZoneNode].MassFlowRate
	ctx.supplyAirVolumeRate = zone_mass_flow_rate / ctx.zoneAirDensity

	if zone_mass_flow_rate <= m.cfg.FlowCutoff {
		// system is off
		ctx.qsysCoolTot = 0.0
	} else {
		// flow-weighted mean supply condition over the inlet nodes
		sum_sys_mcp := 0.0
		sum_sys_mcpt := 0.0
		inlets := m.hb.ZoneEquip[zone_num].InletNodes
		for _, inlet := range inlets {
			node_temp := m.hb.Nodes[inlet].Temp
			mass_flow_rate := m.hb.Nodes[inlet].MassFlowRate
			cp_air := PsyCpAirFnWTdb(m.hb.ZoneAirHumRat[zone_num], node_temp)
			sum_sys_mcp += mass_flow_rate * cp_air
			sum_sys_mcpt += mass_flow_rate * cp_air * node_temp
		}
		// prevent dividing by zero due to zero supply air flow rate
		if sum_sys_mcp <= 0.0 {
			ctx.supplyAirTemp = m.hb.Nodes[inlets[0]].Temp
		} else {
			ctx.supplyAirTemp = sum_sys_mcpt / sum_sys_mcp
		}
		cp_air := PsyCpAirFnWTdb(m.hb.ZoneAirHumRat[zone_num], mat_n)
		ctx.qsysCoolTot = -(sum_sys_mcpt - zone_mass_flow_rate*cp_air*mat_n)
	}

	// convective heat gains; zonal or cycling systems fold the return-air
	// gains in as well
	ctx.convIntGain = m.hb.SumIntConvGain[zone_num] +
		m.hb.SumConvHTRadSys[zone_num] +
		m.hb.SumConvPool[zone_num] +
		m.hb.SysDepZoneLoadsLagged[zone_num] +
		m.hb.NonAirSystemResponse[zone_num]/zone_mult
	if zone.NoHeatToReturnAir {
		ctx.convIntGain += m.hb.SumRetAirConvGain[zone_num]
	}

	ctx.qventCool = -m.hb.MCPI[zone_num] * (zone.OutDryBulbTemp - mat_n)

	// refresh the surface working records of this zone
	zd := &m.top.zoneData[zone_num]
	for s := 0; s < zd.numOfSurfs; s++ {
		surf := &m.top.mundtAirSurf[ctx.mundtZoneNum][s]
		surf.temp = m.hb.Surfaces[zd.surfFirst+s].TempSurfIn
		surf.hc = m.hb.Surfaces[zd.surfFirst+s].HConvIn
	}

	return ctx, nil
}

/*
Map data from the air domain back to the surface domain for the zone.

	Args:
		ctx: current zone context
		rs: role set of the solve, nil when the solve did not run
	Notes:
		Under direct coupling the solved temperatures are pushed back
		verbatim. Under indirect coupling they are expressed as deltas
		around the solved control-node temperature and added onto the zone
		thermostat setpoint; the thermostat air temperature is then the
		host's own zone air temperature, a known asymmetry kept from the
		originating model. When the solve did not run the zone degrades to
		the well-mixed assumption.
*/
func (m *MundtModel) setSurfHBData(ctx *zoneContext, rs *roleSet) {
	zone := &m.hb.Zones[ctx.zoneNum]
	zd := &m.top.zoneData[ctx.zoneNum]

	if ctx.supplyAirVolumeRate > m.cfg.FlowCutoff && ctx.qsysCoolTot > m.cfg.LoadCutoff {
		nodes := m.top.lineNode[ctx.mundtZoneNum]

		if m.hb.AirModels[ctx.zoneNum].TempCoupleScheme == DirectCoupling {
			// a) bulk air temperature seen by each surface
			for s := 0; s < zd.numOfSurfs; s++ {
				m.hb.Surfaces[zd.surfFirst+s].TempEffBulkAir = m.top.mundtAirSurf[ctx.mundtZoneNum][s].tMeanAir
				m.hb.Surfaces[zd.surfFirst+s].TAirRef = AdjacentAirTemp
			}
			// b) leaving-zone air temperature
			m.hb.Nodes[zone.SystemZoneNode].Temp = nodes[rs.returnNodeID].temp
			// c) thermostat air temperature
			m.hb.TempTstatAir[ctx.zoneNum] = nodes[rs.tstatNodeID].temp
		} else {
			// a) bulk air temperatures float around the thermostat setpoint
			for s := 0; s < zd.numOfSurfs; s++ {
				delta_temp := m.top.mundtAirSurf[ctx.mundtZoneNum][s].tMeanAir - nodes[rs.tstatNodeID].temp
				m.hb.Surfaces[zd.surfFirst+s].TempEffBulkAir = m.hb.TempZoneThermostatSetPoint[ctx.zoneNum] + delta_temp
				m.hb.Surfaces[zd.surfFirst+s].TAirRef = AdjacentAirTemp
			}
			// b) leaving-zone air temperature
			delta_temp := nodes[rs.returnNodeID].temp - nodes[rs.tstatNodeID].temp
			m.hb.Nodes[zone.SystemZoneNode].Temp = m.hb.TempZoneThermostatSetPoint[ctx.zoneNum] + delta_temp
			// c) thermostat air temperature follows the host's mean air
			m.hb.TempTstatAir[ctx.zoneNum] = m.hb.ZT[ctx.zoneNum]
		}
		m.hb.AirModels[ctx.zoneNum].SimAirModel = true
	} else {
		// system off: fall back to the well-mixed assumption
		for s := 0; s < zd.numOfSurfs; s++ {
			m.hb.Surfaces[zd.surfFirst+s].TempEffBulkAir = m.hb.MAT[ctx.zoneNum]
			m.hb.Surfaces[zd.surfFirst+s].TAirRef = ZoneMeanAirTemp
		}
		m.hb.AirModels[ctx.zoneNum].SimAirModel = false
	}
}
