package mundt_calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ctx with the scalar state already pulled, bypassing the inbound adapter
func makeSolverContext() *zoneContext {
	return &zoneContext{
		zoneNum:             0,
		mundtZoneNum:        0,
		supplyAirTemp:       15.0,
		supplyAirVolumeRate: 0.5,
		zoneAirDensity:      1.2,
		qsysCoolTot:         1500.0,
	}
}

func TestSetupRolesBindsAllRoles(t *testing.T) {
	model, _ := makeTestModel()
	ctx := makeSolverContext()

	rs, err := model.setupRoles(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, rs.supplyNodeID)
	assert.Equal(t, 1, rs.footNodeID)
	assert.Equal(t, 2, rs.tstatNodeID)
	assert.Equal(t, 3, rs.ceilNodeID)
	assert.Equal(t, []int{4}, rs.roomNodeIDs)
	assert.Equal(t, 5, rs.returnNodeID)
}

func TestSetupRolesFloorSurfaceSet(t *testing.T) {
	model, _ := makeTestModel()
	ctx := makeSolverContext()

	// live surface state as the inbound adapter would have left it
	model.top.mundtAirSurf[0][0].temp = 22.0
	model.top.mundtAirSurf[0][0].hc = 2.5

	rs, err := model.setupRoles(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, rs.floorSurfIDs)
	assert.Equal(t, 20.0, rs.floorArea.AtVec(0))
	assert.Equal(t, 2.5, rs.floorHc.AtVec(0))
	assert.Equal(t, 22.0, rs.floorTemp.AtVec(0))

	ha, hat := rs.floor_sums()
	assert.InDelta(t, 20.0*2.5, ha, 1e-12)
	assert.InDelta(t, 20.0*2.5*22.0, hat, 1e-12)
}

func TestSetupRolesMissingFloorIsFatal(t *testing.T) {
	rd := makeTestInput()
	nodes := rd.Zones[0].AirNodes
	rd.Zones[0].AirNodes = append(nodes[:1:1], nodes[2:]...) // drop the floor node

	hb, err := BuildHeatBalance(rd)
	require.NoError(t, err)
	model, err := NewMundtModel(DefaultModelConfig(), hb, nil)
	require.NoError(t, err)

	ApplyStep(hb, &rd.Steps[0])
	err = model.ManageZone(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no floor air node")
	assert.Contains(t, err.Error(), `"ZONE ONE"`)
}

func TestSetupRolesUnknownClassIsFatal(t *testing.T) {
	model, _ := makeTestModel()
	model.top.lineNode[0][2].classType = AirNodeClass(9)

	_, err := model.setupRoles(makeSolverContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-standard type of air node")
}

func TestCalcMundtModelRoundTrip(t *testing.T) {
	// supply 15 degC at 0.5 m3/s and rho 1.2, cooling load 1500 W, no floor
	// film conductance, no floor gain apportionment: the floor air must sit
	// exactly on the supply condition and the gradient line must pass
	// through the leaving temperature at the return height
	model, _ := makeTestModel()
	ctx := makeSolverContext()

	rs, err := model.setupRoles(ctx)
	require.NoError(t, err)
	model.calcMundtModel(ctx, rs)

	nodes := model.top.lineNode[0]

	mcp := 1.2 * 1005.0 * 0.5
	t_leaving := 15.0 + 1500.0/mcp
	slope := (t_leaving - 15.0) / (2.4 - 0.1)

	assert.InDelta(t, 15.0, nodes[rs.footNodeID].temp, 1e-9)
	assert.InDelta(t, t_leaving, nodes[rs.returnNodeID].temp, 1e-12)
	assert.InDelta(t, t_leaving-slope*(2.4-2.4), nodes[rs.ceilNodeID].temp, 1e-12)
	assert.InDelta(t, t_leaving-slope*(2.4-1.1), nodes[rs.tstatNodeID].temp, 1e-12)
	assert.InDelta(t, t_leaving-slope*(2.4-1.5), nodes[rs.roomNodeIDs[0]].temp, 1e-12)
	assert.Equal(t, 15.0, nodes[rs.supplyNodeID].temp)

	// fan-out onto the surfaces follows the membership masks
	surfs := model.top.mundtAirSurf[0]
	assert.Equal(t, nodes[rs.footNodeID].temp, surfs[0].tMeanAir)
	assert.Equal(t, nodes[rs.ceilNodeID].temp, surfs[1].tMeanAir)
	assert.Equal(t, nodes[rs.roomNodeIDs[0]].temp, surfs[2].tMeanAir)
}

func TestCalcMundtModelRoomNodeBoundedByFloorAndCeiling(t *testing.T) {
	model, _ := makeTestModel()
	ctx := makeSolverContext()

	rs, err := model.setupRoles(ctx)
	require.NoError(t, err)
	model.calcMundtModel(ctx, rs)

	nodes := model.top.lineNode[0]
	t_foot := nodes[rs.footNodeID].temp
	t_ceil := nodes[rs.ceilNodeID].temp
	t_room := nodes[rs.roomNodeIDs[0]].temp

	assert.LessOrEqual(t, t_foot, t_room)
	assert.LessOrEqual(t, t_room, t_ceil)
}

func TestCalcMundtModelMaxSlopeClamp(t *testing.T) {
	model, _ := makeTestModel()
	ctx := makeSolverContext()
	ctx.qsysCoolTot = 20000.0 // raw slope well above the cap

	rs, err := model.setupRoles(ctx)
	require.NoError(t, err)
	model.calcMundtModel(ctx, rs)

	nodes := model.top.lineNode[0]
	mcp := 1.2 * 1005.0 * 0.5
	t_leaving := 15.0 + 20000.0/mcp

	// the floor temperature is recomputed from the clamped slope so the
	// line stays consistent
	assert.InDelta(t, t_leaving, nodes[rs.returnNodeID].temp, 1e-12)
	assert.InDelta(t, t_leaving-5.0*(2.4-0.1), nodes[rs.footNodeID].temp, 1e-12)
}

func TestCalcMundtModelMinSlopeClamp(t *testing.T) {
	model, _ := makeTestModel()
	ctx := makeSolverContext()
	ctx.qsysCoolTot = 0.001 // raw slope collapses below the minimum

	rs, err := model.setupRoles(ctx)
	require.NoError(t, err)
	model.calcMundtModel(ctx, rs)

	nodes := model.top.lineNode[0]
	t_leaving := nodes[rs.returnNodeID].temp

	// isothermal case: floor equals leaving
	assert.Equal(t, t_leaving, nodes[rs.footNodeID].temp)
	assert.InDelta(t, t_leaving-0.001*(2.4-1.1), nodes[rs.tstatNodeID].temp, 1e-12)
}

func TestCalcMundtModelNoLoadLeavingEqualsSupply(t *testing.T) {
	model, _ := makeTestModel()
	ctx := makeSolverContext()
	ctx.qsysCoolTot = 0.0

	rs, err := model.setupRoles(ctx)
	require.NoError(t, err)
	model.calcMundtModel(ctx, rs)

	assert.Equal(t, 15.0, model.top.lineNode[0][rs.returnNodeID].temp)
}

func TestResultWriterOverwrites(t *testing.T) {
	model, _ := makeTestModel()
	ctx := makeSolverContext()

	rs, err := model.setupRoles(ctx)
	require.NoError(t, err)

	model.calcMundtModel(ctx, rs)
	first := model.top.lineNode[0][rs.returnNodeID].temp

	ctx.qsysCoolTot = 3000.0
	model.calcMundtModel(ctx, rs)
	second := model.top.lineNode[0][rs.returnNodeID].temp

	assert.Greater(t, second, first)
	mcp := 1.2 * 1005.0 * 0.5
	assert.InDelta(t, 15.0+3000.0/mcp, second, 1e-12, "results overwrite, never accumulate")
}
