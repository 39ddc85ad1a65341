package mundt_calc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeatBalanceLayout(t *testing.T) {
	rd := makeTestInput()
	rd.Zones = append(rd.Zones, makeZoneJson("ZONE TWO"))

	hb, err := BuildHeatBalance(rd)
	require.NoError(t, err)

	require.Len(t, hb.Zones, 2)
	assert.Equal(t, 0, hb.Zones[0].SurfFirst)
	assert.Equal(t, 2, hb.Zones[0].SurfLast)
	assert.Equal(t, 3, hb.Zones[1].SurfFirst)
	assert.Equal(t, 5, hb.Zones[1].SurfLast)
	assert.Equal(t, 3, hb.numOfSurfs(1))

	// multipliers default to 1
	assert.Equal(t, 1.0, hb.Zones[0].Multiplier)
	assert.Equal(t, 1.0, hb.Zones[0].ListMultiplier)

	// definitions are contiguous per zone, in declaration order
	require.Len(t, hb.AirNodeDefs, 12)
	assert.Equal(t, "ZONE ONE", hb.AirNodeDefs[5].ZoneName)
	assert.Equal(t, "ZONE TWO", hb.AirNodeDefs[6].ZoneName)
	assert.Equal(t, []int{6, 6}, hb.NumZoneAirNodes)

	// membership mask resolved from surface names
	assert.Equal(t, []bool{true, false, false}, hb.AirNodeDefs[1].SurfMask)

	// distinct inlet and system nodes per zone
	assert.NotEqual(t, hb.ZoneEquip[0].InletNodes[0], hb.Zones[0].SystemZoneNode)
}

func TestBuildHeatBalanceRejectsUnknownClass(t *testing.T) {
	rd := makeTestInput()
	rd.Zones[0].AirNodes[0].Class = "chimney"

	_, err := BuildHeatBalance(rd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown air node class")
}

func TestBuildHeatBalanceRejectsUnknownSurface(t *testing.T) {
	rd := makeTestInput()
	rd.Zones[0].AirNodes[1].Surfaces = []string{"trapdoor"}

	_, err := BuildHeatBalance(rd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown surface "trapdoor"`)
}

func TestApplyStepOverwrites(t *testing.T) {
	rd := makeTestInput()
	hb, err := BuildHeatBalance(rd)
	require.NoError(t, err)

	ApplyStep(hb, &rd.Steps[0])
	ApplyStep(hb, &rd.Steps[0])

	assert.Equal(t, 100.0, hb.SumIntConvGain[0], "step state must not accumulate")
	assert.Equal(t, 24.0, hb.MAT[0])
	assert.Equal(t, 0.6, hb.Nodes[0].MassFlowRate)
	assert.Equal(t, 22.0, hb.Surfaces[0].TempSurfIn)
	assert.Equal(t, 2.0, hb.Surfaces[0].HConvIn)
}

func TestRecorderRoundTrip(t *testing.T) {
	rd := makeTestInput()
	rd.Steps = append(rd.Steps, rd.Steps[0])

	hb, err := BuildHeatBalance(rd)
	require.NoError(t, err)

	rec := NewRecorder(len(rd.Steps))
	model, err := NewMundtModel(DefaultModelConfig(), hb, rec)
	require.NoError(t, err)

	for n := range rd.Steps {
		ApplyStep(hb, &rd.Steps[n])
		require.NoError(t, model.ManageZone(0))
		rec.RecordStep(n, model.Topology())
	}

	// the recorded series mirrors the node temperatures
	nodes := model.Topology().lineNode[0]
	assert.Equal(t, nodes[5].temp, rec.temps.At(5, 1))
	assert.InDelta(t, 15.0, rec.temps.At(0, 0), 1e-9, "supply node records the supply temperature")

	var buf bytes.Buffer
	require.NoError(t, rec.ExportCSV(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "step,node,air_temp_c"))
	assert.Contains(t, out, "ZONE ONE return")
	// 2 steps x 6 nodes plus header
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 13)
}

func TestLoadModelConfigDefaults(t *testing.T) {
	cfg := LoadModelConfig("")
	assert.Equal(t, 0.001, cfg.MinSlope)
	assert.Equal(t, 5.0, cfg.MaxSlope)
	assert.Equal(t, 0.0001, cfg.FlowCutoff)
	assert.Equal(t, 0.0001, cfg.LoadCutoff)
	assert.Equal(t, 1005.0, cfg.CpAir)

	// a missing file falls back to the defaults as well
	cfg = LoadModelConfig("no_such_file.ini")
	assert.Equal(t, 5.0, cfg.MaxSlope)
}
