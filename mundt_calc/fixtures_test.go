package mundt_calc

// Shared fixtures: a single-zone model with the full six-role node set and
// one step of boundary conditions.

func makeZoneJson(name string) ZoneJson {
	return ZoneJson{
		Name:          name,
		AirModel:      "mundt",
		IsControlled:  true,
		CeilingHeight: 2.7,
		FloorArea:     20.0,
		Surfaces: []SurfaceJson{
			{Name: "floor", Area: 20.0},
			{Name: "ceiling", Area: 20.0},
			{Name: "wall", Area: 30.0},
		},
		AirNodes: []AirNodeJson{
			{Name: name + " supply", Class: "inlet", Height: 2.3},
			{Name: name + " floor", Class: "floor", Height: 0.1, Surfaces: []string{"floor"}},
			{Name: name + " control", Class: "control", Height: 1.1},
			{Name: name + " ceiling", Class: "ceiling", Height: 2.4, Surfaces: []string{"ceiling"}},
			{Name: name + " room", Class: "room", Height: 1.5, Surfaces: []string{"wall"}},
			{Name: name + " return", Class: "return", Height: 2.4},
		},
	}
}

func makeZoneStepJson() ZoneStepJson {
	return ZoneStepJson{
		MAT:            24.0,
		HumRat:         0.0,
		SupplyTemp:     15.0,
		SupplyMassFlow: 0.6,
		InternalGain:   100.0,
		MCPI:           0.0,
		Setpoint:       24.0,
		SurfaceTemps:   []float64{22.0, 26.0, 24.0},
		SurfaceHc:      []float64{2.0, 2.0, 2.0},
	}
}

func makeTestInput() *InputJson {
	return &InputJson{
		Common: CommonJson{
			OutBaroPress:   101325.0,
			CouplingScheme: "direct",
		},
		Zones: []ZoneJson{makeZoneJson("ZONE ONE")},
		Steps: []StepJson{
			{OutDryBulb: 30.0, Zones: []ZoneStepJson{makeZoneStepJson()}},
		},
	}
}

func makeTestModel() (*MundtModel, *HeatBalance) {
	rd := makeTestInput()
	hb, err := BuildHeatBalance(rd)
	if err != nil {
		panic(err)
	}
	model, err := NewMundtModel(DefaultModelConfig(), hb, nil)
	if err != nil {
		panic(err)
	}
	return model, hb
}
