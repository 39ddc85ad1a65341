package mundt_calc

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

type InputJson struct {
	Common CommonJson `json:"common"`
	Zones  []ZoneJson `json:"zones"`
	Steps  []StepJson `json:"steps"`
}

type CommonJson struct {
	OutBaroPress   float64 `json:"out_baro_press"`
	CouplingScheme string  `json:"coupling_scheme"`
}

type ZoneJson struct {
	Name                 string        `json:"name"`
	AirModel             string        `json:"air_model"`
	IsControlled         bool          `json:"is_controlled"`
	CeilingHeight        float64       `json:"ceiling_height"`
	FloorArea            float64       `json:"floor_area"`
	Multiplier           float64       `json:"multiplier"`
	ListMultiplier       float64       `json:"list_multiplier"`
	NoHeatToReturnAir    bool          `json:"no_heat_to_return_air"`
	ConvectiveFloorSplit float64       `json:"convective_floor_split"`
	InfiltratFloorSplit  float64       `json:"infiltrat_floor_split"`
	Surfaces             []SurfaceJson `json:"surfaces"`
	AirNodes             []AirNodeJson `json:"air_nodes"`
}

type SurfaceJson struct {
	Name string  `json:"name"`
	Area float64 `json:"area"`
}

type AirNodeJson struct {
	Name     string   `json:"name"`
	Class    string   `json:"class"`
	Height   float64  `json:"height"`
	Surfaces []string `json:"surfaces"`
}

type StepJson struct {
	OutDryBulb float64        `json:"out_dry_bulb"`
	Zones      []ZoneStepJson `json:"zones"`
}

// Per-step boundary condition of one zone, in zone declaration order.
type ZoneStepJson struct {
	MAT            float64   `json:"mat"`
	HumRat         float64   `json:"hum_rat"`
	SupplyTemp     float64   `json:"supply_temp"`
	SupplyMassFlow float64   `json:"supply_mass_flow"`
	InternalGain   float64   `json:"internal_gain"`
	MCPI           float64   `json:"mcpi"`
	Setpoint       float64   `json:"setpoint"`
	SurfaceTemps   []float64 `json:"surface_temps"`
	SurfaceHc      []float64 `json:"surface_hc"`
}

/*
Build the host heat-balance tables from the input schema.

	Notes:
		Two loop nodes are created per zone: the supply inlet and the zone
		system node the leaving-air temperature is written to. Air node
		definitions are appended in zone declaration order, which is the
		contiguous fixed order the topology build's forward cursor relies
		on.
*/
func BuildHeatBalance(rd *InputJson) (*HeatBalance, error) {
	n_zones := len(rd.Zones)

	hb := &HeatBalance{
		OutBaroPress:               rd.Common.OutBaroPress,
		Zones:                      make([]ZoneRecord, n_zones),
		Nodes:                      make([]LoopNode, 2*n_zones),
		ZoneEquip:                  make([]ZoneEquipConfig, n_zones),
		AirModels:                  make([]AirModelState, n_zones),
		NumZoneAirNodes:            make([]int, n_zones),
		MAT:                        make([]float64, n_zones),
		ZT:                         make([]float64, n_zones),
		ZoneAirHumRat:              make([]float64, n_zones),
		MCPI:                       make([]float64, n_zones),
		SumConvHTRadSys:            make([]float64, n_zones),
		SumConvPool:                make([]float64, n_zones),
		SysDepZoneLoadsLagged:      make([]float64, n_zones),
		NonAirSystemResponse:       make([]float64, n_zones),
		TempZoneThermostatSetPoint: make([]float64, n_zones),
		TempTstatAir:               make([]float64, n_zones),
		SumIntConvGain:             make([]float64, n_zones),
		SumRetAirConvGain:          make([]float64, n_zones),
		ConvectiveFloorSplit:       make([]float64, n_zones),
		InfiltratFloorSplit:        make([]float64, n_zones),
	}

	for i, zj := range rd.Zones {
		surf_first := len(hb.Surfaces)
		for _, sj := range zj.Surfaces {
			hb.Surfaces = append(hb.Surfaces, SurfaceRecord{
				Area:           sj.Area,
				TempSurfIn:     default_temp,
				TempEffBulkAir: default_temp,
			})
		}

		multiplier := zj.Multiplier
		if multiplier == 0.0 {
			multiplier = 1.0
		}
		list_multiplier := zj.ListMultiplier
		if list_multiplier == 0.0 {
			list_multiplier = 1.0
		}

		hb.Zones[i] = ZoneRecord{
			Name:              zj.Name,
			SurfFirst:         surf_first,
			SurfLast:          len(hb.Surfaces) - 1,
			IsControlled:      zj.IsControlled,
			CeilingHeight:     zj.CeilingHeight,
			FloorArea:         zj.FloorArea,
			Multiplier:        multiplier,
			ListMultiplier:    list_multiplier,
			NoHeatToReturnAir: zj.NoHeatToReturnAir,
			SystemZoneNode:    2*i + 1,
		}
		hb.ZoneEquip[i] = ZoneEquipConfig{InletNodes: []int{2 * i}}
		hb.ConvectiveFloorSplit[i] = zj.ConvectiveFloorSplit
		hb.InfiltratFloorSplit[i] = zj.InfiltratFloorSplit

		if zj.AirModel == "mundt" {
			hb.AirModels[i].AirModelType = RoomAirModelMundt
		}
		hb.AirModels[i].TempCoupleScheme = CouplingSchemeFromString(rd.Common.CouplingScheme)

		hb.NumZoneAirNodes[i] = len(zj.AirNodes)
		for _, nj := range zj.AirNodes {
			class, err := AirNodeClassFromString(nj.Class)
			if err != nil {
				return nil, fmt.Errorf("zone %q, air node %q: %w", zj.Name, nj.Name, err)
			}
			mask := make([]bool, len(zj.Surfaces))
			for _, sname := range nj.Surfaces {
				found := false
				for s, sj := range zj.Surfaces {
					if sj.Name == sname {
						mask[s] = true
						found = true
						break
					}
				}
				if !found {
					return nil, fmt.Errorf("zone %q, air node %q: unknown surface %q", zj.Name, nj.Name, sname)
				}
			}
			hb.AirNodeDefs = append(hb.AirNodeDefs, AirNodeDef{
				Name:     nj.Name,
				ZoneName: zj.Name,
				Class:    class,
				Height:   nj.Height,
				SurfMask: mask,
			})
		}
	}

	return hb, nil
}

// ApplyStep copies one step's boundary conditions onto the heat-balance
// tables. Everything is overwritten; nothing accumulates across steps.
func ApplyStep(hb *HeatBalance, step *StepJson) {
	for i := range hb.Zones {
		hb.Zones[i].OutDryBulbTemp = step.OutDryBulb

		zs := &step.Zones[i]
		hb.MAT[i] = zs.MAT
		hb.ZT[i] = zs.MAT
		hb.ZoneAirHumRat[i] = zs.HumRat
		hb.Nodes[2*i] = LoopNode{
			Temp:         zs.SupplyTemp,
			MassFlowRate: zs.SupplyMassFlow,
		}
		hb.Nodes[hb.Zones[i].SystemZoneNode].MassFlowRate = zs.SupplyMassFlow
		hb.SumIntConvGain[i] = zs.InternalGain
		hb.MCPI[i] = zs.MCPI
		hb.TempZoneThermostatSetPoint[i] = zs.Setpoint

		zone := &hb.Zones[i]
		for s := zone.SurfFirst; s <= zone.SurfLast; s++ {
			local := s - zone.SurfFirst
			if local < len(zs.SurfaceTemps) {
				hb.Surfaces[s].TempSurfIn = zs.SurfaceTemps[local]
			}
			if local < len(zs.SurfaceHc) {
				hb.Surfaces[s].HConvIn = zs.SurfaceHc[local]
			}
		}
	}
}

/*
Run the stratification calculation over every step of the input file.

	Args:
		house_data_path: path or URL of the input JSON
		output_data_dir: output directory
		config_path: optional ini file with model constants
		recording: whether to record and export the node temperature series
*/
func Run(house_data_path string, output_data_dir string, config_path string, recording bool) {
	if recording {
		if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
			os.Mkdir(output_data_dir, 0755)
		}
		if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
			log.Fatalf("`%s` is not a directory", output_data_dir)
		}
	}

	log.Printf("Load zone model from `%s`", house_data_path)
	var rd InputJson
	if len(house_data_path) >= 4 && house_data_path[0:4] == "http" {
		resp, err := http.Get(house_data_path)
		if err != nil {
			log.Fatal(err)
		}
		defer resp.Body.Close()
		body, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			log.Fatal(err)
		}
		json.Unmarshal(body, &rd)
	} else {
		bytes, err := ioutil.ReadFile(house_data_path)
		if err != nil {
			log.Fatal(err)
		}
		json.Unmarshal(bytes, &rd)
	}

	cfg := LoadModelConfig(config_path)

	hb, err := BuildHeatBalance(&rd)
	if err != nil {
		log.Fatalf("invalid zone model: %v", err)
	}

	var rec *Recorder
	if recording {
		rec = NewRecorder(len(rd.Steps))
	}

	log.Printf("Build topology (%d zones)", hb.NumOfZones())
	model, err := NewMundtModel(cfg, hb, rec)
	if err != nil {
		log.Fatalf("%v", err)
	}

	log.Printf("Calculate (%d steps)", len(rd.Steps))
	for n := range rd.Steps {
		ApplyStep(hb, &rd.Steps[n])
		for zone_num := range hb.Zones {
			if hb.AirModels[zone_num].AirModelType != RoomAirModelMundt {
				continue
			}
			if err := model.ManageZone(zone_num); err != nil {
				log.Fatalf("step %d: %v", n, err)
			}
		}
		if rec != nil {
			rec.RecordStep(n, model.Topology())
		}
	}

	if rec != nil {
		out_path := filepath.Join(output_data_dir, "node_air_temp.csv")
		log.Printf("Save node air temperatures to `%s`", out_path)
		f, err := os.Create(out_path)
		if err != nil {
			log.Fatalf("Failed to create `%s`", out_path)
		}
		defer f.Close()
		if err := rec.ExportCSV(f); err != nil {
			log.Fatalf("Failed to write `%s`: %v", out_path, err)
		}
	}
}
