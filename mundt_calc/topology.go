package mundt_calc

// **** トポロジーの走査と割り付け ****
//
// One-shot discovery of the zones assigned the Mundt model and allocation of
// the per-zone working tables. Runs once; the tables are read-only afterwards
// except for the temperature fields the result writer overwrites.

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// default temperature of zero-initialized records, degree C
const default_temp = 25.0

// Static per-zone data, indexed by zone number.
type zoneData struct {
	surfFirst      int // index of the first surface of the zone
	numOfSurfs     int // number of surfaces of the zone
	mundtZoneIndex int // ordinal among zones using the Mundt model, -1 otherwise
}

// Air node working record of a Mundt zone.
type lineNode struct {
	airNodeName string
	classType   AirNodeClass
	height      float64 // m
	temp        float64 // degree C, overwritten by the result writer
	surfMask    []bool  // local surface membership
	recID       int     // recorder series id, -1 when not recorded
}

// Surface working record of a Mundt zone.
type surfaceSettings struct {
	area     float64 // m2, static
	temp     float64 // degree C, refreshed every invocation
	hc       float64 // W/m2K, refreshed every invocation
	tMeanAir float64 // solved effective air temperature, degree C
}

// Topology holds the fixed-shape working tables of all Mundt zones.
// lineNode and mundtAirSurf are indexed by mundtZoneIndex, then locally.
type Topology struct {
	zoneData        []zoneData
	lineNode        [][]lineNode
	mundtAirSurf    [][]surfaceSettings
	numZoneAirNodes []int // declared air node count per Mundt zone

	numOfMundtZones    int
	maxNumOfSurfs      int
	maxNumOfAirNodes   int
	maxNumOfRoomNodes  int
	maxNumOfFloorSurfs int
}

func count_mask(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}

/*
Build the topology over all zones of the building model.

	Args:
		hb: host heat-balance tables (zone list, air node definitions)
		rec: recorder for per-node temperature series, may be nil
	Returns:
		the topology, or an error when any zone has an unmatched or
		misdeclared air node

	Notes:
		Air node definitions are matched by a case-insensitive comparison of
		their zone name against the zone, with a forward-only cursor per zone:
		a definition consumed for one node is never reused for a later node of
		the same zone. Name-match failures are accumulated across all zones so
		every offending zone is reported in one pass.
*/
func NewTopology(hb *HeatBalance, rec *Recorder) (*Topology, error) {
	t := &Topology{
		zoneData: make([]zoneData, hb.NumOfZones()),
	}

	// find the zones using the Mundt model and the maxima over exactly those
	for zone_num := range hb.Zones {
		t.zoneData[zone_num].mundtZoneIndex = -1

		if hb.AirModels[zone_num].AirModelType != RoomAirModelMundt {
			continue
		}

		surf_first := hb.Zones[zone_num].SurfFirst
		num_of_surfs := hb.numOfSurfs(zone_num)
		num_of_air_nodes := hb.NumZoneAirNodes[zone_num]

		t.zoneData[zone_num].surfFirst = surf_first
		t.zoneData[zone_num].numOfSurfs = num_of_surfs
		t.zoneData[zone_num].mundtZoneIndex = t.numOfMundtZones
		t.numOfMundtZones++

		if num_of_surfs > t.maxNumOfSurfs {
			t.maxNumOfSurfs = num_of_surfs
		}
		if num_of_air_nodes > t.maxNumOfAirNodes {
			t.maxNumOfAirNodes = num_of_air_nodes
		}
	}

	// allocate and default-initialize the working tables, sized per zone
	t.lineNode = make([][]lineNode, t.numOfMundtZones)
	t.mundtAirSurf = make([][]surfaceSettings, t.numOfMundtZones)
	t.numZoneAirNodes = make([]int, t.numOfMundtZones)

	var errs error
	for zone_num := range hb.Zones {
		zd := &t.zoneData[zone_num]
		if zd.mundtZoneIndex < 0 {
			continue
		}
		mz := zd.mundtZoneIndex

		surfs := make([]surfaceSettings, zd.numOfSurfs)
		for s := range surfs {
			surfs[s] = surfaceSettings{
				area:     hb.Surfaces[zd.surfFirst+s].Area,
				temp:     default_temp,
				hc:       0.0,
				tMeanAir: default_temp,
			}
		}
		t.mundtAirSurf[mz] = surfs

		num_of_air_nodes := hb.NumZoneAirNodes[zone_num]
		t.numZoneAirNodes[mz] = num_of_air_nodes
		nodes := make([]lineNode, num_of_air_nodes)
		for n := range nodes {
			nodes[n] = lineNode{
				classType: AirNodeUnset,
				temp:      default_temp,
				recID:     -1,
			}
		}
		t.lineNode[mz] = nodes

		// match every declared node of this zone with a forward-only cursor
		// over the global definition list
		room_nodes_count := 0
		floor_surf_count := 0
		air_node_begin := 0
		for n := 0; n < num_of_air_nodes; n++ {
			if air_node_begin >= len(hb.AirNodeDefs) {
				return nil, errors.New("an array bound exceeded in the air node scan of NewTopology")
			}

			found := false
			for d := air_node_begin; d < len(hb.AirNodeDefs); d++ {
				def := &hb.AirNodeDefs[d]
				if !strings.EqualFold(def.ZoneName, hb.Zones[zone_num].Name) {
					continue
				}
				nodes[n].classType = def.Class
				nodes[n].airNodeName = def.Name
				nodes[n].height = def.Height
				nodes[n].surfMask = append([]bool(nil), def.SurfMask...)
				if rec != nil {
					nodes[n].recID = rec.Register(def.Name)
				}
				air_node_begin = d + 1
				found = true
				break
			}

			if !found {
				log.Errorf("NewTopology: air node in zone=%q is not found", hb.Zones[zone_num].Name)
				errs = multierr.Append(errs,
					fmt.Errorf("air node in zone=%q is not found", hb.Zones[zone_num].Name))
				continue
			}

			if nodes[n].classType == MundtRoomAirNode {
				room_nodes_count++
			}
			if nodes[n].classType == FloorAirNode {
				floor_surf_count += count_mask(nodes[n].surfMask)
			}
		}

		if room_nodes_count > t.maxNumOfRoomNodes {
			t.maxNumOfRoomNodes = room_nodes_count
		}
		if floor_surf_count > t.maxNumOfFloorSurfs {
			t.maxNumOfFloorSurfs = floor_surf_count
		}
	}

	if errs != nil {
		return nil, fmt.Errorf("NewTopology: preceding condition(s) cause termination: %w", errs)
	}

	return t, nil
}
