package mundt_calc

import (
	"io"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/mat"
)

// CSV row of the node temperature output, 出力名："node_air_temp"
type NodeTempRecord struct {
	Step int     `csv:"step"`
	Node string  `csv:"node"`
	Temp float64 `csv:"air_temp_c"`
}

// Recorder accumulates one temperature time series per registered air node.
// Nodes are registered once at topology-build time; one column of the dense
// matrix is filled per managed step.
type Recorder struct {
	_n_step int
	names   []string
	temps   *mat.Dense // [series, step]
}

func NewRecorder(n_step int) *Recorder {
	return &Recorder{_n_step: n_step}
}

// Register adds a named series and returns its id. Called by the topology
// build for every matched air node.
func (r *Recorder) Register(name string) int {
	r.names = append(r.names, name)
	return len(r.names) - 1
}

// RecordStep stores the current temperature of every registered node.
func (r *Recorder) RecordStep(n int, top *Topology) {
	if r.temps == nil {
		// registration is complete once stepping starts
		r.temps = mat.NewDense(len(r.names), r._n_step, nil)
	}
	for mz := range top.lineNode {
		for i := range top.lineNode[mz] {
			nd := &top.lineNode[mz][i]
			if nd.recID >= 0 {
				r.temps.Set(nd.recID, n, nd.temp)
			}
		}
	}
}

// ExportCSV writes the recorded series in long format.
func (r *Recorder) ExportCSV(w io.Writer) error {
	rows := make([]*NodeTempRecord, 0, len(r.names)*r._n_step)
	for n := 0; n < r._n_step; n++ {
		for id, name := range r.names {
			temp := default_temp
			if r.temps != nil {
				temp = r.temps.At(id, n)
			}
			rows = append(rows, &NodeTempRecord{Step: n, Node: name, Temp: temp})
		}
	}
	return gocsv.Marshal(&rows, w)
}
