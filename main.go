package main

import (
	"flag"
	"os"
	"runtime/pprof"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/airtoolkit/mundt_calc_go/mundt_calc"
)

func main() {
	var zone_model string
	flag.StringVar(&zone_model, "i", "", "zone model JSON file (path or URL)")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", "", "output directory")

	var config_path string
	flag.StringVar(&config_path, "c", "", "optional ini file with model constants")

	var pprof_enable bool
	flag.BoolVar(&pprof_enable, "pprof", false, "write a CPU profile to cpu.prof")

	flag.Parse()

	if zone_model == "" {
		log.Fatal("specify the input with -i")
	}

	if pprof_enable {
		f, err := os.Create("cpu.prof")
		if err != nil {
			panic(err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				panic(err)
			}
		}()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}

	start := time.Now()

	mundt_calc.Run(
		zone_model,
		output_data_dir,
		config_path,
		output_data_dir != "",
	)

	log.Printf("elapsed_time: %v", time.Since(start))
}
