package mundt_calc

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Model constants. The defaults are the values the model was calibrated
// with; an ini file can override them for sensitivity studies.
type ModelConfig struct {
	CpAir      float64 // specific heat of air used by the gradient equations, J/kgK
	MinSlope   float64 // lower bound on the vertical gradient, K/m
	MaxSlope   float64 // upper bound on the vertical gradient, K/m
	FlowCutoff float64 // supply volume flow below which the solve is skipped, m3/s
	LoadCutoff float64 // cooling load below which the solve is skipped, W
}

func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		CpAir:      1005.0,
		MinSlope:   0.001,
		MaxSlope:   5.0,
		FlowCutoff: 0.0001,
		LoadCutoff: 0.0001,
	}
}

// LoadModelConfig reads the [mundt] section of an ini file. Missing file or
// missing keys fall back to the defaults.
func LoadModelConfig(path string) ModelConfig {
	cfg := DefaultModelConfig()

	if path == "" {
		return cfg
	}

	file, err := ini.Load(path)
	if err != nil {
		log.Warnf("config `%s` not loaded, using defaults: %v", path, err)
		return cfg
	}

	sec := file.Section("mundt")
	cfg.CpAir = sec.Key("cp_air").MustFloat64(cfg.CpAir)
	cfg.MinSlope = sec.Key("min_slope").MustFloat64(cfg.MinSlope)
	cfg.MaxSlope = sec.Key("max_slope").MustFloat64(cfg.MaxSlope)
	cfg.FlowCutoff = sec.Key("flow_cutoff").MustFloat64(cfg.FlowCutoff)
	cfg.LoadCutoff = sec.Key("load_cutoff").MustFloat64(cfg.LoadCutoff)

	return cfg
}
