// internal/config/scoring.go
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"agal-core/scoring"
)

// scoringFile mirrors the TOML schema. Pointer fields distinguish
// "absent" from "explicitly zero".
type scoringFile struct {
	Match     *int `toml:"match"`
	Mismatch  *int `toml:"mismatch"`
	GapOpen   *int `toml:"gap_open"`
	GapExtend *int `toml:"gap_extend"`
}

// LoadScoring reads a TOML scoring file and overlays its values on
// base. Keys absent from the file keep the base value. Unknown keys
// are an error so typos do not silently align with defaults.
func LoadScoring(path string, base scoring.Params) (scoring.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("scoring file: %w", err)
	}
	return parseScoring(data, base, path)
}

func parseScoring(data []byte, base scoring.Params, path string) (scoring.Params, error) {
	var sf scoringFile
	md, err := toml.Decode(string(data), &sf)
	if err != nil {
		return base, fmt.Errorf("scoring file %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return base, fmt.Errorf("scoring file %s: unknown key %q", path, undec[0].String())
	}
	p := base
	if sf.Match != nil {
		p.Match = *sf.Match
	}
	if sf.Mismatch != nil {
		p.Mismatch = *sf.Mismatch
	}
	if sf.GapOpen != nil {
		p.GapOpen = *sf.GapOpen
	}
	if sf.GapExtend != nil {
		p.GapExtend = *sf.GapExtend
	}
	return p, nil
}
