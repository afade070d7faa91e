// Package catalog provides the static LED module and power-supply tables the
// placement engine and the CLI look SKUs up in, and the derived engineering
// quantities (total load, PSU sizing) computed from a placement result.
//
// Catalogs are read-only data: either the built-in defaults or a TOML file
// loaded at startup. Nothing here is persisted or mutated at runtime.
package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/signkit/ledlayout"
)

// Module is one LED module SKU.
type Module struct {
	SKU            string  `toml:"sku"`
	Name           string  `toml:"name"`
	ModulesPerFoot float64 `toml:"modules_per_foot"`
	WattsPerModule float64 `toml:"watts_per_module"`
	LengthInches   float64 `toml:"length_inches"`
	HeightInches   float64 `toml:"height_inches"`
	Voltage        float64 `toml:"voltage"`
}

// Info converts the SKU to the physical data the placement engine needs.
func (m Module) Info() ledlayout.ModuleInfo {
	return ledlayout.ModuleInfo{
		ModulesPerFoot: m.ModulesPerFoot,
		LengthInches:   m.LengthInches,
		HeightInches:   m.HeightInches,
	}
}

// PSU is one power-supply SKU.
type PSU struct {
	SKU     string  `toml:"sku"`
	Name    string  `toml:"name"`
	Watts   float64 `toml:"watts"`
	Voltage float64 `toml:"voltage"`
}

// Catalog is a set of module and PSU SKUs.
type Catalog struct {
	Modules []Module `toml:"modules"`
	PSUs    []PSU    `toml:"psus"`
}

// Default returns the built-in catalog: a representative spread of 12V
// channel-letter modules and matching supplies.
func Default() Catalog {
	return Catalog{
		Modules: []Module{
			{SKU: "GE-MAX-71", Name: "Tetra MAX 71", ModulesPerFoot: 5.5, WattsPerModule: 1.1, LengthInches: 2.6, HeightInches: 0.55, Voltage: 12},
			{SKU: "GE-MINI-MAX", Name: "Tetra miniMAX", ModulesPerFoot: 7, WattsPerModule: 0.55, LengthInches: 1.9, HeightInches: 0.5, Voltage: 12},
			{SKU: "HL-S3", Name: "HanleyLED S3", ModulesPerFoot: 6, WattsPerModule: 0.72, LengthInches: 2.4, HeightInches: 0.6, Voltage: 12},
			{SKU: "PL-STIK-6", Name: "Principal Stik 6in", ModulesPerFoot: 2, WattsPerModule: 2.2, LengthInches: 6, HeightInches: 0.7, Voltage: 12},
		},
		PSUs: []PSU{
			{SKU: "PSU-60", Name: "60W 12V", Watts: 60, Voltage: 12},
			{SKU: "PSU-100", Name: "100W 12V", Watts: 100, Voltage: 12},
			{SKU: "PSU-185", Name: "185W 12V", Watts: 185, Voltage: 12},
			{SKU: "PSU-320", Name: "320W 12V", Watts: 320, Voltage: 12},
		},
	}
}

// Load reads a catalog from a TOML file. Missing sections fall back to the
// built-in defaults so a file may override only modules or only PSUs.
func Load(path string) (Catalog, error) {
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	def := Default()
	if len(c.Modules) == 0 {
		c.Modules = def.Modules
	}
	if len(c.PSUs) == 0 {
		c.PSUs = def.PSUs
	}
	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// validate rejects non-physical SKU data.
func (c Catalog) validate() error {
	for _, m := range c.Modules {
		if m.SKU == "" {
			return fmt.Errorf("catalog: module with empty sku")
		}
		if m.ModulesPerFoot <= 0 || m.WattsPerModule <= 0 {
			return fmt.Errorf("catalog: module %s: density and wattage must be positive", m.SKU)
		}
	}
	for _, p := range c.PSUs {
		if p.SKU == "" {
			return fmt.Errorf("catalog: psu with empty sku")
		}
		if p.Watts <= 0 {
			return fmt.Errorf("catalog: psu %s: wattage must be positive", p.SKU)
		}
	}
	return nil
}

// Module finds a module SKU.
func (c Catalog) Module(sku string) (Module, bool) {
	for _, m := range c.Modules {
		if m.SKU == sku {
			return m, true
		}
	}
	return Module{}, false
}

// PSU finds a PSU SKU.
func (c Catalog) PSU(sku string) (PSU, bool) {
	for _, p := range c.PSUs {
		if p.SKU == sku {
			return p, true
		}
	}
	return PSU{}, false
}

// deratingHeadroom is the load margin applied when sizing supplies: a PSU is
// only loaded to 1/1.2 of its rating.
const deratingHeadroom = 1.2

// PowerEstimate is the electrical summary for a placed module count.
type PowerEstimate struct {
	ModuleCount  int     `json:"moduleCount"`
	TotalWatts   float64 `json:"totalWatts"`
	DeratedWatts float64 `json:"deratedWatts"` // load including headroom
	Amps         float64 `json:"amps"`         // at the module voltage
	PSU          PSU     `json:"psu"`
	PSUCount     int     `json:"psuCount"`
}

// EstimatePower computes the electrical load for count modules of m and picks
// the smallest PSU (by wattage) in the catalog that carries the derated load,
// falling back to multiple units of the largest PSU when one is not enough.
func (c Catalog) EstimatePower(m Module, count int) (PowerEstimate, error) {
	if count < 0 {
		return PowerEstimate{}, fmt.Errorf("catalog: negative module count %d", count)
	}
	if len(c.PSUs) == 0 {
		return PowerEstimate{}, fmt.Errorf("catalog: no PSUs available")
	}

	est := PowerEstimate{
		ModuleCount: count,
		TotalWatts:  float64(count) * m.WattsPerModule,
	}
	est.DeratedWatts = est.TotalWatts * deratingHeadroom
	if m.Voltage > 0 {
		est.Amps = est.TotalWatts / m.Voltage
	}

	psus := make([]PSU, len(c.PSUs))
	copy(psus, c.PSUs)
	sort.Slice(psus, func(a, b int) bool { return psus[a].Watts < psus[b].Watts })

	for _, p := range psus {
		if p.Watts >= est.DeratedWatts {
			est.PSU = p
			est.PSUCount = 1
			if count == 0 {
				est.PSUCount = 0
			}
			return est, nil
		}
	}

	largest := psus[len(psus)-1]
	est.PSU = largest
	est.PSUCount = int(math.Ceil(est.DeratedWatts / largest.Watts))
	return est, nil
}
