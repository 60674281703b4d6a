package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/greenloop/biolca/connectors/factorsource"
	"github.com/greenloop/biolca/core/factors"
	"github.com/greenloop/biolca/core/lca"
	"github.com/greenloop/biolca/core/metrics"
	"github.com/greenloop/biolca/infra/mqtt"
)

// Config is the root configuration of the service.
type Config struct {
	Inventory       lca.Inventory       `json:"inventory"`
	Factors         lca.FactorSet       `json:"factors"`
	DieselEFKgPerMJ float64             `json:"diesel_ef_kg_per_mj"`
	FactorSource    factorsource.Config `json:"factor_source"`
	History         HistoryConfig       `json:"history"`
	Metrics         metrics.Config      `json:"metrics"`
	MQTT            mqtt.Config         `json:"mqtt"`
	API             APIConfig           `json:"api"`
}

// APIConfig holds the HTTP API settings.
type APIConfig struct {
	Addr string `json:"addr"`
	// Token protects the history endpoint when non-empty.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Load reads the configuration file and applies environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides: BIOLCA_METRICS__INFLUX_TOKEN=...
	if err := k.Load(env.Provider("BIOLCA_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "biolca_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills absent sections with the built-in baseline: the
// reference inventory of the original study and the placeholder
// emission factors.
func (c *Config) SetDefaults() {
	if c.Inventory == (lca.Inventory{}) {
		c.Inventory = DefaultInventory()
	}
	if c.Factors == (lca.FactorSet{}) {
		c.Factors = factors.Defaults()
	}
	if c.DieselEFKgPerMJ == 0 {
		// Well-to-wheel fossil diesel baseline, kg CO2 per MJ.
		c.DieselEFKgPerMJ = 0.095
	}
	c.History.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.API.SetDefaults()
}

// Validate checks the sections that carry mandatory fields.
func (c *Config) Validate() error {
	if err := c.History.Validate(); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if err := factors.Validate(c.Factors); err != nil {
		return fmt.Errorf("factors: %w", err)
	}
	if c.FactorSource.Enabled && c.FactorSource.URL == "" {
		return fmt.Errorf("factor_source: url is required when enabled")
	}
	return nil
}

// DefaultInventory is the reference inventory for 1 MJ of WCO
// biodiesel: 30 L of collected oil hauled 24.6 km, transesterified
// with methanol and KOH, distributed 223 km in a 200 L tanker.
func DefaultInventory() lca.Inventory {
	return lca.Inventory{
		WCOVolumeL:         30,
		CollectionKm:       24.6,
		MethanolL:          8.54,
		KOHKg:              0.45,
		ReactionEnergy:     0.06,
		PurificationWaterL: 27,
		DryingEnergy:       1.0,
		DistributionKm:     223,
		LoadCapacityL:      200,
		GlycerolKg:         5,
		WastewaterL:        54,
		EnergyUnit:         lca.UnitKWh,
	}
}
