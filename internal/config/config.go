package config

import (
	"errors"
	"fmt"

	"chronos-tradegen/internal/generator"
	"chronos-tradegen/internal/sink"
)

// ErrInvalidConfig is returned when configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultOutputPath is where the reference fixture is written.
const DefaultOutputPath = "data/solana_trades.csv"

// Config is the top-level generator configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Generator GeneratorConfig `yaml:"generator"`
	Storage   StorageConfig   `yaml:"storage"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// OutputConfig holds CSV artifact settings.
type OutputConfig struct {
	Path          string `yaml:"path"`
	ReplaySidecar bool   `yaml:"replay_sidecar"` // write <path>.replay with the replay digest
}

// GeneratorConfig holds row synthesis settings.
type GeneratorConfig struct {
	Rows               int64   `yaml:"rows"`
	BaseSlot           int64   `yaml:"base_slot"`
	BaseTimestamp      int64   `yaml:"base_timestamp"`
	PoolSize           int     `yaml:"pool_size"`
	Seed               uint64  `yaml:"seed"` // 0 picks a time-based seed
	SlotSize           int64   `yaml:"slot_size"`
	TxIndexCycle       int64   `yaml:"tx_index_cycle"`
	AmountMin          int64   `yaml:"amount_min"`
	AmountMax          int64   `yaml:"amount_max"`
	BundledProbability float64 `yaml:"bundled_probability"`
	SignatureLength    int     `yaml:"signature_length"`
	ProgressInterval   int64   `yaml:"progress_interval"`
}

// StorageConfig holds optional database mirror settings.
type StorageConfig struct {
	PostgresDSN   string `yaml:"postgres_dsn"`
	ClickhouseDSN string `yaml:"clickhouse_dsn"`
	BatchSize     int    `yaml:"batch_size"`
	Migrate       bool   `yaml:"migrate"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

// Default returns the configuration of the reference fixture.
func Default() *Config {
	p := generator.DefaultParams()
	return &Config{
		Output: OutputConfig{
			Path: DefaultOutputPath,
		},
		Generator: GeneratorConfig{
			Rows:               p.NumRows,
			BaseSlot:           p.BaseSlot,
			BaseTimestamp:      p.BaseTimestamp,
			PoolSize:           p.PoolSize,
			SlotSize:           p.SlotSize,
			TxIndexCycle:       p.TxIndexCycle,
			AmountMin:          p.AmountMin,
			AmountMax:          p.AmountMax,
			BundledProbability: p.BundledProbability,
			SignatureLength:    p.SignatureLength,
			ProgressInterval:   p.ProgressInterval,
		},
		Storage: StorageConfig{
			BatchSize: sink.DefaultBatchSize,
			Migrate:   true,
		},
	}
}

// Params converts the generator section into generation params.
func (c *Config) Params() generator.Params {
	g := c.Generator
	return generator.Params{
		NumRows:            g.Rows,
		BaseSlot:           g.BaseSlot,
		BaseTimestamp:      g.BaseTimestamp,
		PoolSize:           g.PoolSize,
		SlotSize:           g.SlotSize,
		TxIndexCycle:       g.TxIndexCycle,
		AmountMin:          g.AmountMin,
		AmountMax:          g.AmountMax,
		BundledProbability: g.BundledProbability,
		SignatureLength:    g.SignatureLength,
		ProgressInterval:   g.ProgressInterval,
	}
}

// Validate checks the configuration. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Output.Path == "" {
		return fmt.Errorf("%w: output.path is required", ErrInvalidConfig)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Storage.BatchSize < 1 {
		return fmt.Errorf("%w: storage.batch_size must be >= 1, got %d", ErrInvalidConfig, c.Storage.BatchSize)
	}
	return nil
}
