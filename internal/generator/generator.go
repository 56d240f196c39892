// Package generator synthesizes the trade fixture consumed by the block
// builder simulation.
package generator

import (
	"fmt"
	"iter"
	"log"
	"math/rand/v2"
	"time"

	"chronos-tradegen/internal/domain"
	"chronos-tradegen/internal/idhash"
	"chronos-tradegen/internal/observability"
	"chronos-tradegen/internal/sink"
	"chronos-tradegen/internal/verification"
)

// ProgressFunc is notified with the row index at every progress interval.
type ProgressFunc func(rows int64)

// LogProgress is the default ProgressFunc.
func LogProgress(rows int64) {
	log.Printf("[generator] Generated %d rows...", rows)
}

// Summary describes a completed run.
type Summary struct {
	Rows        int64
	BundledRows int64
	ReplayHash  string // see verification.ReplayHasher
	Duration    time.Duration
}

// Generator produces trade records from sequential indices and a seeded
// random source. It is not safe for concurrent use.
type Generator struct {
	params   Params
	hasher   idhash.Hasher
	rng      *rand.Rand
	pool     []string
	progress ProgressFunc
	metrics  *observability.Metrics
}

// Option configures a Generator.
type Option func(*Generator)

// WithHasher replaces the SHA-256 hasher used for mints and signatures.
func WithHasher(h idhash.Hasher) Option {
	return func(g *Generator) { g.hasher = h }
}

// WithProgress replaces the progress notification. nil disables it.
func WithProgress(fn ProgressFunc) Option {
	return func(g *Generator) { g.progress = fn }
}

// WithMetrics records per-row and per-run metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// New validates params and builds the mint pool.
// rng is the only source of randomness; a fixed seed gives a fixed fixture.
func New(params Params, rng *rand.Rand, opts ...Option) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParams)
	}

	g := &Generator{
		params:   params,
		hasher:   idhash.SHA256,
		rng:      rng,
		progress: LogProgress,
	}
	for _, opt := range opts {
		opt(g)
	}

	pool, err := idhash.BuildPool(g.hasher, params.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	g.pool = pool

	return g, nil
}

// Params returns the generator parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Pool returns a copy of the mint pool.
func (g *Generator) Pool() []string {
	out := make([]string, len(g.pool))
	copy(out, g.pool)
	return out
}

// Record synthesizes row i. Non-index fields consume g's random source in
// a fixed order: amount_in, amount_out, mint_in, mint_out, bundled draw.
func (g *Generator) Record(i int64) domain.TradeRecord {
	p := g.params
	// AmountMin >= 0, so the span fits in uint64 even for [0, MaxInt64].
	span := uint64(p.AmountMax-p.AmountMin) + 1

	return domain.TradeRecord{
		Slot:         p.BaseSlot + i/p.SlotSize,
		Timestamp:    p.BaseTimestamp + i,
		AmountIn:     p.AmountMin + int64(g.rng.Uint64N(span)),
		AmountOut:    p.AmountMin + int64(g.rng.Uint64N(span)),
		TxSignature:  idhash.ComputeTxSignature(g.hasher, i, p.SignatureLength),
		TokenMintIn:  g.pool[g.rng.IntN(len(g.pool))],
		TokenMintOut: g.pool[g.rng.IntN(len(g.pool))],
		IsBundled:    g.rng.Float64() < p.BundledProbability,
		TxIndex:      int(i % p.TxIndexCycle),
	}
}

// Records returns the lazy sequence of (index, record) for indices
// [0, NumRows). Each iteration draws from the shared random source, so a
// second pass yields the same records only with a freshly seeded source.
func (g *Generator) Records() iter.Seq2[int64, domain.TradeRecord] {
	return func(yield func(int64, domain.TradeRecord) bool) {
		for i := int64(0); i < g.params.NumRows; i++ {
			if !yield(i, g.Record(i)) {
				return
			}
		}
	}
}

// Generate writes the header and every record to s, then closes s.
// s is closed on every return path. Any sink error aborts the run.
func (g *Generator) Generate(s sink.Sink) (sum Summary, err error) {
	start := time.Now()
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sink: %w", cerr)
		}
		sum.Duration = time.Since(start)
		if g.metrics != nil {
			status := "success"
			if err != nil {
				status = "failed"
			}
			g.metrics.RecordRun(status, sum.Duration.Seconds())
		}
	}()

	if err := s.WriteHeader(domain.TradeColumns()); err != nil {
		return sum, fmt.Errorf("write header: %w", err)
	}

	replay := verification.NewReplayHasher()
	for i, rec := range g.Records() {
		if g.progress != nil && i%g.params.ProgressInterval == 0 {
			g.progress(i)
		}

		if err := s.Write(&rec); err != nil {
			return sum, fmt.Errorf("write row %d: %w", i, err)
		}

		replay.Add(&rec)
		sum.Rows++
		if rec.IsBundled {
			sum.BundledRows++
		}
		if g.metrics != nil {
			g.metrics.RecordRow(rec.Slot, rec.IsBundled)
		}
	}

	sum.ReplayHash = replay.Sum()
	return sum, nil
}

// GenerateFile is the one-shot form of Generate: it validates params,
// builds the pool, creates the CSV file at path and fills it.
// Invalid params fail before the file is created.
func GenerateFile(params Params, rng *rand.Rand, path string, opts ...Option) (Summary, error) {
	g, err := New(params, rng, opts...)
	if err != nil {
		return Summary{}, err
	}

	out, err := sink.CreateFile(path)
	if err != nil {
		return Summary{}, err
	}
	return g.Generate(out)
}

// NewRand returns a PCG random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
