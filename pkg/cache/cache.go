// Package cache stores computed layouts, figures and analysis reports so
// repeated runs over the same network skip the expensive steps.
//
// Four backends are provided: [NullCache] (disabled), [FileCache] for the
// CLI, [RedisCache] and [MongoCache] for shared deployments. Keys are
// produced by a [Keyer] from content hashes plus the options that affect
// the result, so a changed seed or render setting never returns a stale
// artifact.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per artifact kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLFigure   = 7 * 24 * time.Hour
	TTLAnalysis = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer builds cache keys for each artifact kind.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	FigureKey(layoutHash string, opts FigureKeyOpts) string
	AnalysisKey(graphHash string, opts AnalysisKeyOpts) string
}

// LayoutKeyOpts lists the inputs that change a computed layout.
type LayoutKeyOpts struct {
	Kind       string `json:"kind"`
	Seed       uint64 `json:"seed"`
	Algorithms string `json:"algorithms"`
	Weight     string `json:"weight,omitempty"`
}

// FigureKeyOpts lists the inputs that change a rendered figure.
// ConfigHash is the [Hash] of the serialized render configuration.
type FigureKeyOpts struct {
	ConfigHash string `json:"config_hash"`
	NodeLabels bool   `json:"node_labels"`
	EdgeLabels bool   `json:"edge_labels"`
	Format     string `json:"format"`
}

// AnalysisKeyOpts lists the inputs that change an analysis report.
type AnalysisKeyOpts struct {
	Algorithms string `json:"algorithms"`
	Source     string `json:"source,omitempty"`
	Target     string `json:"target,omitempty"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

func (DefaultKeyer) FigureKey(layoutHash string, opts FigureKeyOpts) string {
	return hashKey("figure", layoutHash, opts)
}

func (DefaultKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
