package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// OrderKeyOpts holds every setting that changes an ordering result.
type OrderKeyOpts struct {
	Strategy        string  `json:"strategy"`
	Simple          bool    `json:"simple"`
	LinkPaths       bool    `json:"link_paths"`
	Coarseness      float64 `json:"coarseness"`
	DirectionWeight float64 `json:"direction_weight"`
	BucketMargin    float64 `json:"bucket_margin"`
	IterativeEffort int     `json:"iterative_effort"`
}

// ArtifactKeyOpts holds every setting that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale"`
	Detailed bool    `json:"detailed"`
}

// Keyer derives cache keys.
type Keyer interface {
	// OrderKey returns the key for the ordering of a layer with the given
	// content hash.
	OrderKey(layerHash string, opts OrderKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the ordering
	// or layer with the given content hash.
	ArtifactKey(hash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// OrderKey implements Keyer.
func (DefaultKeyer) OrderKey(layerHash string, opts OrderKeyOpts) string {
	return hashKey("order", layerHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(hash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", hash, opts)
}

// hashKey returns prefix + ":" + the hex SHA-256 of the JSON encoding of
// parts. Option structs encode with fixed field order, so equal settings
// give equal keys.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Layers and outputs are addressed by
// this hash.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
