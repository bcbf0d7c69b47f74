// Package bloom provides a trigram Bloom filter used to skip books that
// cannot contain a query.
package bloom

import (
	"bytes"
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/cfiloc"
)

const (
	// gramSize is the number of runes per indexed gram.
	gramSize = 3

	// FalsePositiveRate is the target false positive rate per gram.
	FalsePositiveRate = 0.01
)

// Filter records the rune trigrams of a normalized buffer.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates an empty filter sized for n expected trigrams.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewIndexFilter creates a filter holding every trigram of the index buffer.
func NewIndexFilter(idx *cfiloc.Index) *Filter {
	runes := []rune(idx.Buffer())

	n := 0
	if len(runes) >= gramSize {
		n = len(runes) - gramSize + 1
	}

	f := NewFilter(uint(n), FalsePositiveRate)
	for i := 0; i < n; i++ {
		f.Add(string(runes[i : i+gramSize]))
	}
	return f
}

// Add adds a gram to the filter.
func (f *Filter) Add(gram string) {
	f.f.AddString(gram)
}

// Test returns true if the gram might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(gram string) bool {
	return f.f.TestString(gram)
}

// MayContain reports whether the normalized query could occur in the
// indexed buffer. Queries shorter than three runes always pass.
func (f *Filter) MayContain(query string) bool {
	runes := []rune(cfiloc.Normalize(query))
	for i := 0; i+gramSize <= len(runes); i++ {
		if !f.Test(string(runes[i : i+gramSize])) {
			return false
		}
	}
	return true
}

// EstimatedCount returns the approximate number of grams in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// MarshalBinary encodes the filter for storage.
func (f *Filter) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode filter: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalFilter decodes a filter produced by MarshalBinary.
func UnmarshalFilter(data []byte) (*Filter, error) {
	var bf bloom.BloomFilter
	if _, err := bf.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "invalid filter: %v", err)
	}
	return &Filter{f: &bf}, nil
}
