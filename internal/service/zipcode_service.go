package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/masanorih/address2zip/internal/index"
	"github.com/masanorih/address2zip/internal/models"
	"github.com/masanorih/address2zip/internal/normalizer"
	"github.com/masanorih/address2zip/internal/resolver"
)

// ZipcodeService contains the core business logic for resolving a
// free-form address string to its postal code. The index is held behind
// an atomic pointer: Reload swaps in a freshly built index while
// in-flight resolutions finish against the old one, so no locking is
// needed on the read path.
type ZipcodeService struct {
	idx atomic.Pointer[index.Index]
}

// Resolution is a successful lookup together with the address forms the
// HTTP layer reports back.
type Resolution struct {
	Match             models.Match
	OriginalAddress   string
	NormalizedAddress string
}

// NewZipcodeService creates a new zipcode service around a built index.
func NewZipcodeService(ix *index.Index) *ZipcodeService {
	s := &ZipcodeService{}
	s.idx.Store(ix)
	return s
}

// Resolve normalizes an address and resolves it against the current
// index. Blank input is rejected before the resolver runs.
func (s *ZipcodeService) Resolve(ctx context.Context, address string) (*Resolution, error) {
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("service: empty address: %w", resolver.ErrMalformedAddress)
	}

	parsed := normalizer.Parse(address)
	m, err := resolver.Resolve(parsed, s.idx.Load())
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve %q: %w", address, err)
	}

	return &Resolution{
		Match:             m,
		OriginalAddress:   address,
		NormalizedAddress: normalizer.Normalize(address),
	}, nil
}

// Reload builds a new immutable index from a fresh dataset snapshot and
// swaps it in atomically.
func (s *ZipcodeService) Reload(rows []models.Row) error {
	ix := index.Build(rows)
	if ix.Rows() == 0 {
		return fmt.Errorf("service: refusing to load an empty index")
	}
	s.idx.Store(ix)
	return nil
}
