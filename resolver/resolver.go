package resolver

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/cubepay/cubepay/common"
	"github.com/cubepay/cubepay/networks"
)

// ErrUnresolvable is returned when an identity has no forward resolution.
var ErrUnresolvable = fmt.Errorf("identity can not be resolved to an address")

// Text record keys the resolver reads for every identity.
const (
	TextKeyAvatar         = "avatar"
	TextKeyDescription    = "description"
	TextKeyMinPayment     = "com.cubepay.minPayment"
	TextKeyMaxPayment     = "com.cubepay.maxPayment"
	TextKeyPreferredChain = "com.cubepay.preferredChain"
	TextKeyPreferredToken = "com.cubepay.preferredToken"
)

// Resolver resolves payee identities through a RegistryClient, caching the
// results. Concurrent resolutions of the same identity share a single
// registry round trip: the singleflight group atomically claims the key or
// joins the resolution already in flight.
type Resolver struct {
	client RegistryClient
	cache  *Cache
	group  singleflight.Group
}

func NewResolver(client RegistryClient, cache *Cache) *Resolver {
	if cache == nil {
		cache = NewCache(DefaultCacheTTL)
	}
	return &Resolver{
		client: client,
		cache:  cache,
	}
}

func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve returns the record for identity, from cache when fresh, otherwise
// performing a full resolution: forward resolve to an address, then fetch
// the metadata text records in parallel.
func (r *Resolver) Resolve(ctx context.Context, identity string) (*Record, error) {
	key := NormalizeIdentity(identity)
	if record := r.cache.Get(key); record != nil {
		return record, nil
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		// another caller may have finished while we waited to claim the key
		if record := r.cache.Get(key); record != nil {
			return record, nil
		}
		r.cache.SetInFlight(key, true)
		defer r.cache.SetInFlight(key, false)

		record, err := r.resolveFresh(ctx, key)
		if err != nil {
			return nil, err
		}
		r.cache.Put(key, record)
		return r.cache.Get(key), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Record), nil
}

func (r *Resolver) resolveFresh(ctx context.Context, identity string) (*Record, error) {
	address, err := r.client.Addr(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("forward resolution of '%s' failed: %w", identity, err)
	}
	if common.IsZeroAddress(address) {
		return nil, fmt.Errorf("'%s': %w", identity, ErrUnresolvable)
	}

	record := &Record{
		Identity: identity,
		Address:  address,
	}

	// the text records target distinct keys, so they are fetched in
	// parallel and order doesn't matter. A failed or absent record is
	// treated as absence rather than failing the whole resolution.
	var avatar, description, minPayment, maxPayment, preferredChain, preferredToken string
	fetch := func(key string, dst *string) func() error {
		return func() error {
			value, err := r.client.Text(ctx, identity, key)
			if err == nil {
				*dst = value
			}
			return nil
		}
	}
	common.RunParallel(
		fetch(TextKeyAvatar, &avatar),
		fetch(TextKeyDescription, &description),
		fetch(TextKeyMinPayment, &minPayment),
		fetch(TextKeyMaxPayment, &maxPayment),
		fetch(TextKeyPreferredChain, &preferredChain),
		fetch(TextKeyPreferredToken, &preferredToken),
	)

	record.Avatar = avatar
	record.Description = description
	record.Constraints = PaymentConstraints{
		MinAmount:      parseOptionalAmount(minPayment),
		MaxAmount:      parseOptionalAmount(maxPayment),
		PreferredChain: preferredChain,
		PreferredToken: preferredToken,
	}
	return record, nil
}

// parseOptionalAmount drops malformed or non-positive values instead of
// propagating them.
func parseOptionalAmount(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return nil
	}
	return &f
}

// Lookup is the UI-facing edge of the resolver: any failure is absorbed
// into a nil result so display code only has to branch on presence.
func (r *Resolver) Lookup(ctx context.Context, identity string) *Record {
	record, err := r.Resolve(ctx, identity)
	if err != nil {
		return nil
	}
	return record
}

// ValidateAmount checks amount against the record's min/max constraints.
// Both bounds are optional and independent.
func ValidateAmount(amount float64, record *Record) (bool, string) {
	if record == nil {
		return true, ""
	}
	if min := record.Constraints.MinAmount; min != nil && amount < *min {
		return false, fmt.Sprintf("amount %g is below the minimum of %g", amount, *min)
	}
	if max := record.Constraints.MaxAmount; max != nil && amount > *max {
		return false, fmt.Sprintf("amount %g is above the maximum of %g", amount, *max)
	}
	return true, ""
}

// RecommendChain maps the record's free-text preferred chain through the
// registry. It returns nil when no preference is set or the preference
// doesn't match a known chain; callers fall back to their own default.
func RecommendChain(record *Record, registry *networks.Registry) *networks.Chain {
	if record == nil || record.Constraints.PreferredChain == "" {
		return nil
	}
	chain, err := registry.ByName(record.Constraints.PreferredChain)
	if err != nil {
		return nil
	}
	return chain
}
