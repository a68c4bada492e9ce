package resolver

import "time"

// PaymentConstraints are the payee's published preferences for incoming
// payments. All fields are optional; a nil bound means no bound.
type PaymentConstraints struct {
	MinAmount      *float64
	MaxAmount      *float64
	PreferredChain string
	PreferredToken string
}

// Record is the outcome of resolving one identity: the payee address plus
// whatever metadata the registry published. Records are treated as
// immutable once cached; don't mutate one you got from the cache.
type Record struct {
	Identity    string
	Address     string
	Avatar      string
	Description string
	Constraints PaymentConstraints
	ResolvedAt  time.Time
}
