// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on /debug/vars by the serve command.
package metrics

import "expvar"

// Operation counters.
var (
	SearchTotal          = expvar.NewInt("techlingo_search_total")
	LookupTotal          = expvar.NewInt("techlingo_lookup_total")
	LookupLocalHits      = expvar.NewInt("techlingo_lookup_local_hits_total")
	TermsAdded           = expvar.NewInt("techlingo_terms_added_total")
	FavoriteToggles      = expvar.NewInt("techlingo_favorite_toggles_total")
	TranslateTotal       = expvar.NewInt("techlingo_translate_total")
	CodeTotal            = expvar.NewInt("techlingo_code_total")
	StorageReadFailures  = expvar.NewInt("techlingo_storage_read_failures_total")
	StorageWriteFailures = expvar.NewInt("techlingo_storage_write_failures_total")
)

// GatewayFailures counts AI gateway failures keyed by failure kind.
var GatewayFailures = expvar.NewMap("techlingo_gateway_failures_total")

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }

// IncFailure increments the gateway failure counter for kind.
func IncFailure(kind string) { GatewayFailures.Add(kind, 1) }
