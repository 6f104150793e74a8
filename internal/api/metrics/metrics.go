// Package metrics defines and registers all custom Prometheus metrics for the
// todo service. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todoapi"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (failure is never broken down further:
//     unknown username and wrong password are deliberately indistinguishable)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts access tokens issued.
// Label:
//   - grant: "password" (login) or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of access tokens issued, by grant type.",
	},
	[]string{"grant"},
)

// TokenRejectionsTotal counts bearer tokens rejected during resolution.
// Label:
//   - reason: "decode" (malformed/signature/expired), "missing_subject",
//     or "unknown_subject". Internal only; clients always see the same 401.
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens rejected, by internal reason.",
	},
	[]string{"reason"},
)

// CredentialCacheTotal counts credential cache decisions on the
// token-validation path.
// Label:
//   - result: "hit" or "miss"
var CredentialCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_cache_total",
		Help:      "Total number of credential cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// UsersCreatedTotal counts successful account registrations.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
)

// TodosCreatedTotal counts todos created, by initial state.
var TodosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todo items created, by initial state.",
	},
	[]string{"state"},
)
