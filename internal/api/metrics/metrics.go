// Package metrics defines the custom Prometheus metrics of the auth service.
// All metrics are registered with the default registry at package init and
// exposed on /metrics next to the HTTP metrics from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// Result label values shared by the signup and login counters.
const (
	ResultSuccess         = "success"
	ResultInvalidInput    = "invalid_input"
	ResultDuplicateEmail  = "duplicate_email"
	ResultBadCredentials  = "bad_credentials"
	ResultInternalFailure = "error"
)

// SignupsTotal counts signup attempts.
// Label:
//   - result: success, invalid_input, duplicate_email, error
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: success, invalid_input, bad_credentials, error
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests.",
	},
)

// SessionsIssuedTotal counts session cookies set, by the operation that set them.
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued.",
	},
	[]string{"operation"},
)
