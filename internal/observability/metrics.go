package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AuthRejections counts rejected token validations by internal reason.
	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_auth_rejections_total",
		Help: "Total number of rejected bearer tokens by reason",
	}, []string{"reason"})

	// MutationRejections counts orchestrator rejections by error code.
	MutationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_mutation_rejections_total",
		Help: "Total number of rejected mutations by error code",
	}, []string{"operation", "code"})
)
