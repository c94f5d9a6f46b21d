package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rented_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// RentRequestTransitions counts rent request lifecycle transitions by outcome
	// (created, edited, withdrawn, approved, declined).
	RentRequestTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rented_rent_request_transitions_total",
		Help: "Total number of rent request lifecycle transitions by outcome",
	}, []string{"transition"})

	// ReceiptsGenerated counts PDF receipts rendered for approved requests.
	ReceiptsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rented_receipts_generated_total",
		Help: "Total number of rental receipts generated",
	})
)

// InitMetrics sets up the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler recording per-request metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
