package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jitendra-jitu/Project-Mang-system/logging"
)

// Handler answers /health by pinging MongoDB through a circuit breaker, so
// a dead database is reported immediately instead of stalling every probe
// on a connection timeout.
type Handler struct {
	client  *mongo.Client
	breaker *gobreaker.CircuitBreaker
}

func NewHandler(client *mongo.Client) *Handler {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MongoHealthCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &Handler{client: client, breaker: breaker}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, err := h.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		return nil, h.client.Ping(ctx, nil)
	})

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		logging.Logger.Warnf("Event ID: HEALTH_CHECK_FAILED, Description: Database ping failed: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "database unreachable"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": map[string]string{"status": "up"}})
}
