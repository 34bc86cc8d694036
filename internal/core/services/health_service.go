package services

import (
	"time"

	"github.com/crew-app/crew/internal/core/domain"
)

// HealthService reports liveness and uptime for the server process.
type HealthService struct {
	startTime time.Time
}

func NewHealthService(startTime time.Time) *HealthService {
	return &HealthService{startTime: startTime}
}

func (s *HealthService) Health() domain.Health {
	return domain.Health{
		Status:        "ok",
		Message:       "server is alive",
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	}
}
