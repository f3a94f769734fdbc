package service

import (
	"github.com/deppfellow/registry/internal/lib/job"
	"github.com/deppfellow/registry/internal/repository"
	"github.com/deppfellow/registry/internal/server"
)

// Services groups every business service so handlers and the tool server
// receive them as one value.
type Services struct {
	Job           *job.JobService
	Athlete       *AthleteService
	MedicalSupply *MedicalSupplyService
	Assistant     *AssistantService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var alerts LowStockNotifier
	if s.Job != nil {
		alerts = s.Job
	}

	return &Services{
		Job:           s.Job,
		Athlete:       NewAthleteService(repos.Athlete),
		MedicalSupply: NewMedicalSupplyService(repos.MedicalSupply, alerts),
		Assistant:     NewAssistantService(s.Config.Assistant, s.Metrics),
	}, nil
}
