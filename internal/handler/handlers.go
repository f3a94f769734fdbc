package handler

import (
	"github.com/deppfellow/registry/internal/server"
	"github.com/deppfellow/registry/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health        *HealthHandler
	Static        *StaticHandler
	Athlete       *AthleteHandler
	MedicalSupply *MedicalSupplyHandler
	Chat          *ChatHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		Static:        NewStaticHandler(s),
		Athlete:       NewAthleteHandler(s, services.Athlete),
		MedicalSupply: NewMedicalSupplyHandler(s, services.MedicalSupply),
		Chat:          NewChatHandler(s, services.Assistant),
	}
}
