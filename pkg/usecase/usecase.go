package usecase

import (
	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/infra"
)

type UseCase struct {
	clients *infra.Clients
	policy  model.Policy
}

func New(clients *infra.Clients, policy model.Policy) *UseCase {
	return &UseCase{
		clients: clients,
		policy:  policy,
	}
}
