package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/codexlabs/unroller/pkg/domain/model"
)

type UseCase interface {
	Ingest(ctx context.Context, input *model.IngestInput) (*model.IngestOutput, error)
	CountTokens(ctx context.Context, req *model.TokenRequest) (*model.TokenResponse, error)
}
