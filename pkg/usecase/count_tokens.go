package usecase

import (
	"context"
	"unicode/utf8"

	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// CountTokens is a pass-through to the tokenizer collaborator, bounded by the
// configured character ceiling. The ceiling counts characters, not bytes, so
// multi-byte text is not penalized.
func (x *UseCase) CountTokens(_ context.Context, req *model.TokenRequest) (*model.TokenResponse, error) {
	if utf8.RuneCountInString(req.Text) > x.policy.MaxTokenChars {
		return nil, goerr.New("text exceeds allowed size",
			goerr.T(types.TagPayloadTooLarge),
			goerr.V("limit", x.policy.MaxTokenChars),
		)
	}

	count, err := x.clients.Tokenizer().Count(req.Text, req.Model)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{Tokens: count}, nil
}
