package usecase_test

import (
	"context"
	"testing"

	"github.com/codexlabs/unroller/pkg/domain/mock"
	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/codexlabs/unroller/pkg/infra"
	"github.com/codexlabs/unroller/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestCountTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to the tokenizer", func(t *testing.T) {
		tok := &mock.TokenizerMock{
			CountFunc: func(text string, modelName string) (int, error) {
				gt.V(t, text).Equal("hello world")
				gt.V(t, modelName).Equal("gpt-4")
				return 2, nil
			},
		}

		uc := usecase.New(infra.New(infra.WithTokenizer(tok)), model.DefaultPolicy())
		resp := gt.R1(uc.CountTokens(ctx, &model.TokenRequest{Text: "hello world", Model: "gpt-4"})).NoError(t)

		gt.V(t, resp.Tokens).Equal(2)
		gt.V(t, len(tok.CountCalls())).Equal(1)
	})

	t.Run("text above the ceiling is rejected before tokenizing", func(t *testing.T) {
		tok := &mock.TokenizerMock{
			CountFunc: func(text string, modelName string) (int, error) {
				t.Fatal("tokenizer must not be called")
				return 0, nil
			},
		}

		policy := model.DefaultPolicy()
		policy.MaxTokenChars = 8

		uc := usecase.New(infra.New(infra.WithTokenizer(tok)), policy)
		_, err := uc.CountTokens(ctx, &model.TokenRequest{Text: "way too long for the ceiling"})
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagPayloadTooLarge)).Equal(true)
	})

	t.Run("ceiling counts characters not bytes", func(t *testing.T) {
		tok := &mock.TokenizerMock{
			CountFunc: func(text string, modelName string) (int, error) {
				return 4, nil
			},
		}

		policy := model.DefaultPolicy()
		policy.MaxTokenChars = 4

		// Four runes, twelve bytes: must pass a four-character ceiling.
		uc := usecase.New(infra.New(infra.WithTokenizer(tok)), policy)
		resp := gt.R1(uc.CountTokens(ctx, &model.TokenRequest{Text: "日本語だ"})).NoError(t)

		gt.V(t, resp.Tokens).Equal(4)
	})
}
