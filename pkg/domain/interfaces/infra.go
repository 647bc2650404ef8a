package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . Cloner Tokenizer

import (
	"context"

	"github.com/codexlabs/unroller/pkg/domain/model"
)

// Cloner materializes a repository into dst with depth-1 history. The concrete
// mechanism (git subprocess or a native library) is swappable; implementations
// must respect ctx cancellation, never prompt for credentials, and leave no
// VCS metadata under dst on success.
type Cloner interface {
	Clone(ctx context.Context, repo *model.RepoURL, dst string) error
}

// Tokenizer counts tokens of a text for an optional model name. Unknown models
// fall back to a default encoding.
type Tokenizer interface {
	Count(text string, modelName string) (int, error)
}
