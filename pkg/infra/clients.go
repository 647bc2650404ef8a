package infra

import (
	"github.com/codexlabs/unroller/pkg/domain/interfaces"
	"github.com/codexlabs/unroller/pkg/infra/gitcli"
	"github.com/codexlabs/unroller/pkg/infra/tokenizer"
)

type Clients struct {
	cloner    interfaces.Cloner
	tokenizer interfaces.Tokenizer
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		cloner:    gitcli.New("git"),
		tokenizer: tokenizer.New(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) Cloner() interfaces.Cloner {
	return x.cloner
}

func (x *Clients) Tokenizer() interfaces.Tokenizer {
	return x.tokenizer
}

func WithCloner(client interfaces.Cloner) Option {
	return func(x *Clients) {
		x.cloner = client
	}
}

func WithTokenizer(client interfaces.Tokenizer) Option {
	return func(x *Clients) {
		x.tokenizer = client
	}
}
