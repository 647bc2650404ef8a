package tokenizer

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

// Client counts tokens with tiktoken encodings. Unknown model names fall back
// to cl100k_base rather than failing the request.
type Client struct{}

func New() *Client {
	return &Client{}
}

func (x *Client) Count(text string, modelName string) (int, error) {
	enc, err := encodingFor(modelName)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

func encodingFor(modelName string) (*tiktoken.Tiktoken, error) {
	if modelName != "" {
		if enc, err := tiktoken.EncodingForModel(modelName); err == nil {
			return enc, nil
		}
	}

	enc, err := tiktoken.GetEncoding(fallbackEncoding)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load token encoding", goerr.V("encoding", fallbackEncoding))
	}
	return enc, nil
}
