package tokenizer_test

import (
	"os"
	"testing"

	"github.com/codexlabs/unroller/pkg/infra/tokenizer"
	"github.com/m-mizutani/gt"
)

// tiktoken loads BPE data over the network on first use, so these tests are
// gated the same way as other external-dependency tests.
func TestCount(t *testing.T) {
	if _, ok := os.LookupEnv("TEST_TIKTOKEN"); !ok {
		t.Skip("TEST_TIKTOKEN is not set")
	}

	client := tokenizer.New()

	t.Run("default encoding", func(t *testing.T) {
		n := gt.R1(client.Count("hello world", "")).NoError(t)
		gt.Number(t, n).Greater(0)
	})

	t.Run("unknown model falls back", func(t *testing.T) {
		n := gt.R1(client.Count("hello world", "no-such-model")).NoError(t)
		gt.Number(t, n).Greater(0)
	})

	t.Run("empty text counts zero", func(t *testing.T) {
		n := gt.R1(client.Count("", "")).NoError(t)
		gt.V(t, n).Equal(0)
	})
}
