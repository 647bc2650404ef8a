package model_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestIngestInputValidate(t *testing.T) {
	repo := gt.R1(model.ParseRepoURL("https://github.com/octocat/hello-world", testAllowedHosts)).NoError(t)
	archive := &model.ArchiveUpload{
		FileName: "code.zip",
		Reader:   bytes.NewReader(nil),
	}

	t.Run("url only is valid", func(t *testing.T) {
		input := &model.IngestInput{RepoURL: repo}
		gt.NoError(t, input.Validate())
	})

	t.Run("archive only is valid", func(t *testing.T) {
		input := &model.IngestInput{Archive: archive}
		gt.NoError(t, input.Validate())
	})

	t.Run("neither source is rejected", func(t *testing.T) {
		input := &model.IngestInput{}
		err := input.Validate()
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagInvalidInput)).Equal(true)
	})

	t.Run("both sources are rejected", func(t *testing.T) {
		input := &model.IngestInput{RepoURL: repo, Archive: archive}
		err := input.Validate()
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagInvalidInput)).Equal(true)
	})
}

func TestResponseShape(t *testing.T) {
	t.Run("file record serializes explicit nulls", func(t *testing.T) {
		record := &model.FileRecord{Path: "a.bin", Size: 3, Omitted: false}
		body := gt.R1(json.Marshal(record)).NoError(t)

		gt.V(t, strings.Contains(string(body), `"content":null`)).Equal(true)
		gt.V(t, strings.Contains(string(body), `"omittedReason":null`)).Equal(true)
	})

	t.Run("directory node serializes empty children array", func(t *testing.T) {
		node := &model.TreeNode{
			Name:     "empty",
			Path:     "empty",
			Type:     types.NodeTypeDirectory,
			Children: []*model.TreeNode{},
		}
		body := gt.R1(json.Marshal(node)).NoError(t)

		gt.V(t, strings.Contains(string(body), `"children":[]`)).Equal(true)
	})

	t.Run("file node serializes null children", func(t *testing.T) {
		node := &model.TreeNode{Name: "a.txt", Path: "a.txt", Type: types.NodeTypeFile}
		body := gt.R1(json.Marshal(node)).NoError(t)

		gt.V(t, strings.Contains(string(body), `"children":null`)).Equal(true)
	})
}

func TestPolicySkipDirSet(t *testing.T) {
	policy := model.DefaultPolicy()
	set := policy.SkipDirSet()

	_, hasGit := set[".git"]
	gt.V(t, hasGit).Equal(true)
	_, hasNodeModules := set["node_modules"]
	gt.V(t, hasNodeModules).Equal(true)
	_, hasSrc := set["src"]
	gt.V(t, hasSrc).Equal(false)
}
