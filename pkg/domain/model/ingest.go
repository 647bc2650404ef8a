package model

import (
	"io"

	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ArchiveUpload is an uploaded zip archive, consumed as a stream. Size is
// enforced incrementally while draining Reader, not trusted from the client.
type ArchiveUpload struct {
	FileName string
	Reader   io.Reader
}

// IngestInput carries exactly one source: a repository URL or an uploaded
// archive. Supplying neither or both is rejected before any work starts.
type IngestInput struct {
	RepoURL *RepoURL
	Archive *ArchiveUpload
}

func (x *IngestInput) Validate() error {
	if x.RepoURL == nil && x.Archive == nil {
		return goerr.New("provide either a repo URL or .zip file", goerr.T(types.TagInvalidInput))
	}
	if x.RepoURL != nil && x.Archive != nil {
		return goerr.New("provide only one of repo URL or .zip file", goerr.T(types.TagInvalidInput))
	}
	return nil
}

// TreeNode is one entry of the hierarchical view. Directories always carry a
// children array (possibly empty), ordered case-insensitively by name; file
// nodes serialize children as null.
type TreeNode struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Type     types.NodeType `json:"type"`
	Children []*TreeNode    `json:"children"`
}

// FileRecord is one entry of the flat file list. Content is set only when the
// file is text and within the per-file size ceiling; otherwise OmittedReason
// says why it was withheld. Both fields serialize as explicit nulls when
// absent.
type FileRecord struct {
	Path          string            `json:"path"`
	Size          int64             `json:"size"`
	Omitted       bool              `json:"omitted"`
	OmittedReason *types.OmitReason `json:"omittedReason"`
	Content       *string           `json:"content"`
}

type IngestOutput struct {
	Files []*FileRecord `json:"files"`
	Tree  []*TreeNode   `json:"tree"`
}

type TokenRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type TokenResponse struct {
	Tokens int `json:"tokens"`
}
