package types

import "github.com/google/uuid"

type (
	RequestID  string
	NodeType   string
	OmitReason string
	GitHost    string
)

const (
	NodeTypeFile      NodeType = "file"
	NodeTypeDirectory NodeType = "directory"
)

const (
	OmitReasonBinary OmitReason = "binary"
	OmitReasonLarge  OmitReason = "large"
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}
