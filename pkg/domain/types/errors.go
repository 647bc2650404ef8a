package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures for HTTP status mapping. See controller/server.
var (
	// TagInvalidInput marks user-correctable request errors (bad URL, missing field).
	TagInvalidInput = goerr.NewTag("invalid_input")

	// TagArchiveRejected marks archives refused by sanitization: traversal,
	// symlink members, declared-size bombs, or corrupt data.
	TagArchiveRejected = goerr.NewTag("archive_rejected")

	// TagAcquisitionFailed marks clone subprocess failures.
	TagAcquisitionFailed = goerr.NewTag("acquisition_failed")

	// TagAcquisitionTimeout marks clones that exceeded the wall-clock budget.
	TagAcquisitionTimeout = goerr.NewTag("acquisition_timeout")

	// TagPayloadTooLarge marks inputs that crossed a byte ceiling mid-stream.
	TagPayloadTooLarge = goerr.NewTag("payload_too_large")
)

var (
	ErrInvalidOption = goerr.New("invalid option")
)
