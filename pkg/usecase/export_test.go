package usecase

// Export unexported functions for testing
var (
	SanitizeArchiveForTest = sanitizeArchive
	ExtractArchiveForTest  = extractArchive
	CollectTreeForTest     = collectTree
	StreamToFileForTest    = streamToFile
)
