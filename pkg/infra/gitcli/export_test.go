package gitcli

// Export unexported functions for testing
var (
	HardenedEnvForTest = hardenedEnv
)
