package flags

// Package flags defines canonical CLI flag names shared across commands.
// Keeping these as constants helps avoid drift between Cobra flag wiring and
// other code paths that need to reference flags (e.g. error messages).
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Catalog
	FlagAPIURL = "api-url"
	FlagToken  = "token"
	FlagTag    = "tag"

	// Listing
	FlagFeatured = "featured"

	// Installer
	FlagInstaller      = "installer"
	FlagInstallTimeout = "install-timeout"

	// Output
	FlagFormat = "format"

	// Runtime
	FlagTimeout = "timeout"
	FlagVerbose = "verbose"
	FlagEnvFile = "env-file"
)
