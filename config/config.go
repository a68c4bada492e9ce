package config

// Flag-bound state shared by the CLI commands.
var (
	Network     string
	DestNetwork string

	From         string
	To           string
	Amount       string
	Token        string
	KeystoreFile string

	CustomChainsDir string
	NoConfirmWait   bool
)
