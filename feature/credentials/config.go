package credentials

// Config holds service account settings. Values set here win over the key file.
type Config struct {
	// ProjectID is the Firebase project id.
	ProjectID string `mapstructure:"project_id" default:""`
	// ClientEmail is the service account email (client_email in a key file).
	ClientEmail string `mapstructure:"client_email" default:""`
	// PrivateKey is the PEM private key. Escaped "\n" sequences are accepted.
	PrivateKey string `mapstructure:"private_key" default:""`
	// KeyFile is an optional downloaded service account JSON key.
	KeyFile string `mapstructure:"key_file" default:""`
}
