package filestore

// Provider identifies the artifact storage backend.
type Provider string

const (
	ProviderLocal Provider = "local"
	ProviderMinIO Provider = "minio"
)

// Config holds all settings needed to open an artifact store.
type Config struct {
	// Provider is the storage backend (e.g. ProviderLocal).
	Provider Provider

	// Root is the local directory keys are resolved against.
	// Only used by ProviderLocal. Empty means the working directory.
	Root string

	// Endpoint is the host:port of the storage server.
	// Example: "localhost:9000" for local MinIO.
	Endpoint string

	// AccessKey is the access key ID (MinIO / S3 style).
	AccessKey string

	// SecretKey is the secret access key.
	SecretKey string

	// UseSSL controls whether TLS is used for the connection.
	UseSSL bool

	// Region is used by region-aware backends. Leave empty for MinIO.
	Region string

	// Bucket receives the generated tree. Required for ProviderMinIO.
	Bucket string

	// Prefix is prepended to every object key, e.g. "scaffold/".
	Prefix string
}

// DefaultConfig writes into the working directory.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderLocal,
		Root:     ".",
	}
}
