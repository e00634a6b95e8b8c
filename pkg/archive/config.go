package archive

// Config holds S3-compatible storage settings.
type Config struct {
	// Bucket enables archiving when set.
	Bucket string `env:"ARCHIVE_BUCKET"`

	AccessKey string `env:"ARCHIVE_ACCESS_KEY"`
	SecretKey string `env:"ARCHIVE_SECRET_KEY"`

	// Endpoint overrides the AWS endpoint for MinIO, R2 and similar stores.
	Endpoint string `env:"ARCHIVE_ENDPOINT"`

	Region string `env:"ARCHIVE_REGION" envDefault:"us-east-1"`

	// Prefix is prepended to every key. Slashes separate segments.
	Prefix string `env:"ARCHIVE_PREFIX" envDefault:"digests"`

	// PublicURL is the CDN base used when reporting object URLs.
	PublicURL string `env:"ARCHIVE_PUBLIC_URL"`

	// PathStyle is required by MinIO.
	PathStyle bool `env:"ARCHIVE_PATH_STYLE" envDefault:"false"`

	// MaxAttempts bounds SDK retries per upload.
	MaxAttempts int `env:"ARCHIVE_MAX_ATTEMPTS" envDefault:"3"`
}

// Default configuration values.
const (
	DefaultRegion      = "us-east-1"
	DefaultMaxAttempts = 3
)

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool { return c.Bucket != "" }

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
