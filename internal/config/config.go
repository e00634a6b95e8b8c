// Package config loads the process settings of the digest command from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/digest/pkg/archive"
	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/db"
	"github.com/dmitrymomot/digest/pkg/dispatch"
	dispatchresend "github.com/dmitrymomot/digest/pkg/dispatch/resend"
	"github.com/dmitrymomot/digest/pkg/job"
	"github.com/dmitrymomot/digest/pkg/logger"
	"github.com/dmitrymomot/digest/pkg/mailer"
	"github.com/dmitrymomot/digest/pkg/redis"
	"github.com/dmitrymomot/digest/pkg/render"
)

// ErrInvalid reports missing or malformed settings. It wraps
// dispatch.ErrConfiguration so callers treat it as non-retryable.
var ErrInvalid = fmt.Errorf("config: invalid configuration: %w", dispatch.ErrConfiguration)

// Provider names.
const (
	ProviderResend = "resend"
	ProviderLog    = "log"
)

// Config is the full set of process settings.
type Config struct {
	Location *time.Location `env:"-"`

	Database db.Config
	Resend   dispatchresend.Config
	Render   render.Config
	Mailer   mailer.Config
	Archive  archive.Config
	Log      logger.Config
	Redis    redis.Config

	Provider        string        `env:"DIGEST_PROVIDER" envDefault:"resend"`
	Kind            content.Kind  `env:"DIGEST_KIND" envDefault:"jobs"`
	AudienceID      string        `env:"DISPATCH_AUDIENCE_ID"`
	Timezone        string        `env:"DIGEST_TIMEZONE" envDefault:"UTC"`
	Schedule        string        `env:"DIGEST_SCHEDULE" envDefault:"0 8 * * *"`
	RedisURL        string        `env:"REDIS_URL"`
	HTTPAddress     string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	ExcludedSources []string      `env:"DIGEST_EXCLUDED_SOURCES" envDefault:"eu-institution,eu-rss"`
	JobCount        int           `env:"DIGEST_JOB_COUNT" envDefault:"10"`
	MaxAttempts     int           `env:"DIGEST_MAX_ATTEMPTS" envDefault:"3"`
	RunTimeout      time.Duration `env:"DIGEST_RUN_TIMEOUT" envDefault:"2m"`
	LockTTL         time.Duration `env:"DIGEST_LOCK_TTL" envDefault:"10m"`
	OncePerDay      bool          `env:"DIGEST_ONCE_PER_DAY" envDefault:"false"`
}

// Load reads the given .env files (".env" when none are named), then parses
// the environment. Missing files are ignored; real variables win over file
// entries.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, f, err)
		}
	}
	return Parse(env.Options{})
}

// Parse builds a Config from opts and checks the settings every command
// needs.
func Parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, errors.Join(ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings shared by all commands and resolves Location.
func (c *Config) Validate() error {
	var errs []error

	if _, err := content.ParseKind(string(c.Kind)); err != nil {
		errs = append(errs, fmt.Errorf("DIGEST_KIND: %q is not jobs or letters", c.Kind))
	}
	if c.JobCount <= 0 {
		errs = append(errs, fmt.Errorf("DIGEST_JOB_COUNT: must be greater than zero, got %d", c.JobCount))
	}
	if c.Provider != ProviderResend && c.Provider != ProviderLog {
		errs = append(errs, fmt.Errorf("DIGEST_PROVIDER: %q is not resend or log", c.Provider))
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("DIGEST_TIMEZONE: %w", err))
	} else {
		c.Location = loc
	}
	if err := job.ParseSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("DIGEST_SCHEDULE: %w", err))
	}
	if c.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("DIGEST_MAX_ATTEMPTS: must be greater than zero, got %d", c.MaxAttempts))
	}
	if c.RunTimeout <= 0 {
		errs = append(errs, fmt.Errorf("DIGEST_RUN_TIMEOUT: must be positive, got %s", c.RunTimeout))
	}
	if c.RedisURL != "" && !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
		errs = append(errs, errors.New("REDIS_URL: must use redis:// or rediss://"))
	}
	if c.Archive.Enabled() && (c.Archive.AccessKey == "" || c.Archive.SecretKey == "") {
		errs = append(errs, errors.New("ARCHIVE_ACCESS_KEY and ARCHIVE_SECRET_KEY are required with ARCHIVE_BUCKET"))
	}

	return invalid(errs)
}

// ValidateDispatch checks the provider settings a sending command needs.
func (c *Config) ValidateDispatch() error {
	var errs []error
	if strings.TrimSpace(c.AudienceID) == "" {
		errs = append(errs, errors.New("DISPATCH_AUDIENCE_ID: required"))
	}
	if strings.TrimSpace(c.Resend.SenderEmail) == "" {
		errs = append(errs, errors.New("DISPATCH_SENDER_EMAIL: required"))
	}
	if c.Provider == ProviderResend && strings.TrimSpace(c.Resend.APIKey) == "" {
		errs = append(errs, errors.New("RESEND_API_KEY: required when DIGEST_PROVIDER=resend"))
	}
	return invalid(errs)
}

// ValidateMail checks the settings of the transactional test send.
func (c *Config) ValidateMail() error {
	var errs []error
	if strings.TrimSpace(c.Resend.APIKey) == "" {
		errs = append(errs, errors.New("RESEND_API_KEY: required"))
	}
	if strings.TrimSpace(c.Resend.SenderEmail) == "" {
		errs = append(errs, errors.New("DISPATCH_SENDER_EMAIL: required"))
	}
	return invalid(errs)
}

// Sender returns the campaign sender. The display name defaults to the brand.
func (c *Config) Sender() dispatch.Sender {
	name := c.Resend.SenderName
	if name == "" && !strings.Contains(c.Resend.SenderEmail, "<") {
		name = c.Render.Brand
	}
	return dispatch.Sender{Name: name, Address: c.Resend.SenderEmail}
}

func invalid(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalid}, errs...)...)
}
