package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	TestSubjectPrefix string `env:"MAILER_TEST_SUBJECT_PREFIX" envDefault:"[TEST] "`
}
