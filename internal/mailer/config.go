package mailer

// Config is the environment-sourced SMTP configuration. Username and
// Password are optional: when either is empty the process falls back
// to the development sender instead of failing startup.
type Config struct {
	Host      string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port      int    `env:"SMTP_PORT" envDefault:"587"`
	Username  string `env:"SMTP_USERNAME"`
	Password  string `env:"SMTP_PASSWORD"`
	FromEmail string `env:"SMTP_FROM_EMAIL"`
	FromName  string `env:"SMTP_FROM_NAME" envDefault:"BlogApp"`

	// DevOutputDir receives rendered emails when SMTP credentials are
	// not configured.
	DevOutputDir string `env:"MAIL_DEV_OUTPUT_DIR" envDefault:"./email-output"`
}

// HasCredentials reports whether the config can drive a real SMTP
// session.
func (c Config) HasCredentials() bool {
	return c.Username != "" && c.Password != "" && c.FromEmail != ""
}
