package leczair

type Option func(*config)

type config struct {
	handler MsgHandler
	logger  Logger
	dial    DialFunc
	loader  func() (*Settings, error)
}

func defaultConfig() config {
	return config{
		handler: CommandHandler,
		logger:  nopLogger{},
		dial:    Dial,
	}
}

func SetLogger(logger Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func Handler(handler MsgHandler) Option {
	return func(c *config) {
		c.handler = handler
	}
}

// Dialer replaces the TCP/TLS dialer, mostly for tests.
func Dialer(dial DialFunc) Option {
	return func(c *config) {
		c.dial = dial
	}
}

// SettingsLoader is called on the reconfigure, reload and restart admin
// commands. Without one the bot keeps its current settings.
func SettingsLoader(loader func() (*Settings, error)) Option {
	return func(c *config) {
		c.loader = loader
	}
}
