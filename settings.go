package leczair

import (
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. LECZAIR_IRC_HOST.
const EnvPrefix = "LECZAIR"

type IRCSettings struct {
	Host         string        `yaml:"host" envconfig:"HOST" validate:"required,hostname_rfc1123|ip"`
	Port         int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	SSL          bool          `yaml:"ssl" envconfig:"SSL"`
	Nick         string        `yaml:"nick" envconfig:"NICK" validate:"required,ircnick"`
	Ident        string        `yaml:"ident" envconfig:"IDENT" validate:"omitempty,ircnick"`
	RealName     string        `yaml:"realname" envconfig:"REALNAME"`
	Password     string        `yaml:"password" envconfig:"PASSWORD"`
	NickServPass string        `yaml:"nickservpass" envconfig:"NICKSERV_PASS"`
	Channels     []string      `yaml:"channels" envconfig:"CHANNELS" validate:"dive,ircchannel"`
	Charset      string        `yaml:"charset" envconfig:"CHARSET" validate:"omitempty,charset"`
	ReadTimeout  time.Duration `yaml:"readtimeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	MaxLine      int           `yaml:"maxline" envconfig:"MAX_LINE" validate:"min=0"`
}

type Settings struct {
	IRC            IRCSettings       `yaml:"irc"`
	Admins         []string          `yaml:"admins" envconfig:"ADMINS" validate:"dive,regexp"`
	Behaviour      map[string]string `yaml:"behaviour" envconfig:"BEHAVIOUR"`
	ReconnectDelay time.Duration     `yaml:"reconnectdelay" envconfig:"RECONNECT_DELAY" validate:"min=0"`
	LogLevel       string            `yaml:"loglevel" envconfig:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	custom := map[string]validator.Func{
		"ircnick": func(fl validator.FieldLevel) bool {
			return isNick(fl.Field().String())
		},
		"ircchannel": func(fl validator.FieldLevel) bool {
			return isChannel(fl.Field().String())
		},
		"regexp": func(fl validator.FieldLevel) bool {
			_, err := regexp.Compile(fl.Field().String())
			return err == nil
		},
		"charset": func(fl validator.FieldLevel) bool {
			_, err := lookupCharmap(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

func DefaultSettings() *Settings {
	return &Settings{
		IRC: IRCSettings{
			Port:        6667,
			ReadTimeout: DefaultReadTimeout,
			MaxLine:     16 * 1024,
		},
		Behaviour:      map[string]string{},
		ReconnectDelay: 30 * time.Second,
		LogLevel:       "info",
	}
}

// LoadSettings reads a YAML (or JSON) settings file, applies environment
// overrides and validates the result.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return ParseSettings(data)
}

func ParseSettings(data []byte) (*Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, s); err != nil {
		return nil, fmt.Errorf("settings from environment: %w", err)
	}
	if s.IRC.Ident == "" {
		s.IRC.Ident = s.IRC.Nick
	}
	if s.IRC.RealName == "" {
		s.IRC.RealName = s.IRC.Nick
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// IsAdmin reports whether user (a full nick!user@host) fully matches one
// of the admin patterns.
func (s *Settings) IsAdmin(user string) bool {
	return lo.SomeBy(s.Admins, func(pattern string) bool {
		re, err := regexp.Compile(`^(?:` + pattern + `)$`)
		return err == nil && re.MatchString(user)
	})
}

func (irc IRCSettings) Address() string {
	return net.JoinHostPort(irc.Host, strconv.Itoa(irc.Port))
}

func (irc IRCSettings) transportOptions(logger Logger) ([]TransportOption, error) {
	cm, err := lookupCharmap(irc.Charset)
	if err != nil {
		return nil, err
	}
	return []TransportOption{
		WithReadTimeout(irc.ReadTimeout),
		WithMaxBuffer(irc.MaxLine),
		WithCharmap(cm),
		WithLogger(logger),
	}, nil
}
