package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Menu     MenuConfig     `yaml:"menu"`
	Activity ActivityConfig `yaml:"activity"`
	Delivery DeliveryConfig `yaml:"delivery"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings for the REST API.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimit is the number of REST API requests allowed per client IP per minute.
	RateLimit int `yaml:"rate_limit" env:"SERVER_RATE_LIMIT" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds settings for validating REST API bearer tokens.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"huddle"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MenuConfig holds settings of the menu-based telephony channel.
type MenuConfig struct {
	// DialPrefixLength is the length of the base dial string; anything dialed
	// beyond it is treated as a trailing code.
	DialPrefixLength int           `yaml:"dial_prefix_length" env:"MENU_DIAL_PREFIX_LENGTH" env-default:"7"`
	ScreenLimit      int           `yaml:"screen_limit"       env:"MENU_SCREEN_LIMIT"       env-default:"182"`
	PointerTTL       time.Duration `yaml:"pointer_ttl"        env:"MENU_POINTER_TTL"        env-default:"5m"`
	DefaultLocale    string        `yaml:"default_locale"     env:"MENU_DEFAULT_LOCALE"     env-default:"en"`
	AppLinkURL       string        `yaml:"app_link_url"       env:"MENU_APP_LINK_URL"       env-default:"https://huddle.app/get"`
	MaxListItems     int           `yaml:"max_list_items"     env:"MENU_MAX_LIST_ITEMS"     env-default:"5"`
}

// ActivityConfig holds activity service parameters.
type ActivityConfig struct {
	DedupWindow        time.Duration `yaml:"dedup_window"         env:"ACTIVITY_DEDUP_WINDOW"          env-default:"180s"`
	MaxLabelLength     int           `yaml:"max_label_length"     env:"ACTIVITY_MAX_LABEL_LENGTH"      env-default:"60"`
	ReminderOffsetsRaw string        `yaml:"reminder_offsets"     env:"ACTIVITY_REMINDER_OFFSETS"      env-default:"24h,1h"`
	ReminderHorizon    time.Duration `yaml:"reminder_horizon"     env:"ACTIVITY_REMINDER_HORIZON"      env-default:"48h"`
	MaxVoteOptions     int           `yaml:"max_vote_options"     env:"ACTIVITY_MAX_VOTE_OPTIONS"      env-default:"5"`

	// ReminderOffsets is parsed from ReminderOffsetsRaw during validation,
	// sorted from the earliest reminder to the latest.
	ReminderOffsets []time.Duration `yaml:"-" env:"-"`
}

// DeliveryConfig holds settings of the outbound notification sink.
// An empty broker list selects the logging sink.
type DeliveryConfig struct {
	KafkaBrokers string        `yaml:"kafka_brokers" env:"DELIVERY_KAFKA_BROKERS"`
	KafkaTopic   string        `yaml:"kafka_topic"   env:"DELIVERY_KAFKA_TOPIC"   env-default:"notifications"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"DELIVERY_WRITE_TIMEOUT" env-default:"10s"`
}

// CatalogConfig points to an optional message catalog overriding the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path" env:"CATALOG_PATH"`
}

// UsesKafka reports whether notifications are published to Kafka.
func (d DeliveryConfig) UsesKafka() bool {
	return d.KafkaBrokers != ""
}

// Brokers returns the configured broker addresses.
func (d DeliveryConfig) Brokers() []string {
	var out []string
	for _, b := range strings.Split(d.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
