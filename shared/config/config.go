package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v2"
)

const (
	DriverMemory = "memory"
	DriverPg     = "pg"
	DriverMongo  = "mongo"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HTTP          HTTP      `yaml:"http"`
	Log           Log       `yaml:"log"`
	Storage       Storage   `yaml:"storage"`
	Admin         Admin     `yaml:"admin"`
	Reactions     Reactions `yaml:"reactions"`
	Frontend      Frontend  `yaml:"frontend"`
	RateLimit     RateLimit `yaml:"rate_limit"`
	Limits        Limits    `yaml:"limits"`
	SecureCookies bool      `yaml:"secure_cookies" env:"SECURE_COOKIES"`
	CORSOrigins   []string  `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:8081"`
}

type HTTP struct {
	ApiPort string `yaml:"api_port" env:"API_PORT" env-default:"8080"`
	WebPort string `yaml:"web_port" env:"WEB_PORT" env-default:"8081"`
	// take the client address from X-Forwarded-For; enable only behind the frontend
	TrustProxy bool `yaml:"trust_proxy" env:"TRUST_PROXY"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	JSON  bool   `yaml:"json" env:"LOG_JSON"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	// create-post and the replyCount increment run as two separate writes
	// even when the store could run them in one transaction
	LegacyReplyCount bool `yaml:"legacy_reply_count" env:"LEGACY_REPLY_COUNT"`
}

type Admin struct {
	Email string `yaml:"email" env:"ADMIN_EMAIL" env-default:"admin@unforum.dev"`
	// honor the client-side forum_admin_mode flag; development only
	AllowLocalOverride bool `yaml:"allow_local_override" env:"ADMIN_LOCAL_OVERRIDE"`
}

type Reactions struct {
	LikeTTL time.Duration `yaml:"like_ttl" env:"LIKE_TTL" env-default:"720h"`
}

type Frontend struct {
	ApiURL        string `yaml:"api_url" env:"API_URL" env-default:"http://localhost:8080"`
	TemplatesPath string `yaml:"templates_path" env:"TEMPLATES_PATH" env-default:"frontend/templates"`
	PostsPageSize int    `yaml:"posts_page_size" env:"POSTS_PAGE_SIZE" env-default:"50"`
}

type RateLimit struct {
	CreateThreadEvery time.Duration `yaml:"create_thread_every" env:"CREATE_THREAD_EVERY" env-default:"10s"`
	CreatePostEvery   time.Duration `yaml:"create_post_every" env:"CREATE_POST_EVERY" env-default:"1s"`
}

const (
	DefaultMaxBodyBytes  int64 = 1 << 20
	DefaultContentMaxLen       = 20000
)

type Limits struct {
	// request bodies above this are rejected with 413
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES" env-default:"1048576"`
	// thread and post content, in characters
	ContentMaxLen int `yaml:"content_max_len" env:"CONTENT_MAX_LEN" env-default:"20000"`
}

// BodyBytes is MaxBodyBytes, or the default when unset.
func (l Limits) BodyBytes() int64 {
	if l.MaxBodyBytes <= 0 {
		return DefaultMaxBodyBytes
	}
	return l.MaxBodyBytes
}

// ContentLen is ContentMaxLen, or the default when unset.
func (l Limits) ContentLen() int {
	if l.ContentMaxLen <= 0 {
		return DefaultContentMaxLen
	}
	return l.ContentMaxLen
}

type Private struct {
	Pg             Pg     `yaml:"pg"`
	Mongo          Mongo  `yaml:"mongo"`
	Redis          Redis  `yaml:"redis"`
	IdentitySecret string `yaml:"identity_secret" env:"IDENTITY_SECRET"`
	ReactionsKey   string `yaml:"reactions_key" env:"REACTIONS_KEY"`
}

type Pg struct {
	Host     string `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"PG_USER"`
	Password string `yaml:"password" env:"PG_PASSWORD"`
	Dbname   string `yaml:"dbname" env:"PG_DBNAME" env-default:"unforum"`
}

type Mongo struct {
	URL string `yaml:"url" env:"MONGO_URL"`
}

type Redis struct {
	// empty means in-process like de-duplication
	URL string `yaml:"url" env:"REDIS_URL"`
}

func (s *Config) IdentitySecret() string {
	return s.Private.IdentitySecret
}

func (s *Config) Validate() error {
	switch s.Public.Storage.Driver {
	case DriverMemory, DriverPg, DriverMongo:
	default:
		return fmt.Errorf("unknown storage driver %q", s.Public.Storage.Driver)
	}
	if s.Public.Storage.Driver == DriverMongo && s.Private.Mongo.URL == "" {
		return fmt.Errorf("mongo storage requires mongo.url")
	}
	if s.Private.IdentitySecret == "" {
		return fmt.Errorf("identity_secret is required")
	}
	if s.Public.Frontend.PostsPageSize <= 0 {
		return fmt.Errorf("posts_page_size must be positive")
	}
	return nil
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, then applies
// environment overrides and defaults. Panics if the result is unusable.
func MustLoad(configFolder string) *Config {
	var cfg Config
	mustLoadPath(path.Join(configFolder, "public.yaml"), &cfg.Public)
	mustLoadPath(path.Join(configFolder, "private.yaml"), &cfg.Private)

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("can't apply environment to config: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return &cfg
}
