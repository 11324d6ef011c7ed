package config

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Fetcher struct {
		TimeoutSeconds int     `env:"FETCH_TIMEOUT_SECONDS" env-default:"15"`
		Retries        uint64  `env:"FETCH_RETRIES" env-default:"3"`
		BackoffFactor  float64 `env:"FETCH_BACKOFF_FACTOR" env-default:"1.8"`
		BackoffMillis  int     `env:"FETCH_BACKOFF_MILLIS" env-default:"500"`
		DebugDir       string  `env:"FETCH_DEBUG_DIR" env-default:"./_threads_debug"`
	}
	Browser struct {
		Args           string `env:"THREADS_BROWSER_ARGS"`
		NoSandbox      bool   `env:"THREADS_USE_NO_SANDBOX" env-default:"false"`
		TimeoutSeconds int    `env:"BROWSER_TIMEOUT_SECONDS" env-default:"30"`
		SettleMillis   int    `env:"BROWSER_SETTLE_MILLIS" env-default:"2000"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetcher.TimeoutSeconds) * time.Second
}

func (c *Config) FetchBackoffInterval() time.Duration {
	return time.Duration(c.Fetcher.BackoffMillis) * time.Millisecond
}

func (c *Config) BrowserTimeout() time.Duration {
	return time.Duration(c.Browser.TimeoutSeconds) * time.Second
}

func (c *Config) BrowserSettleDelay() time.Duration {
	return time.Duration(c.Browser.SettleMillis) * time.Millisecond
}

// BrowserLaunchArgs returns the extra Chrome flags from THREADS_BROWSER_ARGS
// (comma-separated), with the sandbox-disabling flags appended when
// THREADS_USE_NO_SANDBOX is set. Duplicates are dropped.
func (c *Config) BrowserLaunchArgs() []string {
	var args []string
	seen := make(map[string]struct{})

	add := func(arg string) {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return
		}
		if _, ok := seen[arg]; ok {
			return
		}
		seen[arg] = struct{}{}
		args = append(args, arg)
	}

	for _, arg := range strings.Split(c.Browser.Args, ",") {
		add(arg)
	}
	if c.Browser.NoSandbox {
		add("--no-sandbox")
		add("--disable-dev-shm-usage")
	}
	return args
}
