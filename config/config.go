// Package config resolves the suite configuration from environment
// variables, an optional e2e.yaml file and built-in defaults.
package config

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all configuration for the E2E suite.
type Config struct {
	BaseURL  string   `mapstructure:"base_url"`
	Services []string `mapstructure:"services"`
	CI       bool     `mapstructure:"ci"`
	Debug    bool     `mapstructure:"debug"`

	Browser   BrowserConfig   `mapstructure:"browser"`
	Timeouts  TimeoutConfig   `mapstructure:"timeouts"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
}

// BrowserConfig controls the Playwright launch and context options.
type BrowserConfig struct {
	Headless       bool `mapstructure:"headless"`
	SlowMo         int  `mapstructure:"slow_mo"`
	ViewportWidth  int  `mapstructure:"viewport_width"`
	ViewportHeight int  `mapstructure:"viewport_height"`
	Videos         bool `mapstructure:"videos"`
	Screenshots    bool `mapstructure:"screenshots"`
}

// TimeoutConfig holds the suite's timing knobs.
type TimeoutConfig struct {
	Action            time.Duration `mapstructure:"action"`
	Navigation        time.Duration `mapstructure:"navigation"`
	ReadinessInterval time.Duration `mapstructure:"readiness_interval"`
	ReadinessTotal    time.Duration `mapstructure:"readiness_total"`
}

// ArtifactsConfig names the output locations for run artifacts.
type ArtifactsConfig struct {
	Dir         string `mapstructure:"dir"`
	Screenshots string `mapstructure:"screenshots"`
	Baselines   string `mapstructure:"baselines"`
	Videos      string `mapstructure:"videos"`
}

var (
	cfg      *Config
	loadOnce sync.Once
)

// Get returns the process-wide suite configuration, loading it on first use.
func Get() *Config {
	loadOnce.Do(func() {
		c, err := Load()
		if err != nil {
			zap.S().Warnf("config load failed, using defaults: %v", err)
			c = &Config{}
			applyDefaultsTo(c)
		}
		cfg = c
	})
	return cfg
}

// Load builds a Config from defaults, e2e.yaml (if present) and environment
// variables. Exposed separately from Get so tests can load isolated copies.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("e2e")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("LUMINA_E2E")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy variable names exported by the CI pipeline.
	_ = v.BindEnv("base_url", "E2E_BASE_URL")
	_ = v.BindEnv("ci", "CI")
	_ = v.BindEnv("debug", "DEBUG_TESTS")
	_ = v.BindEnv("browser.headless", "HEADLESS")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	if v.GetBool("autodetect") {
		c.BaseURL = detectReachableBaseURL(c.BaseURL)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "http://localhost:3000")
	v.SetDefault("services", []string{"auth", "users", "learning", "feedback"})
	v.SetDefault("autodetect", true)
	v.SetDefault("ci", false)
	v.SetDefault("debug", false)

	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.slow_mo", 0)
	v.SetDefault("browser.viewport_width", 1280)
	v.SetDefault("browser.viewport_height", 720)
	v.SetDefault("browser.videos", false)
	v.SetDefault("browser.screenshots", true)

	v.SetDefault("timeouts.action", 10*time.Second)
	v.SetDefault("timeouts.navigation", 30*time.Second)
	v.SetDefault("timeouts.readiness_interval", 2*time.Second)
	v.SetDefault("timeouts.readiness_total", 60*time.Second)

	v.SetDefault("artifacts.dir", "test-results")
	v.SetDefault("artifacts.screenshots", "test-results/screenshots")
	v.SetDefault("artifacts.baselines", "test-results/baselines")
	v.SetDefault("artifacts.videos", "test-results/videos")
}

func applyDefaultsTo(c *Config) {
	v := viper.New()
	setDefaults(v)
	_ = v.Unmarshal(c)
}

// detectReachableBaseURL keeps the configured base URL when it answers, and
// otherwise probes the usual local candidates (compose service hostnames do
// not resolve outside the compose network).
func detectReachableBaseURL(initial string) string {
	if reachable(initial) {
		return initial
	}

	candidates := []string{}
	if u, err := url.Parse(initial); err == nil {
		port := u.Port()
		if port == "" {
			port = "3000"
		}
		for _, p := range []string{port, "3000", "13000"} {
			candidates = append(candidates, "http://localhost:"+p, "http://127.0.0.1:"+p)
		}
	}
	candidates = append(candidates, "http://localhost:3000")

	seen := map[string]struct{}{initial: {}}
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		if reachable(c) {
			zap.S().Infof("base URL autodetect switched %s -> %s", initial, c)
			return c
		}
	}
	zap.S().Warnf("base URL autodetect kept unreachable %s", initial)
	return initial
}

func reachable(base string) bool {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Host
	if !strings.Contains(host, ":") {
		host += ":80"
	}
	d := net.Dialer{Timeout: 250 * time.Millisecond}
	conn, err := d.Dial("tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()

	client := &http.Client{Timeout: 800 * time.Millisecond}
	resp, err := client.Get(base + "/auth/health")
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}
