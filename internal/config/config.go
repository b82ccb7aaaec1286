package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime knob. Values come from the environment or an
// optional .env file; everything has a working default.
type Config struct {
	// Server
	RESTPort string `mapstructure:"REST_PORT"`
	WSPort   string `mapstructure:"WS_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Upstream bases
	StatsAPIBase     string `mapstructure:"STATS_API_BASE"`
	InjuryReportURL  string `mapstructure:"INJURY_REPORT_URL"`
	ReferenceBase    string `mapstructure:"REFERENCE_BASE"`
	TeamRankingsBase string `mapstructure:"TEAMRANKINGS_BASE"`

	// Local CSV schedule fallback (Date,Visitor,Home); empty disables it
	ScheduleCSVPath string `mapstructure:"SCHEDULE_CSV_PATH"`

	// Seasons queried for game logs, most recent last
	CurrentSeason  string `mapstructure:"CURRENT_SEASON"`
	PreviousSeason string `mapstructure:"PREVIOUS_SEASON"`

	// Upstream client behavior
	RequestTimeout        time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	UpstreamRatePerSecond float64       `mapstructure:"UPSTREAM_RATE_PER_SECOND"`
	EnableBrowserFallback bool          `mapstructure:"ENABLE_BROWSER_FALLBACK"`

	// Cache TTLs
	AnalysisTTL    time.Duration `mapstructure:"ANALYSIS_TTL"`
	LeagueTableTTL time.Duration `mapstructure:"LEAGUE_TABLE_TTL"`
	PlayerIndexTTL time.Duration `mapstructure:"PLAYER_INDEX_TTL"`

	// Cache warmer
	EnableCacheWarmer bool   `mapstructure:"ENABLE_CACHE_WARMER"`
	CacheWarmSchedule string `mapstructure:"CACHE_WARM_SCHEDULE"`
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("REST_PORT", "8080")
	viper.SetDefault("WS_PORT", "8081")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379")
	viper.SetDefault("STATS_API_BASE", "https://stats.nba.com/stats")
	viper.SetDefault("INJURY_REPORT_URL", "https://www.cbssports.com/nba/injuries/")
	viper.SetDefault("REFERENCE_BASE", "https://www.basketball-reference.com")
	viper.SetDefault("TEAMRANKINGS_BASE", "https://www.teamrankings.com")
	viper.SetDefault("SCHEDULE_CSV_PATH", "")
	viper.SetDefault("CURRENT_SEASON", "2024-25")
	viper.SetDefault("PREVIOUS_SEASON", "2023-24")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("UPSTREAM_RATE_PER_SECOND", 2.0)
	viper.SetDefault("ENABLE_BROWSER_FALLBACK", false)
	viper.SetDefault("ANALYSIS_TTL", "10m")
	viper.SetDefault("LEAGUE_TABLE_TTL", "1h")
	viper.SetDefault("PLAYER_INDEX_TTL", "1h")
	viper.SetDefault("ENABLE_CACHE_WARMER", false)
	viper.SetDefault("CACHE_WARM_SCHEDULE", "0 3 * * *")

	viper.AutomaticEnv()

	// Missing .env is fine; the environment and defaults cover everything
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether we are running in a development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}
