package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI          AIConfig          `yaml:"ai"`
	YouTube     YouTubeConfig     `yaml:"youtube"`
	Email       EmailConfig       `yaml:"email"`
	Schedule    ScheduleConfig    `yaml:"schedule_table"`
	Performance PerformanceConfig `yaml:"performance_table"`
	Insights    InsightsConfig    `yaml:"insights"`
	// Categories maps category name (emotional, rational, product,
	// brand) to the keywords that classify a creative into it.
	Categories map[string][]string `yaml:"categories"`
	OutputDir  string              `yaml:"output_dir"`
	CronExpr   string              `yaml:"cron"`
	Monitoring MonitoringConfig    `yaml:"monitoring"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type YouTubeConfig struct {
	APIKey string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// Enabled reports whether report delivery by email is configured at all.
func (e *EmailConfig) Enabled() bool {
	return e.SMTPServer != "" && e.ToEmail != ""
}

// ScheduleConfig names the flight-schedule table's columns.
type ScheduleConfig struct {
	StartColumn string `yaml:"start_column"`
	EndColumn   string `yaml:"end_column"`
	LinkKeyword string `yaml:"link_keyword"`
	DateLayout  string `yaml:"date_layout"`
}

// PerformanceConfig names the KPI table's columns.
type PerformanceConfig struct {
	DateColumn   string `yaml:"date_column"`
	MetricColumn string `yaml:"metric_column"`
}

type InsightsConfig struct {
	// Window is the number of days taken from each tail of the ranked
	// daily table when computing net scores.
	Window int `yaml:"window"`
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		// No config file: run purely off environment variables.
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.Email.Username == "" {
		cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if cfg.Email.Password == "" {
		cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.OutputDir == "" {
		c.OutputDir = "outputs"
	}
	if c.Schedule.StartColumn == "" {
		c.Schedule.StartColumn = "Início"
	}
	if c.Schedule.EndColumn == "" {
		c.Schedule.EndColumn = "Fim"
	}
	if c.Schedule.LinkKeyword == "" {
		c.Schedule.LinkKeyword = "Link"
	}
	if c.Schedule.DateLayout == "" {
		c.Schedule.DateLayout = "02/01/2006"
	}
	if c.Performance.DateColumn == "" {
		c.Performance.DateColumn = "day"
	}
	if c.Performance.MetricColumn == "" {
		c.Performance.MetricColumn = "PerformanceMetric"
	}
	if c.Insights.Window <= 0 {
		c.Insights.Window = 20
	}
	if len(c.Categories) == 0 {
		c.Categories = map[string][]string{
			"emotional": {"emocional", "emotional"},
			"rational":  {"racional", "rational"},
			"product":   {"produto", "product"},
			"brand":     {"marca", "brand"},
		}
	}
	if c.CronExpr == "" {
		c.CronExpr = "0 0 6 * * *" // Daily at 6 AM
	}
	if c.Monitoring.HealthPort == 0 {
		c.Monitoring.HealthPort = 8080
	}
}

func (c *Config) validate() error {
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if c.Email.Enabled() && c.Email.FromEmail == "" {
		return fmt.Errorf("email delivery is configured but email.from_email is missing")
	}
	return nil
}
