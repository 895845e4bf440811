package types

type Config struct {
	AppName     string         `mapstructure:"app_name"`
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	Runner      RunnerConfig   `mapstructure:"runner"`
	Jobs        []JobConfig    `mapstructure:"jobs"`
	Shutdown    ShutdownConfig `mapstructure:"shutdown"`
	Logger      LoggerConfig   `mapstructure:"logger"`
}
