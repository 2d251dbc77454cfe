package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	API       API             `mapstructure:"api"`
	Binance   Binance         `mapstructure:"binance"`
	Cache     Cache           `mapstructure:"cache"`
	Scanner   ScannerConfig   `mapstructure:"scanner"`
	Indicator IndicatorConfig `mapstructure:"indicator"`
	Backtest  BacktestConfig  `mapstructure:"backtest"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Binance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	QuoteAsset          string        `mapstructure:"quote_asset"`
	MinQuoteVolume      float64       `mapstructure:"min_quote_volume"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type ScannerConfig struct {
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
	DefaultLimit   int           `mapstructure:"default_limit"`
	Interval       string        `mapstructure:"interval"`
	CandleLimit    int           `mapstructure:"candle_limit"`
}

type IndicatorConfig struct {
	RSIPeriod           int     `mapstructure:"rsi_period"`
	MACDFastPeriod      int     `mapstructure:"macd_fast_period"`
	MACDSlowPeriod      int     `mapstructure:"macd_slow_period"`
	MACDSignalPeriod    int     `mapstructure:"macd_signal_period"`
	ATRPeriod           int     `mapstructure:"atr_period"`
	BollingerPeriod     int     `mapstructure:"bollinger_period"`
	BollingerMultiplier float64 `mapstructure:"bollinger_multiplier"`
	LevelLookback       int     `mapstructure:"level_lookback"`
	LevelMergeThreshold float64 `mapstructure:"level_merge_threshold"`
}

type BacktestConfig struct {
	InitialCapital     float64 `mapstructure:"initial_capital"`
	PositionPercent    float64 `mapstructure:"position_percent"`
	RSIOversold        float64 `mapstructure:"rsi_oversold"`
	RSIOverbought      float64 `mapstructure:"rsi_overbought"`
	StopLossPercent    float64 `mapstructure:"stop_loss_percent"`
	TakeProfitPercent  float64 `mapstructure:"take_profit_percent"`
}

type Scheduler struct {
	ScanCron string `mapstructure:"scan_cron"`
	Enabled  bool   `mapstructure:"enabled"`
}

func Load() (*Config, error) {
	// .env is optional, environment variables win either way
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

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

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("binance.base_url", "https://api.binance.com")
	viper.SetDefault("binance.timeout", 10*time.Second)
	viper.SetDefault("binance.max_request_per_minute", 60)
	viper.SetDefault("binance.quote_asset", "USDT")
	viper.SetDefault("binance.min_quote_volume", 1_000_000)

	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)

	viper.SetDefault("scanner.max_concurrency", 4)
	viper.SetDefault("scanner.timeout", 2*time.Minute)
	viper.SetDefault("scanner.default_limit", 20)
	viper.SetDefault("scanner.interval", "1d")
	viper.SetDefault("scanner.candle_limit", 250)

	viper.SetDefault("indicator.rsi_period", 14)
	viper.SetDefault("indicator.macd_fast_period", 12)
	viper.SetDefault("indicator.macd_slow_period", 26)
	viper.SetDefault("indicator.macd_signal_period", 9)
	viper.SetDefault("indicator.atr_period", 14)
	viper.SetDefault("indicator.bollinger_period", 20)
	viper.SetDefault("indicator.bollinger_multiplier", 2.0)
	viper.SetDefault("indicator.level_lookback", 100)
	viper.SetDefault("indicator.level_merge_threshold", 0.02)

	viper.SetDefault("backtest.initial_capital", 10_000)
	viper.SetDefault("backtest.position_percent", 100)
	viper.SetDefault("backtest.rsi_oversold", 30)
	viper.SetDefault("backtest.rsi_overbought", 70)
	viper.SetDefault("backtest.stop_loss_percent", 5)
	viper.SetDefault("backtest.take_profit_percent", 20)

	viper.SetDefault("scheduler.scan_cron", "0 * * * *")
	viper.SetDefault("scheduler.enabled", false)
}
