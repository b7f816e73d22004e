package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Analytics       Analytics       `mapstructure:",squash"`
	NLQ             NLQ             `mapstructure:",squash"`
	KPISnapshotSync KPISnapshotSync `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Analytics controla a semântica dos KPIs calculados
type Analytics struct {
	// Fator de receita atribuída por conversão
	RevenuePerConversion float64 `mapstructure:"revenue_per_conversion"`
	// Variação percentual (em módulo) abaixo da qual a tendência é estável
	TrendThresholdEps float64 `mapstructure:"trend_threshold_eps"`
}

// NLQ configura o vocabulário e os padrões do resolvedor de perguntas
type NLQ struct {
	Platforms        []string `mapstructure:"nlq_platforms"`
	Countries        []string `mapstructure:"nlq_countries"`
	DefaultRangeDays int      `mapstructure:"nlq_default_range_days"`
}

// KPISnapshotSync configura o job de materialização da tabela kpi_metrics
type KPISnapshotSync struct {
	CronSchedule  string `mapstructure:"kpi_snapshot_sync_cron"`
	LookbackDays  int    `mapstructure:"kpi_snapshot_sync_lookback_days"`
	RetentionDays int    `mapstructure:"kpi_snapshot_sync_retention_days"`
	Enabled       bool   `mapstructure:"kpi_snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_analytics")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REVENUE_PER_CONVERSION", 100.0)
	viper.SetDefault("TREND_THRESHOLD_EPS", 0.01)

	viper.SetDefault("NLQ_PLATFORMS", "Meta,Google,TikTok")
	viper.SetDefault("NLQ_COUNTRIES", "US,CA,BR,MX")
	viper.SetDefault("NLQ_DEFAULT_RANGE_DAYS", 30)

	// Defaults para materialização de snapshots de KPI
	viper.SetDefault("KPI_SNAPSHOT_SYNC_CRON", "0 3 * * *")       // Todos os dias às 3h da manhã
	viper.SetDefault("KPI_SNAPSHOT_SYNC_LOOKBACK_DAYS", 7)        // 7 dias para reprocessar
	viper.SetDefault("KPI_SNAPSHOT_SYNC_RETENTION_DAYS", 365)     // 1 ano de retenção
	viper.SetDefault("KPI_SNAPSHOT_SYNC_ENABLED", false)          // Habilitar materialização

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
