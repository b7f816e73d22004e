package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository"
	"github.com/vfg2006/ads-analytics-api/internal/api"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"github.com/vfg2006/ads-analytics-api/internal/scheduler"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/ingesting"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/kpi"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/resolving"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/templating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	spendRecordRepo := repository.NewSpendRecordRepository(pgConn)
	kpiSnapshotRepo := repository.NewKPISnapshotRepository(pgConn)

	calculator := kpi.NewCalculator(decimal.NewFromFloat(cfg.Analytics.RevenuePerConversion))

	aggregatorService := aggregating.NewService(calculator, spendRecordRepo)
	comparatorService := comparing.NewService(
		aggregatorService,
		decimal.NewFromFloat(cfg.Analytics.TrendThresholdEps),
	)

	registry := templating.NewRegistry()
	resolver := resolving.NewService(registry, cfg.NLQ)

	ingestService := ingesting.NewService(spendRecordRepo)

	// Inicializa o agendador de materialização de KPIs
	kpiSnapshotSyncService := scheduler.NewKPISnapshotSyncService(
		aggregatorService,
		kpiSnapshotRepo,
		cfg,
	)

	// Inicia o agendador em background
	if err := kpiSnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots de KPI")
	} else {
		logrus.Info("Agendador de snapshots de KPI iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		aggregatorService,
		comparatorService,
		registry,
		resolver,
		ingestService,
		kpiSnapshotRepo,
		kpiSnapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
