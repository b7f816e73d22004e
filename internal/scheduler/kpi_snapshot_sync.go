package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/aggregating"
)

// Chave completa usada na materialização: uma linha por combinação
// data/plataforma/conta/campanha/país/dispositivo
var snapshotDimensionKey = domain.DimensionKey{
	domain.DimensionDate,
	domain.DimensionPlatform,
	domain.DimensionAccount,
	domain.DimensionCampaign,
	domain.DimensionCountry,
	domain.DimensionDevice,
}

// KPISnapshotSyncConfig representa a configuração do agendador de snapshots de KPI
type KPISnapshotSyncConfig struct {
	CronSchedule  string
	LookbackDays  int
	RetentionDays int
	SyncEnabled   bool
}

// KPISnapshotSyncService gerencia o agendamento e execução da materialização
// da tabela kpi_metrics a partir dos registros brutos de gasto
type KPISnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              KPISnapshotSyncConfig
	aggregator          aggregating.Aggregator
	snapshotRepo        repository.KPISnapshotRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewKPISnapshotSyncService cria uma nova instância do serviço de materialização de KPIs
func NewKPISnapshotSyncService(
	aggregator aggregating.Aggregator,
	snapshotRepo repository.KPISnapshotRepository,
	appConfig *config.Config,
) *KPISnapshotSyncService {
	// Criar a configuração com base na config global
	syncConfig := KPISnapshotSyncConfig{
		CronSchedule:  appConfig.KPISnapshotSync.CronSchedule,
		LookbackDays:  appConfig.KPISnapshotSync.LookbackDays,
		RetentionDays: appConfig.KPISnapshotSync.RetentionDays,
		SyncEnabled:   appConfig.KPISnapshotSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"lookback_days":  syncConfig.LookbackDays,
		"retention_days": syncConfig.RetentionDays,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots de KPI carregada")

	return &KPISnapshotSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		aggregator:   aggregator,
		snapshotRepo: snapshotRepo,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *KPISnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Materialização de snapshots de KPI desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots de KPI")

	// Agendar a materialização
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSnapshots()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar materialização de snapshots de KPI: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots de KPI")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSnapshots materializa os snapshots da janela de reprocessamento e aplica
// a política de retenção
func (s *KPISnapshotSyncService) syncSnapshots() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Materialização de snapshots de KPI já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	endDate := time.Now().AddDate(0, 0, -1) // Até ontem: o dia corrente ainda está aberto
	startDate := endDate.AddDate(0, 0, -(s.config.LookbackDays - 1))

	logrus.WithFields(logrus.Fields{
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
	}).Info("Iniciando materialização de snapshots de KPI")

	saved, err := s.processSnapshots(startDate, endDate)
	if err != nil {
		logrus.WithError(err).Error("Erro ao materializar snapshots de KPI")
		return
	}

	s.applyRetention()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"snapshots": saved,
		"days":      s.config.LookbackDays,
	}).Info("Materialização de snapshots de KPI concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// processSnapshots agrega a janela pelo conjunto completo de dimensões e grava
// uma linha por combinação; retorna quantos snapshots foram gravados
func (s *KPISnapshotSyncService) processSnapshots(startDate, endDate time.Time) (int, error) {
	rows, err := s.aggregator.AggregateFromStore(startDate, endDate, snapshotDimensionKey, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao agregar registros para snapshots: %w", err)
	}

	saved := 0
	for i := range rows {
		snapshot, err := snapshotFromRow(&rows[i])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   rows[i].KeyString(),
				"error": err.Error(),
			}).Error("Erro ao montar snapshot de KPI, pulando linha")
			continue
		}

		if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
			logrus.WithFields(logrus.Fields{
				"date":  snapshot.Date.Format(time.DateOnly),
				"error": err.Error(),
			}).Error("Erro ao gravar snapshot de KPI, pulando linha")
			continue
		}
		saved++
	}

	return saved, nil
}

func (s *KPISnapshotSyncService) applyRetention() {
	if s.config.RetentionDays <= 0 {
		return
	}

	deleted, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao aplicar retenção de snapshots de KPI")
		return
	}

	if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": s.config.RetentionDays,
		}).Info("Snapshots de KPI antigos removidos")
	}
}

// snapshotFromRow converte uma linha agregada pela chave completa em snapshot
func snapshotFromRow(row *domain.AggregateRow) (*domain.KPISnapshot, error) {
	snapshot := &domain.KPISnapshot{
		TotalSpend:       row.TotalSpend,
		TotalConversions: row.TotalConversions,
		Revenue:          row.Revenue,
		CAC:              row.CAC,
		ROAS:             row.ROAS,
	}

	for _, dv := range row.Dimensions {
		switch dv.Field {
		case domain.DimensionDate:
			date, err := time.Parse(time.DateOnly, dv.Value)
			if err != nil {
				return nil, fmt.Errorf("data inválida na chave do snapshot: %w", err)
			}
			snapshot.Date = date
		case domain.DimensionPlatform:
			snapshot.Platform = dv.Value
		case domain.DimensionAccount:
			snapshot.Account = dv.Value
		case domain.DimensionCampaign:
			snapshot.Campaign = dv.Value
		case domain.DimensionCountry:
			snapshot.Country = dv.Value
		case domain.DimensionDevice:
			snapshot.Device = dv.Value
		}
	}

	return snapshot, nil
}

// TriggerManualSync inicia manualmente a materialização de snapshots de KPI
func (s *KPISnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Materialização de snapshots de KPI já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando materialização manual de snapshots de KPI")
	go s.syncSnapshots()
}

// GetStatus retorna o status atual do agendador
func (s *KPISnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"retention_days":         s.config.RetentionDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
