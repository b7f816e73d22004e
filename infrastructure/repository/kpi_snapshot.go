package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/ads-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

const (
	kpiMetricsTable = "kpi_metrics"
)

type KPISnapshotRepository interface {
	SaveOrUpdate(snapshot *domain.KPISnapshot) error
	GetByDateRange(startDate, endDate time.Time) ([]*domain.KPISnapshot, error)
	DeleteOlderThan(days int) (int64, error)
}

type kpiSnapshotRepository struct {
	conn *postgres.Connection
}

func NewKPISnapshotRepository(conn *postgres.Connection) KPISnapshotRepository {
	return &kpiSnapshotRepository{
		conn: conn,
	}
}

// SaveOrUpdate grava a linha materializada, substituindo a existente para a
// mesma combinação de data e dimensões
func (r *kpiSnapshotRepository) SaveOrUpdate(snapshot *domain.KPISnapshot) error {
	query := squirrel.StatementBuilder.
		Insert(kpiMetricsTable).
		Columns("date", "platform", "account", "campaign", "country", "device",
			"total_spend", "total_conversions", "revenue", "cac", "roas").
		Values(
			snapshot.Date.Format(time.DateOnly),
			snapshot.Platform,
			snapshot.Account,
			snapshot.Campaign,
			snapshot.Country,
			snapshot.Device,
			snapshot.TotalSpend.String(),
			snapshot.TotalConversions,
			snapshot.Revenue.String(),
			metricToNullString(snapshot.CAC),
			metricToNullString(snapshot.ROAS),
		).
		Suffix(`
			ON CONFLICT (date, platform, account, campaign, country, device) DO UPDATE SET
				total_spend = EXCLUDED.total_spend,
				total_conversions = EXCLUDED.total_conversions,
				revenue = EXCLUDED.revenue,
				cac = EXCLUDED.cac,
				roas = EXCLUDED.roas,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *kpiSnapshotRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.KPISnapshot, error) {
	query, args, err := squirrel.
		Select("date, platform, account, campaign, country, device, total_spend, total_conversions, revenue, cac, roas, created_at, updated_at").
		From(kpiMetricsTable).
		Where(squirrel.GtOrEq{"date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"date": endDate.Format(time.DateOnly)}).
		OrderBy("date DESC, platform, account").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.KPISnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot de KPI: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *kpiSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete(kpiMetricsTable).
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *kpiSnapshotRepository) scanSnapshot(rows *sql.Rows) (*domain.KPISnapshot, error) {
	snapshot := &domain.KPISnapshot{}
	var totalSpendStr, revenueStr string
	var cacStr, roasStr sql.NullString

	err := rows.Scan(
		&snapshot.Date,
		&snapshot.Platform,
		&snapshot.Account,
		&snapshot.Campaign,
		&snapshot.Country,
		&snapshot.Device,
		&totalSpendStr,
		&snapshot.TotalConversions,
		&revenueStr,
		&cacStr,
		&roasStr,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	totalSpend, err := decimal.NewFromString(totalSpendStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter total_spend: %w", err)
	}
	snapshot.TotalSpend = totalSpend

	revenue, err := decimal.NewFromString(revenueStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter revenue: %w", err)
	}
	snapshot.Revenue = revenue

	if snapshot.CAC, err = nullStringToMetric(cacStr); err != nil {
		return nil, fmt.Errorf("erro ao converter cac: %w", err)
	}

	if snapshot.ROAS, err = nullStringToMetric(roasStr); err != nil {
		return nil, fmt.Errorf("erro ao converter roas: %w", err)
	}

	return snapshot, nil
}

// metricToNullString converte a métrica opcional para NULL quando ausente,
// preservando a distinção entre "sem dados" e zero no banco
func metricToNullString(m domain.Metric) sql.NullString {
	if !m.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: m.Decimal.String(), Valid: true}
}

func nullStringToMetric(ns sql.NullString) (domain.Metric, error) {
	if !ns.Valid {
		return domain.AbsentMetric(), nil
	}

	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return domain.AbsentMetric(), err
	}

	return domain.NewMetric(d), nil
}
