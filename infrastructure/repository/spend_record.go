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
	spendRecordsTable = "raw_ads_spend"
)

// Colunas de dimensão aceitas como filtro de igualdade. Filtros fora desta
// lista nunca chegam ao SQL.
var filterableColumns = map[string]bool{
	domain.DimensionPlatform: true,
	domain.DimensionAccount:  true,
	domain.DimensionCampaign: true,
	domain.DimensionCountry:  true,
	domain.DimensionDevice:   true,
}

type SpendRecordRepository interface {
	FetchByDateRange(startDate, endDate time.Time, filters map[string]string) ([]domain.SpendRecord, error)
	BulkInsert(records []domain.SpendRecord, batchID, sourceFileName string) (int, error)
}

type spendRecordRepository struct {
	conn *postgres.Connection
}

func NewSpendRecordRepository(conn *postgres.Connection) SpendRecordRepository {
	return &spendRecordRepository{
		conn: conn,
	}
}

// FetchByDateRange busca os registros de gasto no intervalo inclusivo de
// datas, aplicando filtros de igualdade por dimensão
func (r *spendRecordRepository) FetchByDateRange(startDate, endDate time.Time, filters map[string]string) ([]domain.SpendRecord, error) {
	builder := squirrel.
		Select("date, platform, account, campaign, country, device, spend, clicks, impressions, conversions, batch_id, source_file_name, load_date").
		From(spendRecordsTable).
		Where(squirrel.GtOrEq{"date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"date": endDate.Format(time.DateOnly)})

	for field, value := range filters {
		if !filterableColumns[field] {
			return nil, fmt.Errorf("filtro por campo não permitido: %q", field)
		}
		builder = builder.Where(squirrel.Eq{field: value})
	}

	query, args, err := builder.
		OrderBy("date ASC, platform, account, campaign").
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

	records := make([]domain.SpendRecord, 0)
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de gasto: %w", err)
		}
		records = append(records, *record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// BulkInsert insere os registros validados marcados com o lote informado.
// A tabela é append-only: registros nunca são atualizados ou removidos aqui.
func (r *spendRecordRepository) BulkInsert(records []domain.SpendRecord, batchID, sourceFileName string) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	builder := squirrel.StatementBuilder.
		Insert(spendRecordsTable).
		Columns("date", "platform", "account", "campaign", "country", "device",
			"spend", "clicks", "impressions", "conversions",
			"batch_id", "source_file_name", "load_date")

	loadDate := time.Now()
	for _, record := range records {
		builder = builder.Values(
			record.Date.Format(time.DateOnly),
			record.Platform,
			record.Account,
			record.Campaign,
			record.Country,
			record.Device,
			record.Spend.String(),
			record.Clicks,
			record.Impressions,
			record.Conversions,
			batchID,
			sourceFileName,
			loadDate,
		)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return int(inserted), nil
}

func (r *spendRecordRepository) scanRecord(rows *sql.Rows) (*domain.SpendRecord, error) {
	record := &domain.SpendRecord{}
	var spendStr string
	var batchID, sourceFileName sql.NullString
	var loadDate sql.NullTime

	err := rows.Scan(
		&record.Date,
		&record.Platform,
		&record.Account,
		&record.Campaign,
		&record.Country,
		&record.Device,
		&spendStr,
		&record.Clicks,
		&record.Impressions,
		&record.Conversions,
		&batchID,
		&sourceFileName,
		&loadDate,
	)
	if err != nil {
		return nil, err
	}

	spend, err := decimal.NewFromString(spendStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter spend: %w", err)
	}
	record.Spend = spend

	record.BatchID = batchID.String
	record.SourceFileName = sourceFileName.String
	if loadDate.Valid {
		record.LoadDate = loadDate.Time
	}

	return record, nil
}
