package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpendRecord é uma linha validada de gasto de anúncios, imutável após a
// ingestão (append-only, marcada por lote)
type SpendRecord struct {
	Date        time.Time       `json:"date"`
	Platform    string          `json:"platform"`
	Account     string          `json:"account"`
	Campaign    string          `json:"campaign"`
	Country     string          `json:"country"`
	Device      string          `json:"device"`
	Spend       decimal.Decimal `json:"spend"`
	Clicks      int64           `json:"clicks"`
	Impressions int64           `json:"impressions"`
	Conversions int64           `json:"conversions"`

	// Metadados de ingestão
	BatchID        string    `json:"batch_id,omitempty"`
	SourceFileName string    `json:"source_file_name,omitempty"`
	LoadDate       time.Time `json:"load_date,omitempty"`
}

// DateRange é um intervalo de datas inclusivo nas duas pontas
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Days retorna o número de dias cobertos pelo intervalo
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Previous retorna o intervalo de mesmo tamanho imediatamente anterior
func (r DateRange) Previous() DateRange {
	days := r.Days()
	return DateRange{
		Start: r.Start.AddDate(0, 0, -days),
		End:   r.Start.AddDate(0, 0, -1),
	}
}
