package ingesting

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/infrastructure/repository"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/pkg/utils"
)

// Ingester define a interface de ingestão de registros de gasto
type Ingester interface {
	// Ingest valida e grava o lote; retorna o resultado com o ID do lote
	Ingest(records []domain.SpendRecord, sourceFileName string) (*Result, error)
}

// Result resume um lote ingerido
type Result struct {
	BatchID        string    `json:"batch_id"`
	SourceFileName string    `json:"source_file_name,omitempty"`
	RecordCount    int       `json:"record_count"`
	LoadDate       time.Time `json:"load_date"`
}

// Service valida e grava lotes de registros de gasto. A tabela é append-only:
// cada lote entra inteiro, marcado com um ID próprio, e nada é alterado depois.
type Service struct {
	spendRepo repository.SpendRecordRepository
}

// NewService cria uma nova instância do serviço de ingestão
func NewService(spendRepo repository.SpendRecordRepository) *Service {
	return &Service{spendRepo: spendRepo}
}

// Ingest valida e grava o lote. O lote é atômico: qualquer registro inválido
// rejeita o lote inteiro antes de tocar o banco.
func (s *Service) Ingest(records []domain.SpendRecord, sourceFileName string) (*Result, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(domain.ErrInvalidInput, "lote vazio")
	}

	for i, record := range records {
		if err := validateRecord(record); err != nil {
			return nil, errors.Wrapf(err, "registro %d inválido", i)
		}
	}

	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar o ID do lote")
	}

	inserted, err := s.spendRepo.BulkInsert(records, batchID, sourceFileName)
	if err != nil {
		logrus.Error("Erro ao gravar lote de registros de gasto", map[string]any{
			"batchID":     batchID,
			"recordCount": len(records),
			"error":       err,
		})
		return nil, err
	}

	logrus.Info("Lote de registros de gasto ingerido", map[string]any{
		"batchID":     batchID,
		"recordCount": inserted,
		"sourceFile":  sourceFileName,
	})

	return &Result{
		BatchID:        batchID,
		SourceFileName: sourceFileName,
		RecordCount:    inserted,
		LoadDate:       time.Now().UTC(),
	}, nil
}

func validateRecord(record domain.SpendRecord) error {
	if record.Date.IsZero() {
		return errors.Wrap(domain.ErrInvalidInput, "data não informada")
	}
	if record.Platform == "" {
		return errors.Wrap(domain.ErrInvalidInput, "plataforma não informada")
	}
	if record.Spend.IsNegative() {
		return errors.Wrapf(domain.ErrInvalidInput, "spend negativo: %s", record.Spend)
	}
	if record.Clicks < 0 || record.Impressions < 0 || record.Conversions < 0 {
		return errors.Wrap(domain.ErrInvalidInput, "contadores não podem ser negativos")
	}
	return nil
}
