package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/internal/observability"
	"github.com/ministerio-jovem/app-frequencia/internal/utils"
	"go.uber.org/zap"
)

// MembroLookup resolves a member by id
type MembroLookup interface {
	Buscar(ctx context.Context, id string) (*models.Membro, error)
}

// PresencaService reconciles attendance submissions into per-member records
type PresencaService struct {
	logger     *logging.SafeLogger
	store      PresencaStore
	membros    MembroLookup
	location   *time.Location
	maxRetries int
	now        func() time.Time
}

// NewPresencaService creates a new attendance service. Calendar days are
// computed in location.
func NewPresencaService(logger *logging.SafeLogger, store PresencaStore, membros MembroLookup, location *time.Location, maxRetries int) *PresencaService {
	if location == nil {
		location = time.UTC
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &PresencaService{
		logger:     logger,
		store:      store,
		membros:    membros,
		location:   location,
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

// Reconcile applies a batch of submissions in order. The whole batch is validated
// before anything is written. A storage failure stops at the failing item and
// leaves earlier items applied.
func (s *PresencaService) Reconcile(ctx context.Context, batch []models.PresencaSubmissao) error {
	ctx, span, cleanup := utils.TraceBusinessLogic(ctx, "reconcile_presencas", map[string]interface{}{
		"batch.size": len(batch),
	})
	defer cleanup()

	if err := s.validateBatch(batch); err != nil {
		return err
	}

	for i, item := range batch {
		if err := s.reconcileOne(ctx, item.IDMembro, item.NomeMembro, item.Data.Time(), *item.Presente); err != nil {
			utils.RecordErrorInSpan(span, err, map[string]interface{}{"batch.index": i})
			s.logger.Error("failed to reconcile attendance",
				zap.Int("index", i),
				zap.String("id_membro", item.IDMembro),
				zap.Error(err))
			return &models.PersistenceError{Op: "reconcile", Index: i, Err: err}
		}
	}

	s.logger.Debug("attendance batch reconciled", zap.Int("items", len(batch)))
	return nil
}

func (s *PresencaService) validateBatch(batch []models.PresencaSubmissao) error {
	var verrs models.ValidationErrors
	today := utils.StartOfDay(s.now(), s.location)

	for i, item := range batch {
		prefix := fmt.Sprintf("[%d].", i)
		if err := utils.ValidateStruct(item); err != nil {
			var itemErrs models.ValidationErrors
			if !errors.As(err, &itemErrs) {
				return err
			}
			for _, fe := range itemErrs {
				verrs.Add(prefix+fe.Field, fe.Message)
			}
			continue
		}
		if utils.StartOfDay(item.Data.Time(), s.location).After(today) {
			verrs.Add(prefix+"data", "A data da presença não pode estar no futuro.")
		}
	}

	return verrs.OrNil()
}

// reconcileOne sets the member's mark for the day of at, appending it when the
// day has no mark yet. A lost race between the two writes is retried.
func (s *PresencaService) reconcileOne(ctx context.Context, idMembro, nomeMembro string, at time.Time, presente bool) error {
	start, end := utils.DayWindow(at, s.location)

	return utils.RetryOnConflict(ctx, s.maxRetries, func() error {
		matched, err := s.store.SetMark(ctx, idMembro, start, end, presente)
		if err != nil {
			return err
		}
		if matched {
			observability.AttendanceMarks.WithLabelValues("updated").Inc()
			return nil
		}

		applied, err := s.store.AppendMark(ctx, idMembro, nomeMembro, start, end, presente)
		if err != nil {
			return err
		}
		if !applied {
			observability.ReconcileConflicts.Inc()
			return utils.ErrWriteConflict
		}
		observability.AttendanceMarks.WithLabelValues("appended").Inc()
		return nil
	})
}

// ListarHoje returns every record with a mark for the current day, with all of its marks
func (s *PresencaService) ListarHoje(ctx context.Context) ([]models.Presenca, error) {
	start, end := utils.DayWindow(s.now(), s.location)

	presencas, err := s.store.FindWithMarkBetween(ctx, start, end)
	if err != nil {
		return nil, &models.PersistenceError{Op: "listar_hoje", Index: -1, Err: err}
	}
	if presencas == nil {
		presencas = []models.Presenca{}
	}
	return presencas, nil
}

// ListarTodos returns every attendance record
func (s *PresencaService) ListarTodos(ctx context.Context) ([]models.Presenca, error) {
	presencas, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "listar_todos", Index: -1, Err: err}
	}
	if presencas == nil {
		presencas = []models.Presenca{}
	}
	return presencas, nil
}

// MarcarPresencaMembro marks a registered member for the current day and returns
// the updated record
func (s *PresencaService) MarcarPresencaMembro(ctx context.Context, id string, presente bool) (*models.Presenca, error) {
	membro, err := s.membros.Buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.reconcileOne(ctx, id, membro.Nome, s.now(), presente); err != nil {
		return nil, &models.PersistenceError{Op: "marcar_presenca", Index: -1, Err: err}
	}

	presenca, err := s.store.FindByMembro(ctx, id)
	if err != nil {
		return nil, &models.PersistenceError{Op: "marcar_presenca", Index: -1, Err: err}
	}
	return presenca, nil
}
