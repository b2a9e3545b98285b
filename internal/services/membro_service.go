package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/internal/observability"
	"github.com/ministerio-jovem/app-frequencia/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MembroService handles the member directory
type MembroService struct {
	logger *logging.SafeLogger
	store  MembroStore
}

// NewMembroService creates a new member service
func NewMembroService(logger *logging.SafeLogger, store MembroStore) *MembroService {
	return &MembroService{
		logger: logger,
		store:  store,
	}
}

// Criar validates and stores a new member
func (s *MembroService) Criar(ctx context.Context, in models.MembroInput) (*models.Membro, error) {
	normalizeMembroInput(&in)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsByEmail(ctx, in.Email, primitive.NilObjectID)
	if err != nil {
		return nil, &models.PersistenceError{Op: "criar_membro", Index: -1, Err: err}
	}
	if exists {
		return nil, models.ErrEmailInUse
	}

	membro := in.ToMembro()
	if err := s.store.Insert(ctx, membro); err != nil {
		return nil, storeError("criar_membro", err)
	}

	s.logger.Info("membro created",
		zap.String("id", membro.ID.Hex()),
		zap.String("email", observability.MaskEmail(membro.Email)))
	return membro, nil
}

// Listar returns every member ordered by name
func (s *MembroService) Listar(ctx context.Context) ([]models.Membro, error) {
	membros, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "listar_membros", Index: -1, Err: err}
	}
	if membros == nil {
		membros = []models.Membro{}
	}
	return membros, nil
}

// Buscar returns a member by id. Ids that are not valid ObjectIDs are reported as not found.
func (s *MembroService) Buscar(ctx context.Context, id string) (*models.Membro, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrMembroNotFound
	}

	membro, err := s.store.FindByID(ctx, objectID)
	if err != nil {
		return nil, storeError("buscar_membro", err)
	}
	return membro, nil
}

// Atualizar merges patch onto the stored member, validates the merged document
// and replaces it. Fields absent from patch keep their stored values.
func (s *MembroService) Atualizar(ctx context.Context, id string, patch json.RawMessage) (*models.Membro, error) {
	existing, err := s.Buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	in := models.MembroInputFrom(existing)
	if err := json.Unmarshal(patch, &in); err != nil {
		var verrs models.ValidationErrors
		verrs.Add("body", "Formato inválido: "+err.Error())
		return nil, verrs
	}

	normalizeMembroInput(&in)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	if in.Email != existing.Email {
		exists, err := s.store.ExistsByEmail(ctx, in.Email, existing.ID)
		if err != nil {
			return nil, &models.PersistenceError{Op: "atualizar_membro", Index: -1, Err: err}
		}
		if exists {
			return nil, models.ErrEmailInUse
		}
	}

	membro := in.ToMembro()
	membro.ID = existing.ID
	if err := s.store.Replace(ctx, membro); err != nil {
		return nil, storeError("atualizar_membro", err)
	}

	s.logger.Info("membro updated", zap.String("id", id))
	return membro, nil
}

// Excluir deletes a member. Attendance records are kept.
func (s *MembroService) Excluir(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrMembroNotFound
	}

	if err := s.store.Delete(ctx, objectID); err != nil {
		return storeError("excluir_membro", err)
	}

	s.logger.Info("membro deleted", zap.String("id", id))
	return nil
}

func normalizeMembroInput(in *models.MembroInput) {
	in.Nome = strings.TrimSpace(in.Nome)
	in.Email = normalizeEmail(in.Email)
	in.Projeto = strings.ToLower(strings.TrimSpace(in.Projeto))
	in.TipoMembro = strings.ToLower(strings.TrimSpace(in.TipoMembro))
	if formatted, err := utils.FormatTelefone(in.Telefone); err == nil {
		in.Telefone = formatted
	}
	if in.Endereco != nil {
		in.Endereco.Estado = strings.ToUpper(strings.TrimSpace(in.Endereco.Estado))
		in.Endereco.CEP = strings.TrimSpace(in.Endereco.CEP)
	}
}

// storeError passes domain errors through and wraps everything else as a persistence failure
func storeError(op string, err error) error {
	if isDomainError(err) {
		return err
	}
	return &models.PersistenceError{Op: op, Index: -1, Err: err}
}
