package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store unavailable")

// memoryPresencaStore applies each write atomically under a mutex, like a
// single-document conditional write in MongoDB
type memoryPresencaStore struct {
	mu      sync.Mutex
	records map[string]*models.Presenca

	// failFor makes every write for that member fail
	failFor string
	// loseRaces makes that many AppendMark calls lose to a concurrent writer
	// that marks the day with the opposite value
	loseRaces int
	// alwaysConflict makes every conditional write miss
	alwaysConflict bool

	setCalls    int
	appendCalls int
}

func newMemoryPresencaStore() *memoryPresencaStore {
	return &memoryPresencaStore{records: map[string]*models.Presenca{}}
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func (s *memoryPresencaStore) SetMark(ctx context.Context, idMembro string, start, end time.Time, presente bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++

	if idMembro == s.failFor {
		return false, errStoreDown
	}
	if s.alwaysConflict {
		return false, nil
	}
	record, ok := s.records[idMembro]
	if !ok {
		return false, nil
	}
	for i := range record.Presencas {
		if inWindow(record.Presencas[i].Data, start, end) {
			record.Presencas[i].Presente = presente
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryPresencaStore) AppendMark(ctx context.Context, idMembro, nomeMembro string, start, end time.Time, presente bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendCalls++

	if idMembro == s.failFor {
		return false, errStoreDown
	}
	if s.alwaysConflict {
		return false, nil
	}
	if s.loseRaces > 0 {
		s.loseRaces--
		s.appendLocked(idMembro, "outro escritor", start, !presente)
		return false, nil
	}

	if record, ok := s.records[idMembro]; ok {
		for _, mark := range record.Presencas {
			if inWindow(mark.Data, start, end) {
				return false, nil
			}
		}
	}
	s.appendLocked(idMembro, nomeMembro, start, presente)
	return true, nil
}

func (s *memoryPresencaStore) appendLocked(idMembro, nomeMembro string, start time.Time, presente bool) {
	record, ok := s.records[idMembro]
	if !ok {
		record = &models.Presenca{ID: primitive.NewObjectID(), IDMembro: idMembro, NomeMembro: nomeMembro}
		s.records[idMembro] = record
	}
	record.Presencas = append(record.Presencas, models.MarcacaoDiaria{Data: start, Presente: presente})
}

func (s *memoryPresencaStore) FindWithMarkBetween(ctx context.Context, start, end time.Time) ([]models.Presenca, error) {
	return s.filter(func(p *models.Presenca) bool {
		for _, mark := range p.Presencas {
			if inWindow(mark.Data, start, end) {
				return true
			}
		}
		return false
	})
}

func (s *memoryPresencaStore) FindAll(ctx context.Context) ([]models.Presenca, error) {
	return s.filter(func(*models.Presenca) bool { return true })
}

func (s *memoryPresencaStore) filter(keep func(*models.Presenca) bool) ([]models.Presenca, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failFor == "*" {
		return nil, errStoreDown
	}
	var out []models.Presenca
	for _, record := range s.records {
		if keep(record) {
			out = append(out, copyPresenca(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDMembro < out[j].IDMembro })
	return out, nil
}

func (s *memoryPresencaStore) FindByMembro(ctx context.Context, idMembro string) (*models.Presenca, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[idMembro]
	if !ok {
		return nil, nil
	}
	out := copyPresenca(record)
	return &out, nil
}

func (s *memoryPresencaStore) get(idMembro string) *models.Presenca {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[idMembro]; ok {
		out := copyPresenca(record)
		return &out
	}
	return nil
}

func copyPresenca(p *models.Presenca) models.Presenca {
	out := *p
	out.Presencas = append([]models.MarcacaoDiaria(nil), p.Presencas...)
	return out
}

// memoryMembroStore enforces the unique email index
type memoryMembroStore struct {
	mu      sync.Mutex
	membros map[primitive.ObjectID]models.Membro
	err     error
}

func newMemoryMembroStore() *memoryMembroStore {
	return &memoryMembroStore{membros: map[primitive.ObjectID]models.Membro{}}
}

func (s *memoryMembroStore) emailTakenLocked(email string, exclude primitive.ObjectID) bool {
	for id, m := range s.membros {
		if m.Email == email && id != exclude {
			return true
		}
	}
	return false
}

func (s *memoryMembroStore) Insert(ctx context.Context, membro *models.Membro) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.emailTakenLocked(membro.Email, primitive.NilObjectID) {
		return models.ErrEmailInUse
	}
	membro.ID = primitive.NewObjectID()
	s.membros[membro.ID] = *membro
	return nil
}

func (s *memoryMembroStore) FindAll(ctx context.Context) ([]models.Membro, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Membro
	for _, m := range s.membros {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (s *memoryMembroStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Membro, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	m, ok := s.membros[id]
	if !ok {
		return nil, models.ErrMembroNotFound
	}
	return &m, nil
}

func (s *memoryMembroStore) ExistsByEmail(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.emailTakenLocked(email, exclude), nil
}

func (s *memoryMembroStore) Replace(ctx context.Context, membro *models.Membro) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.membros[membro.ID]; !ok {
		return models.ErrMembroNotFound
	}
	if s.emailTakenLocked(membro.Email, membro.ID) {
		return models.ErrEmailInUse
	}
	s.membros[membro.ID] = *membro
	return nil
}

func (s *memoryMembroStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.membros[id]; !ok {
		return models.ErrMembroNotFound
	}
	delete(s.membros, id)
	return nil
}

func (s *memoryMembroStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.membros)
}

// memoryUsuarioStore enforces the unique email index
type memoryUsuarioStore struct {
	mu       sync.Mutex
	usuarios map[primitive.ObjectID]models.Usuario
}

func newMemoryUsuarioStore() *memoryUsuarioStore {
	return &memoryUsuarioStore{usuarios: map[primitive.ObjectID]models.Usuario{}}
}

func (s *memoryUsuarioStore) Insert(ctx context.Context, usuario *models.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.usuarios {
		if u.Email == usuario.Email {
			return models.ErrEmailInUse
		}
	}
	usuario.ID = primitive.NewObjectID()
	s.usuarios[usuario.ID] = *usuario
	return nil
}

func (s *memoryUsuarioStore) FindByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.usuarios {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.ErrUsuarioNotFound
}

func (s *memoryUsuarioStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usuarios[id]
	if !ok {
		return nil, models.ErrUsuarioNotFound
	}
	return &u, nil
}

func (s *memoryUsuarioStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.usuarios)), nil
}

func (s *memoryUsuarioStore) Replace(ctx context.Context, usuario *models.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usuarios[usuario.ID]; !ok {
		return models.ErrUsuarioNotFound
	}
	for id, u := range s.usuarios {
		if u.Email == usuario.Email && id != usuario.ID {
			return models.ErrEmailInUse
		}
	}
	s.usuarios[usuario.ID] = *usuario
	return nil
}

func (s *memoryUsuarioStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usuarios[id]; !ok {
		return models.ErrUsuarioNotFound
	}
	delete(s.usuarios, id)
	return nil
}
