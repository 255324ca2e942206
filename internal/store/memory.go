package store

import (
	"context"
	"sort"
	"sync"

	"github.com/yourorg/turnero/internal/models"
)

var _ Store = (*InMemory)(nil)

// InMemory guarda personas en memoria, para desarrollo local y tests.
type InMemory struct {
	mu       sync.RWMutex
	nextID   int64
	personas map[int64]models.Persona
	dniIdx   map[string]int64
}

// NewInMemory creates an empty in-memory persona store.
func NewInMemory() *InMemory {
	return &InMemory{
		personas: make(map[int64]models.Persona),
		dniIdx:   make(map[string]int64),
	}
}

func (s *InMemory) List(_ context.Context) ([]models.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	personas := make([]models.Persona, 0, len(s.personas))
	for _, p := range s.personas {
		personas = append(personas, p)
	}
	sort.Slice(personas, func(i, j int) bool {
		if personas[i].HoraEntrada != personas[j].HoraEntrada {
			return personas[i].HoraEntrada > personas[j].HoraEntrada
		}
		return personas[i].ID > personas[j].ID
	})
	return personas, nil
}

func (s *InMemory) Create(_ context.Context, p models.Persona) (models.Persona, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.dniIdx[p.DNI]; exists {
		return models.Persona{}, ErrDuplicateDNI
	}
	s.nextID++
	p.ID = s.nextID
	p.Terminado = 0
	s.personas[p.ID] = p
	s.dniIdx[p.DNI] = p.ID
	return p, nil
}

func (s *InMemory) Finish(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.personas[id]
	if !ok {
		return ErrNotFound
	}
	p.Terminado = 1
	s.personas[id] = p
	return nil
}

func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.personas[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.personas, id)
	delete(s.dniIdx, p.DNI)
	return nil
}

func (s *InMemory) Stats(_ context.Context) (models.PersonaStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.PersonaStats{PorAtencion: map[string]int{}}
	for _, p := range s.personas {
		stats.Total++
		if p.Terminado == 1 {
			stats.Terminados++
		} else {
			stats.EnEspera++
		}
		key := models.SinAtencion
		if p.Atencion != nil && *p.Atencion != "" {
			key = *p.Atencion
		}
		stats.PorAtencion[key]++
	}
	return stats, nil
}

func (s *InMemory) Ping(_ context.Context) error {
	return nil
}
