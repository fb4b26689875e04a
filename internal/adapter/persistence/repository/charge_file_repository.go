package repository

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"forneiro_pix/internal/domain/entities"
	"forneiro_pix/internal/usecase/interfaces"
)

const defaultChargesFile = "data/charges.json"

// ChargeFileRepository persists charges as a single JSON object keyed by charge
// id, read and rewritten wholesale on every upsert. The mutex serializes
// in-process writers; across sources the last fetched status wins.
type ChargeFileRepository struct {
	mu   sync.Mutex
	path string
}

var _ interfaces.IChargeRepository = (*ChargeFileRepository)(nil)

func NewChargeFileRepository(path string) *ChargeFileRepository {
	if path == "" {
		path = getenvDefault("CHARGES_FILE", defaultChargesFile)
	}
	return &ChargeFileRepository{path: path}
}

func (r *ChargeFileRepository) Upsert(ctx context.Context, id string, patch entities.ChargePatch) (entities.Charge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	charges := r.readAll()
	now := time.Now().UTC()

	c, ok := charges[id]
	if !ok {
		c = entities.Charge{ID: id, Status: entities.ChargeStatusPending, CreatedAt: now}
	}
	c.Apply(patch)
	c.UpdatedAt = now
	charges[id] = c

	if err := r.writeAll(charges); err != nil {
		return c, err
	}
	return c, nil
}

func (r *ChargeFileRepository) GetByID(ctx context.Context, id string) (entities.Charge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readAll()[id], nil
}

func (r *ChargeFileRepository) readAll() map[string]entities.Charge {
	charges := map[string]entities.Charge{}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[pix][store] read failed path=%s err=%v", r.path, err)
		}
		return charges
	}
	if err := json.Unmarshal(raw, &charges); err != nil {
		// A corrupt store must not take payments down; start over and log loudly.
		log.Printf("[pix][store] corrupt store file, starting empty path=%s err=%v", r.path, err)
		return map[string]entities.Charge{}
	}
	return charges
}

func (r *ChargeFileRepository) writeAll(charges map[string]entities.Charge) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(charges, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}
