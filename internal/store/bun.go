package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/uptrace/bun"

	"bloomviewer/internal/models"
	"bloomviewer/internal/validation"
)

const locationSequence = "locations"

type locationRow struct {
	bun.BaseModel `bun:"table:bloom_locations,alias:bl"`

	ID           int64   `bun:"id,pk"`
	SpeciesID    int64   `bun:"species_id,notnull"`
	LocationName string  `bun:"location_name,notnull"`
	Longitude    float64 `bun:"longitude,notnull"`
	Latitude     float64 `bun:"latitude,notnull"`
	BloomStart   string  `bun:"bloom_start,notnull"`
	BloomPeak    string  `bun:"bloom_peak,notnull"`
	BloomEnd     string  `bun:"bloom_end,notnull"`
}

// sequenceRow keeps the highest id ever handed out so deleted ids stay retired.
type sequenceRow struct {
	bun.BaseModel `bun:"table:bloom_sequences,alias:bs"`

	Name   string `bun:"name,pk"`
	LastID int64  `bun:"last_id,notnull"`
}

func toRow(l models.Location) *locationRow {
	return &locationRow{
		ID:           l.ID,
		SpeciesID:    l.SpeciesID,
		LocationName: l.LocationName,
		Longitude:    l.Coordinates.Lon(),
		Latitude:     l.Coordinates.Lat(),
		BloomStart:   l.BloomingPeriod.Start,
		BloomPeak:    l.BloomingPeriod.Peak,
		BloomEnd:     l.BloomingPeriod.End,
	}
}

func (r *locationRow) toModel() models.Location {
	return models.Location{
		ID:           r.ID,
		SpeciesID:    r.SpeciesID,
		LocationName: r.LocationName,
		Coordinates:  models.Coordinates{r.Longitude, r.Latitude},
		BloomingPeriod: models.BloomingPeriod{
			Start: r.BloomStart,
			Peak:  r.BloomPeak,
			End:   r.BloomEnd,
		},
	}
}

// BunStore persists locations through bun (Postgres or SQLite). Ids follow the
// same rules as MemoryStore; the high-water mark lives in bloom_sequences.
type BunStore struct {
	db *bun.DB
	mu sync.Mutex
}

// NewBunStore creates the tables if needed and inserts seed when the
// location table is empty.
func NewBunStore(ctx context.Context, db *bun.DB, seed []models.Location) (*BunStore, error) {
	s := &BunStore{db: db}

	for _, model := range []any{(*locationRow)(nil), (*sequenceRow)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return nil, fmt.Errorf("create table: %w", err)
		}
	}

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		n, err := tx.NewSelect().Model((*locationRow)(nil)).Count(ctx)
		if err != nil {
			return fmt.Errorf("count locations: %w", err)
		}
		if n == 0 && len(seed) > 0 {
			rows := make([]*locationRow, 0, len(seed))
			for _, l := range seed {
				rows = append(rows, toRow(l))
			}
			if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
				return fmt.Errorf("insert seed: %w", err)
			}
		}

		var maxID int64
		if err := tx.NewSelect().Model((*locationRow)(nil)).ColumnExpr("COALESCE(MAX(id), 0)").Scan(ctx, &maxID); err != nil {
			return fmt.Errorf("max location id: %w", err)
		}
		if maxID < highestID(seed) {
			maxID = highestID(seed)
		}

		seq := &sequenceRow{Name: locationSequence}
		err = tx.NewSelect().Model(seq).WherePK().Scan(ctx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			seq.LastID = maxID
			if _, err := tx.NewInsert().Model(seq).Exec(ctx); err != nil {
				return fmt.Errorf("init sequence: %w", err)
			}
		case err != nil:
			return fmt.Errorf("load sequence: %w", err)
		case seq.LastID < maxID:
			seq.LastID = maxID
			if _, err := tx.NewUpdate().Model(seq).WherePK().Exec(ctx); err != nil {
				return fmt.Errorf("bump sequence: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BunStore) Create(ctx context.Context, p validation.Payload) (models.Location, error) {
	loc, err := validation.Validate(p)
	if err != nil {
		return models.Location{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		seq := &sequenceRow{Name: locationSequence}
		if err := tx.NewSelect().Model(seq).WherePK().Scan(ctx); err != nil {
			return fmt.Errorf("load sequence: %w", err)
		}
		seq.LastID++
		loc.ID = seq.LastID

		if _, err := tx.NewInsert().Model(toRow(loc)).Exec(ctx); err != nil {
			return fmt.Errorf("insert location: %w", err)
		}
		if _, err := tx.NewUpdate().Model(seq).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("advance sequence: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Location{}, err
	}
	return loc, nil
}

func (s *BunStore) List(ctx context.Context, speciesID *int64) ([]models.Location, error) {
	var rows []locationRow
	q := s.db.NewSelect().Model(&rows).Order("id ASC")
	if speciesID != nil {
		q = q.Where("species_id = ?", *speciesID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	out := make([]models.Location, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (s *BunStore) Get(ctx context.Context, id int64) (models.Location, error) {
	row, err := s.find(ctx, s.db, id)
	if err != nil {
		return models.Location{}, err
	}
	return row.toModel(), nil
}

func (s *BunStore) Update(ctx context.Context, id int64, patch validation.Payload) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated models.Location
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}
		merged, err := validation.Validate(validation.Merge(row.toModel(), patch))
		if err != nil {
			return err
		}
		merged.ID = id
		if _, err := tx.NewUpdate().Model(toRow(merged)).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("update location %d: %w", id, err)
		}
		updated = merged
		return nil
	})
	if err != nil {
		return models.Location{}, err
	}
	return updated, nil
}

func (s *BunStore) Delete(ctx context.Context, id int64) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed models.Location
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model(row).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("delete location %d: %w", id, err)
		}
		removed = row.toModel()
		return nil
	})
	if err != nil {
		return models.Location{}, err
	}
	return removed, nil
}

func (s *BunStore) Count(ctx context.Context) (int, error) {
	n, err := s.db.NewSelect().Model((*locationRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}

func (s *BunStore) find(ctx context.Context, db bun.IDB, id int64) (*locationRow, error) {
	row := new(locationRow)
	err := db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("location %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find location %d: %w", id, err)
	}
	return row, nil
}
