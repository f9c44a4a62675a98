package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/storage"
)

func (s *Store) GetProfile() (models.Profile, error) {
	if s.db == nil {
		return models.Profile{}, storage.ErrNotLoaded
	}

	var p models.Profile
	err := s.db.QueryRow(`
		SELECT start_month, start_year, avg_per_day, brand, per_pack, nicotine_mg, tar_mg
		FROM profile WHERE id = 1`).Scan(
		&p.StartMonth, &p.StartYear, &p.AvgPerDay, &p.Brand, &p.PerPack, &p.NicotineMg, &p.TarMg,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, storage.ErrProfileNotSet
		}
		return models.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (s *Store) SaveProfile(p models.Profile) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	now := time.Now()
	if err := p.Validate(now); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	_, err := s.db.Exec(`
		INSERT INTO profile (id, start_month, start_year, avg_per_day, brand, per_pack, nicotine_mg, tar_mg, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_month = excluded.start_month,
			start_year = excluded.start_year,
			avg_per_day = excluded.avg_per_day,
			brand = excluded.brand,
			per_pack = excluded.per_pack,
			nicotine_mg = excluded.nicotine_mg,
			tar_mg = excluded.tar_mg,
			updated_at = excluded.updated_at`,
		p.StartMonth, p.StartYear, p.AvgPerDay, p.Brand, p.PerPack, p.NicotineMg, p.TarMg, formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
