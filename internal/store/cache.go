// Package store provides a SQLite-backed cache for the prepared dataset.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/threeasure/fomodash/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache stores prepared datasets keyed by source path + file identity, so a
// rerun over an unchanged survey file skips the preprocessing pipeline.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveDataset replaces the cached dataset for its source file. synonymsFP is
// the fingerprint of the synonym map the dataset was prepared with; it is
// part of the cache identity.
func (c *Cache) SaveDataset(ds *model.Dataset, mtimeNs, sizeBytes int64, synonymsFP string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM records WHERE source_path = ?", ds.Source); err != nil {
		return err
	}

	features := make([]string, 0, len(ds.Features))
	for _, f := range ds.Features.List() {
		features = append(features, string(f))
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO dataset_meta
		(source_path, mtime_ns, size_bytes, synonyms_fp, cell_errors, features, prepared_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ds.Source, mtimeNs, sizeBytes, synonymsFP, ds.CellErrors,
		strings.Join(features, ","), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO records
		(source_path, idx, ts, faculty, program, allowance, fomo_spend,
		 finance_skill, fomo_spend_freq, fomo_activity_freq, emotion_impact,
		 finance_stress_freq, motivation_loss_freq, fomo_stress_freq,
		 feels_fomo_often, psych_score, support_need, support_score,
		 day_of_week, hour_of_day, week_bucket, expense_ratio,
		 remaining_allowance, ratio_bucket, finance_bucket, fomo_category,
		 relative_fomo, stress_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range ds.Records {
		var ts any
		if r.Timestamp != nil {
			ts = r.Timestamp.UTC().Format(time.RFC3339)
		}
		_, err := stmt.Exec(
			ds.Source, i, ts, r.Faculty, r.Program,
			nullF(r.Allowance), nullF(r.FomoSpend), nullF(r.FinanceSkill),
			nullF(r.FomoSpendFreq), nullF(r.FomoActivityFreq), nullF(r.EmotionImpact),
			nullF(r.FinanceStressFreq), nullF(r.MotivationLossFreq), nullF(r.FomoStressFreq),
			r.FeelsFomoOften, nullF(r.PsychScore), r.SupportNeed, nullF(r.SupportScore),
			r.DayOfWeek, nullI(r.HourOfDay), r.WeekBucket,
			nullF(r.ExpenseRatio), nullF(r.RemainingAllowance),
			r.RatioBucket, r.FinanceBucket, r.FomoCategory,
			nullF(r.RelativeFomoScore), nullF(r.StressIndex),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadDataset returns the cached dataset for a source file, or ok=false when
// the cache has no entry matching the file's current mtime and size and the
// synonym-map fingerprint the caller would prepare with.
func (c *Cache) LoadDataset(sourcePath string, mtimeNs, sizeBytes int64, synonymsFP string) (*model.Dataset, bool, error) {
	var cachedMtime, cachedSize int64
	var cachedFP string
	var cellErrors int
	var features string
	err := c.db.QueryRow(
		"SELECT mtime_ns, size_bytes, synonyms_fp, cell_errors, features FROM dataset_meta WHERE source_path = ?",
		sourcePath,
	).Scan(&cachedMtime, &cachedSize, &cachedFP, &cellErrors, &features)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if cachedMtime != mtimeNs || cachedSize != sizeBytes || cachedFP != synonymsFP {
		return nil, false, nil
	}

	ds := &model.Dataset{
		Source:     sourcePath,
		CellErrors: cellErrors,
		Features:   model.FeatureSet{},
	}
	for _, f := range strings.Split(features, ",") {
		if f != "" {
			ds.Features[model.Feature(f)] = true
		}
	}

	rows, err := c.db.Query(`SELECT
		ts, faculty, program, allowance, fomo_spend, finance_skill,
		fomo_spend_freq, fomo_activity_freq, emotion_impact,
		finance_stress_freq, motivation_loss_freq, fomo_stress_freq,
		feels_fomo_often, psych_score, support_need, support_score,
		day_of_week, hour_of_day, week_bucket, expense_ratio,
		remaining_allowance, ratio_bucket, finance_bucket, fomo_category,
		relative_fomo, stress_index
		FROM records WHERE source_path = ? ORDER BY idx`, sourcePath)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r model.Record
		var ts sql.NullString
		var hour sql.NullInt64
		var allowance, fomoSpend, financeSkill, spendFreq, actFreq sql.NullFloat64
		var emotion, finStress, motivation, fomoStress sql.NullFloat64
		var psych, support, ratio, remaining, relFomo, stress sql.NullFloat64

		err := rows.Scan(
			&ts, &r.Faculty, &r.Program, &allowance, &fomoSpend, &financeSkill,
			&spendFreq, &actFreq, &emotion, &finStress, &motivation, &fomoStress,
			&r.FeelsFomoOften, &psych, &r.SupportNeed, &support,
			&r.DayOfWeek, &hour, &r.WeekBucket, &ratio,
			&remaining, &r.RatioBucket, &r.FinanceBucket, &r.FomoCategory,
			&relFomo, &stress,
		)
		if err != nil {
			return nil, false, err
		}

		if ts.Valid && ts.String != "" {
			if parsed, err := time.Parse(time.RFC3339, ts.String); err == nil {
				r.Timestamp = &parsed
			}
		}
		if hour.Valid {
			h := int(hour.Int64)
			r.HourOfDay = &h
		}
		r.Allowance = fromNull(allowance)
		r.FomoSpend = fromNull(fomoSpend)
		r.FinanceSkill = fromNull(financeSkill)
		r.FomoSpendFreq = fromNull(spendFreq)
		r.FomoActivityFreq = fromNull(actFreq)
		r.EmotionImpact = fromNull(emotion)
		r.FinanceStressFreq = fromNull(finStress)
		r.MotivationLossFreq = fromNull(motivation)
		r.FomoStressFreq = fromNull(fomoStress)
		r.PsychScore = fromNull(psych)
		r.SupportScore = fromNull(support)
		r.ExpenseRatio = fromNull(ratio)
		r.RemainingAllowance = fromNull(remaining)
		r.RelativeFomoScore = fromNull(relFomo)
		r.StressIndex = fromNull(stress)

		ds.Records = append(ds.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return ds, true, nil
}

func nullF(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullI(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
