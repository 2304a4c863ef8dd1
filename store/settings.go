package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SettingsKV is the settings table viewed as a string key/value store.
type SettingsKV struct {
	db *sql.DB
}

// Settings returns the key/value view of the settings table.
func (s *Store) Settings() *SettingsKV {
	return &SettingsKV{db: s.db}
}

// All returns every stored setting.
func (kv *SettingsKV) All(ctx context.Context) (map[string]string, error) {
	rows, err := kv.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	return out, nil
}

// Get returns the value stored under key, or "" if none.
func (kv *SettingsKV) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := kv.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return v, nil
}

// SetMany upserts values in a single transaction.
func (kv *SettingsKV) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := kv.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return fmt.Errorf("prepare setting upsert: %w", err)
	}
	defer stmt.Close()

	for k, v := range values {
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return fmt.Errorf("set setting %q: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}

// Clear removes every stored setting.
func (kv *SettingsKV) Clear(ctx context.Context) error {
	if _, err := kv.db.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	return nil
}
