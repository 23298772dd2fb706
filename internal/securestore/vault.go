package securestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/eonwallet/walletcore/internal/common"
	"github.com/eonwallet/walletcore/internal/cryptox"
	"github.com/eonwallet/walletcore/internal/dbx"
	"github.com/eonwallet/walletcore/internal/securestore/migrations"
)

// Vault is the durable Store: a SQLite file whose values are sealed with
// AES-GCM under a key derived from the device passphrase and a per-device
// salt bootstrapped on first open.
//
// Key names are stored in the clear; only values are encrypted.
type Vault struct {
	db  *sql.DB
	key []byte
}

// OpenVault opens (creating if needed) the vault at dsn and derives the
// sealing key from the passphrase. The caller keeps ownership of the
// passphrase slice and should wipe it after the call.
func OpenVault(ctx context.Context, dsn string, passphrase []byte) (*Vault, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open vault db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate vault: %w", err)
	}

	salt, err := ensureDeviceSalt(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap device salt: %w", err)
	}

	return &Vault{db: db, key: cryptox.DeriveKey(passphrase, salt)}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// ensureDeviceSalt returns the per-device salt, generating and storing a
// fresh one on first open. Done in a transaction so concurrent first opens
// cannot race to different salts.
func ensureDeviceSalt(ctx context.Context, db *sql.DB) ([]byte, error) {
	var salt []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		err := tx.QueryRowContext(ctx, `SELECT salt FROM device WHERE id = 1`).Scan(&salt)
		if err == nil {
			return nil
		}
		if err != sql.ErrNoRows {
			return err
		}
		salt = common.GenerateRandByteArray(16)
		_, err = tx.ExecContext(ctx, `INSERT INTO device (id, salt) VALUES (1, ?)`, salt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return salt, nil
}

func (v *Vault) Get(ctx context.Context, key string) ([]byte, error) {
	var value, nonce []byte
	err := v.db.QueryRowContext(ctx, `SELECT value, nonce FROM vault WHERE key = ?`, key).Scan(&value, &nonce)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vault[%s]: %w", key, err)
	}

	plain, err := cryptox.Open(value, nonce, v.key)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal vault[%s]: %w", key, err)
	}
	return plain, nil
}

func (v *Vault) Set(ctx context.Context, key string, value []byte) error {
	sealed, nonce, err := cryptox.Seal(value, v.key)
	if err != nil {
		return fmt.Errorf("failed to seal vault[%s]: %w", key, err)
	}

	_, err = v.db.ExecContext(ctx, `
		INSERT INTO vault (key, value, nonce) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, nonce = excluded.nonce
	`, key, sealed, nonce)
	if err != nil {
		return fmt.Errorf("failed to set vault[%s]: %w", key, err)
	}
	return nil
}

func (v *Vault) Delete(ctx context.Context, key string) error {
	_, err := v.db.ExecContext(ctx, `DELETE FROM vault WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete vault[%s]: %w", key, err)
	}
	return nil
}

func (v *Vault) Clear(ctx context.Context) error {
	_, err := v.db.ExecContext(ctx, `DELETE FROM vault`)
	if err != nil {
		return fmt.Errorf("failed to clear vault: %w", err)
	}
	return nil
}

func (v *Vault) Close() error {
	common.WipeByteArray(v.key)
	return v.db.Close()
}
