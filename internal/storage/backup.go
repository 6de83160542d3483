package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BackupOptions configures a backup operation.
type BackupOptions struct {
	// Dir is the directory backups are written to. Defaults to a
	// "backups" subdirectory next to the database.
	Dir string

	// Name is the backup filename without extension. Defaults to a
	// timestamp-based name.
	Name string

	// Password enables AES-256-GCM encryption of the backup file when
	// non-empty.
	Password string
}

// Backup writes a consistent copy of the collection database and returns
// its path. SQLite's VACUUM INTO produces the copy atomically without an
// exclusive lock.
func (db *DB) Backup(opts BackupOptions) (string, error) {
	if db.path == "" || db.path == ":memory:" {
		return "", fmt.Errorf("cannot back up an in-memory database")
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(db.path), "backups")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = "backup_" + time.Now().Format("20060102_150405")
	}
	target := filepath.Join(dir, name+".db")

	// VACUUM INTO takes an expression, so the path binds as a parameter
	// and needs no quoting.
	if _, err := db.conn.Exec("VACUUM INTO ?", target); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}

	if opts.Password != "" {
		if err := encryptFileInPlace(target, opts.Password); err != nil {
			_ = os.Remove(target)
			return "", err
		}
	}

	return target, nil
}

// RestoreBackup replaces the database file at dbPath with the backup at
// backupPath, decrypting when the backup is encrypted. The database must
// not be open while restoring.
func RestoreBackup(backupPath, dbPath, password string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	if isEncrypted(data) {
		data, err = decrypt(data, password)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	if err := os.WriteFile(dbPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write database: %w", err)
	}
	return nil
}

func encryptFileInPlace(path, password string) error {
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup for encryption: %w", err)
	}
	encrypted, err := encrypt(plaintext, password)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, encrypted, 0o600); err != nil {
		return fmt.Errorf("failed to write encrypted backup: %w", err)
	}
	return nil
}
