package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

func openFileDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection.db")
	db, err := Open(DefaultConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBackupAndRestore(t *testing.T) {
	db := openFileDB(t)
	store := NewCollectionStore(db)
	ctx := context.Background()

	require.NoError(t, store.UpsertEntry(ctx, entry("Elsa - Snow Queen", "The First Chapter", card.VariantNormal, "", 4)))

	backupDir := t.TempDir()
	backupPath, err := db.Backup(BackupOptions{Dir: backupDir, Name: "test"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(backupDir, "test.db"), backupPath)

	// Restore into a fresh location and verify the data survived.
	restoredPath := filepath.Join(t.TempDir(), "restored.db")
	require.NoError(t, RestoreBackup(backupPath, restoredPath, ""))

	cfg := DefaultConfig(restoredPath)
	cfg.AutoMigrate = false
	restored, err := Open(cfg)
	require.NoError(t, err)
	defer func() { _ = restored.Close() }()

	entries, err := NewCollectionStore(restored).LoadEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Quantity)
}

func TestBackup_Encrypted(t *testing.T) {
	db := openFileDB(t)
	store := NewCollectionStore(db)
	ctx := context.Background()

	require.NoError(t, store.UpsertEntry(ctx, entry("Elsa - Snow Queen", "The First Chapter", card.VariantNormal, "", 2)))

	backupPath, err := db.Backup(BackupOptions{Dir: t.TempDir(), Name: "enc", Password: "hunter2"})
	require.NoError(t, err)

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.True(t, isEncrypted(data))

	// Wrong password fails; right password restores a readable database.
	restoredPath := filepath.Join(t.TempDir(), "restored.db")
	assert.Error(t, RestoreBackup(backupPath, restoredPath, "wrong"))
	require.NoError(t, RestoreBackup(backupPath, restoredPath, "hunter2"))

	cfg := DefaultConfig(restoredPath)
	cfg.AutoMigrate = false
	restored, err := Open(cfg)
	require.NoError(t, err)
	defer func() { _ = restored.Close() }()

	entries, err := NewCollectionStore(restored).LoadEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestBackup_PathWithQuotes(t *testing.T) {
	db := openFileDB(t)

	dir := filepath.Join(t.TempDir(), "o'brien's \"backups\"")
	backupPath, err := db.Backup(BackupOptions{Dir: dir, Name: "quoted"})
	require.NoError(t, err)

	info, err := os.Stat(backupPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBackup_InMemoryRefused(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Backup(BackupOptions{Dir: t.TempDir()})
	assert.Error(t, err)
}
