package state

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/petcheck/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSQLite_SetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "pets", []byte(`[{"id":"1"}]`)))

	v, err := r.Get(ctx, "pets")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), v)
}

func TestSQLite_Get_Missing_ReturnsNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Nil(t, v)
}

func TestSQLite_EmptyValueIsNotAbsent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "profileName", []byte("")))

	v, err := r.Get(ctx, "profileName")
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)
}

func TestSQLite_Set_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestSQLite_ListAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte{0xAA}, m["a"])
	assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSQLite_Delete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "selectedPet", []byte(`{}`)))
	require.NoError(t, r.Delete(ctx, "selectedPet"))

	_, err := r.Get(ctx, "selectedPet")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.Delete(ctx, "selectedPet"))
}

func TestSQLite_ErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get state[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set state[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete state[k]")

	err = r.Clear(ctx)
	require.ErrorContains(t, err, "failed to clear state")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list state")
}
