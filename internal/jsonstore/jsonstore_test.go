package jsonstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/pos-billing/internal/jsonstore"
)

func TestReadMissingDocument(t *testing.T) {
	records, err := jsonstore.ReadDocument(filepath.Join(t.TempDir(), "bills.json"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "bills.json")

	require.NoError(t, jsonstore.AppendRecord(path, map[string]any{"bill_id": "0001", "grand_total": 6.0}))
	require.NoError(t, jsonstore.AppendRecord(path, map[string]any{"bill_id": "0002"}))

	records, err := jsonstore.ReadDocument(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0001", records[0]["bill_id"])
	assert.Equal(t, 6.0, records[0]["grand_total"])
	assert.Equal(t, "0002", records[1]["bill_id"])
}

func TestMalformedDocument(t *testing.T) {
	dir := t.TempDir()

	object := filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(object, []byte(`{"bill_id": "0001"}`), 0644))
	_, err := jsonstore.ReadDocument(object)
	assert.ErrorIs(t, err, jsonstore.ErrMalformedDocument)

	scalars := filepath.Join(dir, "scalars.json")
	require.NoError(t, os.WriteFile(scalars, []byte(`[1, 2]`), 0644))
	_, err = jsonstore.ReadDocument(scalars)
	assert.ErrorIs(t, err, jsonstore.ErrMalformedDocument)

	err = jsonstore.AppendRecord(object, map[string]any{"bill_id": "0002"})
	assert.ErrorIs(t, err, jsonstore.ErrMalformedDocument)

	data, err := os.ReadFile(object)
	require.NoError(t, err)
	assert.Equal(t, `{"bill_id": "0001"}`, string(data))
}

func TestReadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{`), 0644))

	_, err := jsonstore.ReadDocument(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, jsonstore.ErrMalformedDocument)
}
