package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(files, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups[strings.TrimSuffix(n, ".up.sql")] = true
		case strings.HasSuffix(n, ".down.sql"):
			downs[strings.TrimSuffix(n, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", n)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestSchemaDefinesAllTables(t *testing.T) {
	b, err := files.ReadFile("000001_init_schema.up.sql")
	require.NoError(t, err)

	for _, table := range []string{"paciente", "zona_telo", "procedura", "procedura_zona"} {
		assert.Contains(t, string(b), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
