package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadUpdate(t *testing.T) {
	query, args, err := markReadUpdate("n-1", 7).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE notifications SET read = $1")
	// Уже прочитанные строки не трогаем - нулевой rowsAffected
	// отличает no-op от неизвестного ID через GetByID
	assert.Contains(t, query, "id = $2")
	assert.Contains(t, query, "read = $3")
	assert.Contains(t, query, "user_id = $4")
	assert.Equal(t, []interface{}{true, "n-1", false, int64(7)}, args)
}
