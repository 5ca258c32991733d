package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kycgate/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant at trust boundaries.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseRecordID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("nil UUID parses and is reported by IsNil", func(t *testing.T) {
		id, err := ParseUserID(uuid.Nil.String())
		require.NoError(t, err)
		assert.True(t, id.IsNil())
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		raw := uuid.New()
		id, err := ParseRecordID(raw.String())
		require.NoError(t, err)
		assert.Equal(t, RecordID(raw), id)
	})
}

func TestIDsSerializeAsStrings(t *testing.T) {
	recordID := NewRecordID()
	payload, err := json.Marshal(struct {
		ID RecordID `json:"id"`
	}{ID: recordID})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+recordID.String()+`"}`, string(payload))

	var decoded struct {
		ID RecordID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, recordID, decoded.ID)
}
