package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() (ReceiptSession, builderFixture) {
	f := newBuilderFixture()
	return ReceiptSession{
		ID:            uuid.New(),
		TenantID:      uuid.New(),
		ReceiptNumber: f.input.ReceiptNumber,
		Payment:       f.input.Payment,
		School:        f.input.School,
		Currency:      "KES",
		Mode:          enum.ReceiptModeIndividual,
		Size:          entity.ReceiptSizeA5,
		Fields:        f.input.Fields,
		Candidates:    []ReceiptStudent{f.jane, f.john, f.mary},
		Selection:     []uuid.UUID{f.jane.ID},
	}, f
}

func TestReceiptSession_TogglePayerRejected(t *testing.T) {
	sess, f := newTestSession()

	err := sess.ToggleStudent(f.jane.ID)

	assert.ErrorIs(t, err, apperror.ErrPayerNotRemovable)
	assert.Equal(t, []uuid.UUID{f.jane.ID}, sess.Selection)
}

func TestReceiptSession_ToggleSibling(t *testing.T) {
	sess, f := newTestSession()
	require.NoError(t, sess.SetMode(enum.ReceiptModeFamily))

	require.NoError(t, sess.ToggleStudent(f.john.ID))
	assert.True(t, sess.IsSelected(f.john.ID))
	assert.Len(t, sess.Build().Students, 2)

	require.NoError(t, sess.ToggleStudent(f.john.ID))
	assert.False(t, sess.IsSelected(f.john.ID))
	assert.Len(t, sess.Build().Students, 1)
}

func TestReceiptSession_ToggleUnknownStudent(t *testing.T) {
	sess, _ := newTestSession()

	err := sess.ToggleStudent(uuid.New())

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestReceiptSession_ModeKeepsSelection(t *testing.T) {
	sess, f := newTestSession()
	require.NoError(t, sess.ToggleStudent(f.mary.ID))

	assert.Len(t, sess.Build().Students, 1, "individual mode ignores the selection")

	require.NoError(t, sess.SetMode(enum.ReceiptModeFamily))
	assert.Len(t, sess.Build().Students, 2)
}

func TestReceiptSession_Validation(t *testing.T) {
	sess, _ := newTestSession()

	assert.Error(t, sess.SetMode("group"))
	assert.Error(t, sess.SetSize("B5"))
	require.NoError(t, sess.SetSize(entity.ReceiptSizeA7))
	assert.Equal(t, entity.ReceiptSizeA7, sess.Size)
}

func TestReceiptSession_CloneIsIndependent(t *testing.T) {
	sess, f := newTestSession()
	clone := sess.Clone()

	require.NoError(t, clone.ToggleStudent(f.john.ID))
	clone.Candidates[0].Name = "Changed"

	assert.Equal(t, []uuid.UUID{f.jane.ID}, sess.Selection)
	assert.Equal(t, "Jane Doe", sess.Candidates[0].Name)
}

func TestReceiptSession_ReceiptNumberStable(t *testing.T) {
	sess, f := newTestSession()
	before := sess.Build().ReceiptNumber

	require.NoError(t, sess.SetMode(enum.ReceiptModeFamily))
	require.NoError(t, sess.ToggleStudent(f.john.ID))
	require.NoError(t, sess.SetSize(entity.ReceiptSizeA4))
	sess.Fields.Notes = "Term 1"

	assert.Equal(t, before, sess.Build().ReceiptNumber)
	assert.Equal(t, "Term 1", sess.Build().Notes)
}
