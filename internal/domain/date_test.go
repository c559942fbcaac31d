package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/domain"
)

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)

	got, err := domain.NormalizeDate("", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07", got)

	got, err = domain.NormalizeDate("2024-12-31", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", got)

	for _, bad := range []string{"2024-3-7", "07/03/2024", "2024-02-30", "hoy"} {
		_, err := domain.NormalizeDate(bad, now)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, bad)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.KindValidation, domain.KindOf(domain.ErrInvalidQuantity))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(domain.ErrRoomNotFound))
	assert.Equal(t, domain.KindState, domain.KindOf(domain.ErrEmptyCart))
	assert.Equal(t, "EMPTY_CART", domain.CodeOf(domain.ErrEmptyCart))
	assert.Equal(t, domain.KindUnknown, domain.KindOf(assert.AnError))
	assert.Equal(t, "INTERNAL", domain.CodeOf(assert.AnError))
}
