package collection

import (
	"testing"

	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestUpsertByIDReplacesInPlace(t *testing.T) {
	col := []domain.Review{
		{ID: "a", Rating: 1},
		{ID: "b", Rating: 2},
		{ID: "c", Rating: 3},
	}

	out := UpsertByID(col, domain.Review{ID: "b", Rating: 5}, reviewID)
	assert.Len(t, out, 3)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, 5, out[1].Rating)

	// The input slice is untouched.
	assert.Equal(t, 2, col[1].Rating)
}

func TestUpsertByIDPrependsNew(t *testing.T) {
	col := []domain.Review{{ID: "a", Rating: 1}}

	out := UpsertByID(col, domain.Review{ID: "b", Rating: 4}, reviewID)
	assert.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
}

func TestUpsertByIDEmptyCollection(t *testing.T) {
	out := UpsertByID(nil, domain.Review{ID: "a"}, reviewID)
	assert.Len(t, out, 1)
}

func TestRemoveByID(t *testing.T) {
	col := []domain.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	out := RemoveByID(col, "b", itemID)
	assert.Equal(t, []domain.Item{{ID: "a"}, {ID: "c"}}, out)

	same := RemoveByID(col, "zz", itemID)
	assert.Len(t, same, 3)
}

func TestContainsID(t *testing.T) {
	col := []domain.Item{{ID: "a"}, {ID: "b"}}
	assert.True(t, ContainsID(col, "a", itemID))
	assert.False(t, ContainsID(col, "c", itemID))
	assert.False(t, ContainsID(nil, "a", itemID))
}
