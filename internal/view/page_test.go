package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kampomido/internal/toast/mocks"
	dErrors "kampomido/pkg/domain-errors"
)

type row struct {
	ID     int
	Status string
}

func fetchRows(rows []row, err error) func(context.Context) ([]row, error) {
	return func(context.Context) ([]row, error) {
		return rows, err
	}
}

func TestPageStartsLoading(t *testing.T) {
	page := NewPage[row](nil)
	assert.Equal(t, StateLoading, page.State())
}

func TestLoadTransitions(t *testing.T) {
	t.Run("populated list lands in success", func(t *testing.T) {
		page := NewPage[row](nil)
		page.Load(context.Background(), fetchRows([]row{{ID: 1}}, nil), "Failed to load deposits")
		assert.Equal(t, StateSuccess, page.State())
		assert.Len(t, page.Items(), 1)
	})

	t.Run("no records lands in empty", func(t *testing.T) {
		page := NewPage[row](nil)
		page.Load(context.Background(), fetchRows(nil, nil), "Failed to load deposits")
		assert.Equal(t, StateEmpty, page.State())
	})

	t.Run("failure lands in error with server message preferred", func(t *testing.T) {
		page := NewPage[row](nil)
		err := dErrors.New(dErrors.CodeServer, "ledger rebuild in progress")
		page.Load(context.Background(), fetchRows(nil, err), "Failed to load deposits")
		assert.Equal(t, StateError, page.State())
		assert.Equal(t, "ledger rebuild in progress", page.ErrorMessage())
	})

	t.Run("refetch passes through loading and replaces the list", func(t *testing.T) {
		page := NewPage[row](nil)
		page.Load(context.Background(), fetchRows([]row{{ID: 1}}, nil), "Failed to load deposits")
		page.Load(context.Background(), fetchRows([]row{{ID: 2}, {ID: 3}}, nil), "Failed to load deposits")
		assert.Equal(t, StateSuccess, page.State())
		require.Len(t, page.Items(), 2)
		assert.Equal(t, 2, page.Items()[0].ID)
	})
}

func TestMutateAppliesOptimistically(t *testing.T) {
	page := NewPage[row](nil)
	page.Load(context.Background(), fetchRows([]row{{ID: 1}, {ID: 2}}, nil), "load failed")

	err := page.Mutate(context.Background(),
		func(items []row) []row { return items[:1] },
		func(context.Context) error { return nil },
		"Failed to delete deposit")
	require.NoError(t, err)
	assert.Len(t, page.Items(), 1)
	assert.Equal(t, StateSuccess, page.State())
}

func TestMutateRollsBackAndToastsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Error("deposit already converted")

	page := NewPage[row](sink)
	page.Load(context.Background(), fetchRows([]row{{ID: 1}, {ID: 2}}, nil), "load failed")

	err := page.Mutate(context.Background(),
		func(items []row) []row { return items[:1] },
		func(context.Context) error {
			return dErrors.New(dErrors.CodeBusinessRule, "deposit already converted")
		},
		"Failed to delete deposit")
	require.Error(t, err)

	// The optimistic removal must be undone.
	assert.Len(t, page.Items(), 2)
	assert.Equal(t, StateSuccess, page.State())
}

func TestMutateToEmptyListSettlesEmptyAndBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Error(gomock.Any())

	page := NewPage[row](sink)
	page.Load(context.Background(), fetchRows([]row{{ID: 1}}, nil), "load failed")

	err := page.Mutate(context.Background(),
		func([]row) []row { return nil },
		func(context.Context) error {
			return dErrors.New(dErrors.CodeNetwork, "request failed")
		},
		"Failed to delete deposit")
	require.Error(t, err)

	// Rolled back from empty to the original single row.
	assert.Equal(t, StateSuccess, page.State())
	assert.Len(t, page.Items(), 1)
}
