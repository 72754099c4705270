package book

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_AddBook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, nil)

	t.Run("stored", func(t *testing.T) {
		mockRepo.EXPECT().
			Save(gomock.Any(), &Book{Title: "Dune", Author: "Frank Herbert", Price: 9.99}).
			Return(nil)

		assert.True(t, service.AddBook(context.Background(), Book{Title: "Dune", Author: "Frank Herbert", Price: 9.99}))
	})

	t.Run("storage error", func(t *testing.T) {
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		assert.False(t, service.AddBook(context.Background(), Book{Title: "Dune"}))
	})
}

func TestService_FetchBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, nil)

	t.Run("nil from storage becomes empty", func(t *testing.T) {
		mockRepo.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

		books, err := service.FetchBooks(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("passes records through", func(t *testing.T) {
		want := []Book{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
		mockRepo.EXPECT().FindAll(gomock.Any()).Return(want, nil)

		books, err := service.FetchBooks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, books)
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().FindAll(gomock.Any()).Return(nil, context.DeadlineExceeded)

		_, err := service.FetchBooks(context.Background())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
