package book

import (
	"context"

	"go.uber.org/zap"
)

// Service provides book-related business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new book service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// AddBook stores b and reports whether storage accepted it.
func (s *Service) AddBook(ctx context.Context, b Book) bool {
	if err := s.repo.Save(ctx, &b); err != nil {
		s.logger.Error("store book failed",
			zap.String("title", b.Title),
			zap.String("author", b.Author),
			zap.Error(err),
		)
		return false
	}
	s.logger.Debug("book stored", zap.String("id", b.ID))
	return true
}

// FetchBooks returns every stored book. The slice is never nil on success.
func (s *Service) FetchBooks(ctx context.Context) ([]Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}
