package book

import (
	"fmt"
	"time"
)

// Book represents a stored book record.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// BindingError reports a request body that could not be bound to a Book.
type BindingError struct {
	Field string
	Err   error
}

func (e *BindingError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid book payload: %v", e.Err)
	}
	return fmt.Sprintf("invalid book payload: field %s: %v", e.Field, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// newBook is the single constructor shared by every request decoder.
// ID and CreatedAt are left for storage to assign.
func newBook(title, author string, price float64) Book {
	return Book{
		Title:  title,
		Author: author,
		Price:  price,
	}
}
