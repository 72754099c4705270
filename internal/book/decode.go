package book

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"
)

type jsonPayload struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
}

var (
	errNotObject    = errors.New("body must be a JSON object")
	errTrailingData = errors.New("unexpected data after JSON object")
	errNonFinite    = errors.New("must be a finite number")
)

// DecodeJSON binds a single JSON object to a Book. Unknown fields, including
// a client supplied id, are ignored.
func DecodeJSON(r io.Reader) (Book, error) {
	dec := json.NewDecoder(r)
	var p *jsonPayload
	if err := dec.Decode(&p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Book{}, &BindingError{Field: typeErr.Field, Err: err}
		}
		return Book{}, &BindingError{Err: err}
	}
	if p == nil {
		return Book{}, &BindingError{Err: errNotObject}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return Book{}, &BindingError{Err: err}
	}
	return newBook(p.Title, p.Author, p.Price), nil
}

// DecodeForm binds URL-encoded form fields to a Book.
func DecodeForm(form url.Values) (Book, error) {
	var price float64
	if raw := strings.TrimSpace(form.Get("price")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Book{}, &BindingError{Field: "price", Err: err}
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return Book{}, &BindingError{Field: "price", Err: errNonFinite}
		}
		price = v
	}
	return newBook(form.Get("title"), form.Get("author"), price), nil
}
