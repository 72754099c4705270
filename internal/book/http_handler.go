package book

import (
	"bookstore/internal/httpx"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"
)

const (
	MsgStored     = "Book is stored in Database"
	MsgStoredForm = "Book is stored in Database (form submit)"
	MsgStoreFail  = "Failed to store the book in Database"
)

const (
	mediaJSON = "application/json"
	mediaForm = "application/x-www-form-urlencoded"
)

type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{service: service, logger: logger}
}

// Add handles POST /add
// @Summary Store a book
// @Description Accepts a JSON body or URL-encoded form fields
// @Tags books
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce plain
// @Success 201 {string} string
// @Failure 400 {string} string
// @Failure 413 {object} httpx.ErrorResponse
// @Failure 415 {object} httpx.ErrorResponse
// @Router /add [post]
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	var (
		b       Book
		message string
	)
	switch mediaType {
	case mediaJSON:
		b, err = DecodeJSON(r.Body)
		message = MsgStored
	case mediaForm:
		if err = r.ParseForm(); err == nil {
			b, err = DecodeForm(r.PostForm)
		} else {
			err = &BindingError{Err: err}
		}
		message = MsgStoredForm
	default:
		httpx.JSONError(w, r, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
			"Content-Type must be application/json or application/x-www-form-urlencoded", nil)
		return
	}

	if err != nil {
		h.logger.Debug("bind book failed", zap.String("media_type", mediaType), zap.Error(err))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
			return
		}
		var details []httpx.ErrorDetail
		var bindErr *BindingError
		if errors.As(err, &bindErr) && bindErr.Field != "" {
			details = append(details, httpx.ErrorDetail{Field: bindErr.Field, Message: bindErr.Err.Error()})
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Malformed book payload", details)
		return
	}

	if !h.service.AddBook(r.Context(), b) {
		httpx.Text(w, http.StatusBadRequest, MsgStoreFail)
		return
	}
	httpx.Text(w, http.StatusCreated, message)
}

// Fetch handles GET /fetch
// @Summary List books
// @Description Returns every stored book as a JSON array
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /fetch [get]
func (h *HTTPHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.FetchBooks(r.Context())
	if err != nil {
		h.logger.Error("fetch books failed", zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}
