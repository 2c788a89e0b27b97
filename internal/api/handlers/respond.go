package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	msgInternalError = "внутренняя ошибка сервера"

	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConflictResponse тело ответа 409 со списком пересекающихся задач
type ConflictResponse struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Conflicts interface{} `json:"conflicts"`
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку в формате {"code", "message"}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondConflict пишет 409 с перечнем конфликтов
func RespondConflict(w http.ResponseWriter, message string, conflicts interface{}) {
	RespondJSON(w, http.StatusConflict, ConflictResponse{
		Code:      http.StatusConflict,
		Message:   message,
		Conflicts: conflicts,
	})
}

// RespondNoContent пишет 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON читает тело запроса. Неизвестные поля считаются ошибкой.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	return nil
}

// PathInt64 читает положительный числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New(name + " must be positive")
	}
	return id, nil
}

// QueryString возвращает указатель на непустой query параметр
func QueryString(r *http.Request, name string) *string {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	return &v
}

// QueryInt64 разбирает необязательный числовой query параметр
func QueryInt64(r *http.Request, name string) (*int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// QueryInt разбирает необязательный целый query параметр, 0 если не задан
func QueryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// QueryOptionalInt разбирает необязательный целый query параметр, nil если не задан
func QueryOptionalInt(r *http.Request, name string) (*int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// QueryBool разбирает необязательный логический query параметр
func QueryBool(r *http.Request, name string) (*bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
