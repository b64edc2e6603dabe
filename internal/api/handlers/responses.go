// Package handlers holds the helpers shared by every HTTP handler package:
// JSON decoding and the uniform error envelope (machine code + message).
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Machine-readable error codes carried in the "error" field.
const (
	CodeInvalidInput  = "dados_invalidos"
	CodeUnauthorized  = "nao_autorizado"
	CodeForbidden     = "acesso_negado"
	CodeNotFound      = "nao_encontrado"
	CodeConflict      = "conflito"
	CodeRateLimited   = "muitas_tentativas"
	CodeQuotaExceeded = "limite_excedido"
	CodeUnavailable   = "indisponivel"
	CodeInternalError = "erro_interno"
)

const (
	msgInternalError = "erro interno do servidor"
	msgUnavailable   = "serviço temporariamente indisponível, tente novamente"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields and
// trailing garbage.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// RespondJSON writes payload as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		// Encoding errors past this point cannot be reported to the client
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError writes the error envelope with the given status and code.
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// RespondBadRequest writes a 400 with the invalid-input code.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidInput, message)
}

// RespondUnauthorized writes a 401.
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondForbidden writes a 403.
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

// RespondNotFound writes a 404.
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondInternalError writes an opaque 500; details stay in the logs.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, msgInternalError)
}

// RespondUnavailable writes a 503 for transient failures worth retrying.
func RespondUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, CodeUnavailable, msgUnavailable)
}

// IsTimeout reports whether err stems from a deadline or cancellation, i.e.
// the request should be retried rather than treated as a server bug.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
