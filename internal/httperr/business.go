package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code carried by err, or "" if there is none.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

var messages = map[string]string{
	"appointment_not_found": "Agendamento não encontrado",
	"time_conflict":         "Conflito de horário.",
	"duplicate_id":          "Identificador já utilizado.",
	"invalid_request":       "Dados inválidos.",
	"persist_failed":        "Erro ao salvar agendamentos.",
	"rate_limited":          "Muitas requisições. Tente novamente mais tarde.",

	"missing_authorization_header": "Token de acesso ausente.",
	"invalid_authorization_header": "Cabeçalho de autorização inválido.",
	"invalid_token":                "Token inválido ou expirado.",
}

// Message is the user-facing text for a code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Erro inesperado."
}
