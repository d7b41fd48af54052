package company

import (
	"errors"
	"fmt"
)

// Kind classifies lookup failures.
type Kind string

const (
	KindMalformedInput            Kind = "malformed_input"
	KindChecksumInvalid           Kind = "checksum_invalid"
	KindUpstreamNotFound          Kind = "upstream_not_found"
	KindUpstreamAuthFailure       Kind = "upstream_auth_failure"
	KindUpstreamRateLimited       Kind = "upstream_rate_limited"
	KindUpstreamMalformedResponse Kind = "upstream_malformed_response"
	KindUpstreamUnavailable       Kind = "upstream_unavailable"
	KindInternal                  Kind = "internal"
)

// Messages shown to the caller. They never carry internal details.
const (
	MessageMissing          = "CNPJ não informado"
	MessageLength           = "CNPJ deve conter 14 dígitos"
	MessageChecksum         = "CNPJ inválido"
	MessageNotFound         = "Empresa não encontrada"
	MessageAuthFailure      = "Token de API inválido"
	MessageRateLimited      = "Limite de consultas excedido. Tente novamente em instantes"
	MessageMalformed        = "Resposta inválida do serviço de consulta"
	MessageUpstreamDown     = "Serviço de consulta indisponível"
	MessageInternal         = "Erro interno do servidor"
	MessageMethodNotAllowed = "Método não permitido"
)

var defaultMessages = map[Kind]string{
	KindMalformedInput:            MessageLength,
	KindChecksumInvalid:           MessageChecksum,
	KindUpstreamNotFound:          MessageNotFound,
	KindUpstreamAuthFailure:       MessageAuthFailure,
	KindUpstreamRateLimited:       MessageRateLimited,
	KindUpstreamMalformedResponse: MessageMalformed,
	KindUpstreamUnavailable:       MessageUpstreamDown,
	KindInternal:                  MessageInternal,
}

// Error is a classified lookup failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// NewError builds an Error. An empty message selects the default for kind.
func NewError(kind Kind, message string, err error) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("company lookup [%s]: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("company lookup [%s]: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind of err. Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal && e.Message != "" {
		return e.Message
	}
	return MessageInternal
}
