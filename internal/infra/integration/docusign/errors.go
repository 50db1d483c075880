package docusign

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AuthError indica falha de credencial ou token junto ao DocuSign.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("docusign %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("docusign %s: %s", e.Op, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RequestError é qualquer resposta não-2xx do DocuSign que não seja de autenticação.
type RequestError struct {
	Op         string
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *RequestError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("docusign %s: status %d (%s): %s", e.Op, e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("docusign %s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

var tokenErrorCodes = map[string]bool{
	"AUTHORIZATION_INVALID_TOKEN":   true,
	"USER_AUTHENTICATION_FAILED":    true,
	"PARTNER_AUTHENTICATION_FAILED": true,
}

var tokenErrorHints = []string{"token expired", "token_expired", "invalid_token", "unauthorized"}

// IsTokenError reconhece erros que justificam renovar o token e repetir a chamada.
func IsTokenError(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	if reqErr.StatusCode == http.StatusUnauthorized || tokenErrorCodes[reqErr.ErrorCode] {
		return true
	}
	msg := strings.ToLower(reqErr.Message)
	for _, hint := range tokenErrorHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

// IsProviderError indica erro originado na integração com o DocuSign.
func IsProviderError(err error) bool {
	var authErr *AuthError
	var reqErr *RequestError
	return errors.As(err, &authErr) || errors.As(err, &reqErr)
}
