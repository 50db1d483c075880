package usecase

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/bepulse/advantage-backend/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateEnvelopeAndSigningURLInput(input CreateEnvelopeAndSigningURLInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CustomerID) == "" {
		errors = append(errors, ValidationError{"customerId", "is required"})
	}
	if strings.TrimSpace(input.DocumentType) == "" {
		errors = append(errors, ValidationError{"documentType", "is required"})
	}
	if strings.TrimSpace(input.ReturnURL) == "" {
		errors = append(errors, ValidationError{"returnUrl", "is required"})
	} else if !isValidURL(input.ReturnURL) {
		errors = append(errors, ValidationError{"returnUrl", "must be an absolute http(s) URL"})
	}

	return errors
}

func ValidateCreateEnvelopeInput(input CreateEnvelopeInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CustomerID) == "" {
		errors = append(errors, ValidationError{"customerId", "is required"})
	}
	if strings.TrimSpace(input.DocumentType) == "" {
		errors = append(errors, ValidationError{"documentType", "is required"})
	}
	if input.ReturnURL != "" && !isValidURL(input.ReturnURL) {
		errors = append(errors, ValidationError{"returnUrl", "must be an absolute http(s) URL"})
	}

	return errors
}

func ValidateCreateRecipientViewInput(input CreateRecipientViewInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.EnvelopeID) == "" {
		errors = append(errors, ValidationError{"envelopeId", "is required"})
	}
	if strings.TrimSpace(input.RecipientEmail) == "" {
		errors = append(errors, ValidationError{"recipientEmail", "is required"})
	} else if _, err := mail.ParseAddress(input.RecipientEmail); err != nil {
		errors = append(errors, ValidationError{"recipientEmail", "is invalid"})
	}
	if strings.TrimSpace(input.RecipientName) == "" {
		errors = append(errors, ValidationError{"recipientName", "is required"})
	}
	if strings.TrimSpace(input.ReturnURL) == "" {
		errors = append(errors, ValidationError{"returnUrl", "is required"})
	} else if !isValidURL(input.ReturnURL) {
		errors = append(errors, ValidationError{"returnUrl", "must be an absolute http(s) URL"})
	}

	return errors
}

// ValidateSigner confere os dados do titular e dos dependentes que vão para o envelope.
func ValidateSigner(customer *entity.Customer, dependents []*entity.Dependent) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(customer.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(customer.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(customer.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}
	if !entity.IsValidCPF(customer.CPF) {
		errors = append(errors, ValidationError{"cpf", "is invalid"})
	}

	for _, d := range dependents {
		if d.CPF != "" && !entity.IsValidCPF(d.CPF) {
			errors = append(errors, ValidationError{"dependents." + d.ID + ".cpf", "is invalid"})
		}
	}

	return errors
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
