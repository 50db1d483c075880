package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var contractSignedTmpl = template.Must(template.ParseFS(templatesFS, "templates/contract_signed.html"))

func NewEmailSender(host string, port int, user, password, from, productName string) *EmailSender {
	return &EmailSender{
		Host:        host,
		Port:        port,
		User:        user,
		Password:    password,
		From:        from,
		ProductName: productName,
	}
}

func (s *EmailSender) renderContractSigned(name string) (string, error) {
	var body bytes.Buffer
	data := ContractSignedEmailData{Name: name, ProductName: s.ProductName}
	if err := contractSignedTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailSender) buildContractSigned(to, name string) (*gomail.Message, error) {
	body, err := s.renderContractSigned(name)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s, seu contrato foi assinado ✅", name))
	m.SetBody("text/html", body)
	return m, nil
}

func (s *EmailSender) SendContractSigned(to, name string) error {
	m, err := s.buildContractSigned(to, name)
	if err != nil {
		return err
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}
