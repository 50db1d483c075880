package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/infra/metrics"
)

const (
	DefaultBaseURL                = "https://graph.facebook.com/v18.0"
	DefaultContractSignedTemplate = "contrato_assinado"
)

type Config struct {
	AccessToken  string
	PhoneID      string
	BaseURL      string
	TemplateName string
}

type Client struct {
	HTTPClient *http.Client
	cfg        Config
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TemplateName == "" {
		cfg.TemplateName = DefaultContractSignedTemplate
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		cfg:        cfg,
	}
}

func (c *Client) Configured() bool {
	return c.cfg.AccessToken != "" && c.cfg.PhoneID != ""
}

// SendContractSigned avisa o titular pelo WhatsApp que o contrato foi assinado.
func (c *Client) SendContractSigned(phone, name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.HTTPClient.Timeout)
	defer cancel()

	return c.SendMessage(ctx, SendMessageInput{
		PhoneNumber:  NormalizePhone(phone),
		TemplateName: c.cfg.TemplateName,
		Parameters:   []string{name},
	})
}

func (c *Client) SendMessage(ctx context.Context, input SendMessageInput) error {
	if !c.Configured() {
		return fmt.Errorf("whatsapp não configurado")
	}
	if input.PhoneNumber == "" {
		return fmt.Errorf("whatsapp: telefone vazio")
	}

	payload := messageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               input.PhoneNumber,
		Type:             "template",
		Template: templateBody{
			Name:     input.TemplateName,
			Language: templateLanguage{Code: "pt_BR"},
			Components: []templateComponent{{
				Type:       "body",
				Parameters: textParameters(input.Parameters),
			}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp: erro ao serializar payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.cfg.BaseURL, c.cfg.PhoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: erro ao criar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.RecordIntegrationError("whatsapp", "send_message")
		return fmt.Errorf("whatsapp: falha request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result SendMessageResponse
	_ = json.Unmarshal(respBody, &result)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		metrics.RecordIntegrationError("whatsapp", "send_message")
		if result.Error != nil {
			return fmt.Errorf("whatsapp api error %d: %s", resp.StatusCode, result.Error.Message)
		}
		return fmt.Errorf("whatsapp api error: %d", resp.StatusCode)
	}
	if result.Error != nil {
		return fmt.Errorf("whatsapp: %s", result.Error.Message)
	}

	zap.S().Infow("✅ WhatsApp: mensagem enviada", "template", input.TemplateName)
	return nil
}

// NormalizePhone devolve o número no formato E.164 sem "+", assumindo DDI 55 quando ausente.
func NormalizePhone(phone string) string {
	digits := entity.OnlyDigits(phone)
	if len(digits) == 10 || len(digits) == 11 {
		return "55" + digits
	}
	return digits
}

func textParameters(params []string) []templateParameter {
	out := make([]templateParameter, 0, len(params))
	for _, p := range params {
		out = append(out, templateParameter{Type: "text", Text: p})
	}
	return out
}
