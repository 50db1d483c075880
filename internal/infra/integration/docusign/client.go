package docusign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/infra/metrics"
)

const DefaultTimeout = 30 * time.Second

type Config struct {
	BaseURL        string // ex: https://demo.docusign.net/restapi
	AccountID      string
	IntegrationKey string
	UserID         string
	AuthBasePath   string // ex: account-d.docusign.com
	PrivateKey     string // PEM ou PEM em base64
	Timeout        time.Duration
}

type Client struct {
	HTTPClient *http.Client

	cfg     Config
	tokens  *TokenCache
	renewMu sync.Mutex
}

func NewClient(cfg Config, tokens *TokenCache) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tokens == nil {
		tokens = NewTokenCache(nil)
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		tokens:     tokens,
	}
}

func (c *Client) accountURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/v2.1/accounts/" + url.PathEscape(c.cfg.AccountID)
}

// accessToken devolve o token em cache ou renova; renovações concorrentes são serializadas.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if token, ok := c.tokens.Valid(); ok {
		return token, nil
	}

	c.renewMu.Lock()
	defer c.renewMu.Unlock()

	if token, ok := c.tokens.Valid(); ok {
		return token, nil
	}
	return c.requestToken(ctx)
}

// withRetry executa a chamada e, se o token for rejeitado, invalida o cache e tenta uma única vez mais.
func (c *Client) withRetry(ctx context.Context, op string, call func(token string) error) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	err = call(token)
	if err == nil {
		return nil
	}
	if !IsTokenError(err) {
		metrics.RecordIntegrationError("docusign", op)
		return err
	}

	zap.S().Warnw("⚠️ [DocuSign] Token rejeitado, renovando e repetindo", "op", op, "error", err)
	c.tokens.Invalidate()

	token, err = c.accessToken(ctx)
	if err != nil {
		return err
	}

	err = call(token)
	if err != nil {
		metrics.RecordIntegrationError("docusign", op)
		if IsTokenError(err) {
			return &AuthError{Op: op, Message: "token rejeitado após renovação", Err: err}
		}
		return err
	}
	return nil
}

func (c *Client) send(ctx context.Context, op, method, path, token string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("docusign %s: erro ao converter payload: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.accountURL()+path, body)
	if err != nil {
		return nil, fmt.Errorf("docusign %s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docusign %s: falha request: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("docusign %s: erro ao ler resposta: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseRequestError(op, resp.StatusCode, respBody)
	}
	return respBody, nil
}

func parseRequestError(op string, status int, body []byte) *RequestError {
	reqErr := &RequestError{Op: op, StatusCode: status, Message: strings.TrimSpace(string(body))}

	var data errorResponse
	if err := json.Unmarshal(body, &data); err == nil {
		reqErr.ErrorCode = data.ErrorCode
		if data.Message != "" {
			reqErr.Message = data.Message
		}
	}
	if reqErr.Message == "" {
		reqErr.Message = http.StatusText(status)
	}
	return reqErr
}

func (c *Client) CreateEnvelope(ctx context.Context, definition EnvelopeDefinition) (string, error) {
	var summary envelopeSummary

	err := c.withRetry(ctx, "create_envelope", func(token string) error {
		body, err := c.send(ctx, "create_envelope", http.MethodPost, "/envelopes", token, definition)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &summary)
	})
	if err != nil {
		return "", err
	}
	if summary.EnvelopeID == "" {
		return "", &RequestError{Op: "create_envelope", StatusCode: http.StatusOK, Message: "resposta sem envelopeId"}
	}

	zap.S().Infow("📨 [DocuSign] Envelope criado", "envelopeId", summary.EnvelopeID, "status", summary.Status)
	return summary.EnvelopeID, nil
}

func (c *Client) GetEnvelopeStatus(ctx context.Context, envelopeID string) (*EnvelopeStatus, error) {
	var data envelopeResponse

	err := c.withRetry(ctx, "get_envelope", func(token string) error {
		body, err := c.send(ctx, "get_envelope", http.MethodGet, "/envelopes/"+url.PathEscape(envelopeID)+"?include=recipients", token, nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &data)
	})
	if err != nil {
		return nil, err
	}

	status, err := entity.ParseContractStatus(data.Status)
	if err != nil {
		return nil, fmt.Errorf("docusign get_envelope %s: %w", envelopeID, err)
	}

	out := &EnvelopeStatus{
		EnvelopeID:     data.EnvelopeID,
		Status:         status,
		StatusDateTime: data.StatusChangedDateTime,
		EmailSubject:   data.EmailSubject,
	}
	if out.EnvelopeID == "" {
		out.EnvelopeID = envelopeID
	}
	if data.Recipients != nil {
		out.Signers = data.Recipients.Signers
	}
	return out, nil
}

func (c *Client) CreateRecipientView(ctx context.Context, envelopeID, recipientEmail, recipientName, returnURL string) (string, error) {
	payload := recipientViewRequest{
		AuthenticationMethod: "none",
		Email:                recipientEmail,
		UserName:             recipientName,
		ReturnURL:            returnURL,
		ClientUserID:         recipientEmail,
	}

	var view recipientViewResponse
	err := c.withRetry(ctx, "recipient_view", func(token string) error {
		body, err := c.send(ctx, "recipient_view", http.MethodPost, "/envelopes/"+url.PathEscape(envelopeID)+"/views/recipient", token, payload)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &view)
	})
	if err != nil {
		return "", err
	}
	if view.URL == "" {
		return "", &RequestError{Op: "recipient_view", StatusCode: http.StatusCreated, Message: "resposta sem url"}
	}
	return view.URL, nil
}

func (c *Client) VoidEnvelope(ctx context.Context, envelopeID, reason string) error {
	payload := voidRequest{Status: string(entity.ContractStatusVoided), VoidedReason: reason}

	err := c.withRetry(ctx, "void_envelope", func(token string) error {
		_, err := c.send(ctx, "void_envelope", http.MethodPut, "/envelopes/"+url.PathEscape(envelopeID), token, payload)
		return err
	})
	if err != nil {
		return err
	}

	zap.S().Infow("🗑️ [DocuSign] Envelope anulado", "envelopeId", envelopeID, "reason", reason)
	return nil
}

func (c *Client) DownloadDocument(ctx context.Context, envelopeID, documentID string) ([]byte, error) {
	var content []byte

	path := "/envelopes/" + url.PathEscape(envelopeID) + "/documents/" + url.PathEscape(documentID)
	err := c.withRetry(ctx, "download_document", func(token string) error {
		body, err := c.send(ctx, "download_document", http.MethodGet, path, token, nil)
		if err != nil {
			return err
		}
		content = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}
