package docusign

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/infra/metrics"
)

const (
	jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	tokenScopes    = "signature impersonation"
	tokenLifetime  = time.Hour
)

// ParsePrivateKey aceita o PEM puro ou codificado em base64 (formato usado no .env).
func ParsePrivateKey(raw string) (*rsa.PrivateKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("chave privada vazia")
	}

	pemBytes := []byte(raw)
	if !strings.HasPrefix(raw, "-----BEGIN") {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("chave privada não é PEM nem base64: %w", err)
		}
		pemBytes = decoded
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler chave RSA: %w", err)
	}
	return key, nil
}

// authBaseURL garante o esquema https quando o host vem sem ele.
func authBaseURL(basePath string) string {
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	if strings.HasPrefix(basePath, "http://") || strings.HasPrefix(basePath, "https://") {
		return basePath
	}
	return "https://" + basePath
}

func authAudience(basePath string) string {
	u, err := url.Parse(authBaseURL(basePath))
	if err != nil || u.Host == "" {
		return basePath
	}
	return u.Host
}

func (c *Client) signAssertion(now time.Time) (string, error) {
	if c.cfg.IntegrationKey == "" || c.cfg.UserID == "" || c.cfg.AuthBasePath == "" || c.cfg.PrivateKey == "" {
		return "", &AuthError{Op: "token", Message: "credenciais DocuSign não configuradas"}
	}

	key, err := ParsePrivateKey(c.cfg.PrivateKey)
	if err != nil {
		return "", &AuthError{Op: "token", Message: "chave privada inválida", Err: err}
	}

	claims := jwt.MapClaims{
		"iss":   c.cfg.IntegrationKey,
		"sub":   c.cfg.UserID,
		"aud":   authAudience(c.cfg.AuthBasePath),
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
		"scope": tokenScopes,
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", &AuthError{Op: "token", Message: "erro ao assinar JWT", Err: err}
	}
	return assertion, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// requestToken troca a asserção JWT por um access token e grava no cache.
func (c *Client) requestToken(ctx context.Context) (string, error) {
	zap.S().Info("🔄 [DocuSign] Renovando token...")

	assertion, err := c.signAssertion(c.tokens.now())
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrant)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authBaseURL(c.cfg.AuthBasePath)+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Op: "token", Message: "erro ao montar request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &AuthError{Op: "token", Message: "erro request auth", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		zap.S().Errorw("❌ [DocuSign] Erro Auth", "status", resp.StatusCode, "body", string(body))
		metrics.RecordIntegrationError("docusign", "token")
		return "", &AuthError{Op: "token", Message: fmt.Sprintf("status %d: %s", resp.StatusCode, string(body))}
	}

	var data tokenResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", &AuthError{Op: "token", Message: "erro decode auth", Err: err}
	}
	if data.AccessToken == "" {
		return "", &AuthError{Op: "token", Message: "resposta sem access_token"}
	}

	ttl := time.Duration(data.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = tokenLifetime
	}
	c.tokens.Store(data.AccessToken, ttl)
	metrics.RecordTokenRenewal()

	zap.S().Info("✅ [DocuSign] Token renovado com sucesso!")
	return data.AccessToken, nil
}
