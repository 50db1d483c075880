package docusign

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bepulse/advantage-backend/internal/entity"
)

// fakeDocuSign simula o servidor OAuth e a API de envelopes no mesmo httptest.Server.
type fakeDocuSign struct {
	server     *httptest.Server
	key        *rsa.PrivateKey
	tokenCalls atomic.Int32
	apiCalls   atomic.Int32
	api        http.HandlerFunc
}

func newFakeDocuSign(t *testing.T, api http.HandlerFunc) *fakeDocuSign {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &fakeDocuSign{key: key, api: api}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		n := f.tokenCalls.Add(1)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, jwtBearerGrant, r.Form.Get("grant_type"))

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(r.Form.Get("assertion"), claims, func(tk *jwt.Token) (any, error) {
			return &f.key.PublicKey, nil
		}, jwt.WithoutClaimsValidation())
		assert.NoError(t, err)
		assert.Equal(t, "integration-key", claims["iss"])
		assert.Equal(t, "user-id", claims["sub"])
		assert.Equal(t, tokenScopes, claims["scope"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": fmt.Sprintf("tok-%d", n),
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/restapi/v2.1/accounts/acc-1/", func(w http.ResponseWriter, r *http.Request) {
		f.apiCalls.Add(1)
		f.api(w, r)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeDocuSign) privateKeyPEM() string {
	return string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(f.key)}))
}

func (f *fakeDocuSign) client(clock clockwork.Clock) *Client {
	return NewClient(Config{
		BaseURL:        f.server.URL + "/restapi",
		AccountID:      "acc-1",
		IntegrationKey: "integration-key",
		UserID:         "user-id",
		AuthBasePath:   f.server.URL,
		PrivateKey:     f.privateKeyPEM(),
		Timeout:        5 * time.Second,
	}, NewTokenCache(clock))
}

func envelopeCreated(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"envelopeId":"env-1","status":"sent","statusDateTime":"2024-01-01T00:00:00Z"}`))
}

func TestCreateEnvelope(t *testing.T) {
	ctx := context.Background()

	t.Run("Reaproveita token entre chamadas", func(t *testing.T) {
		var auth []string
		fake := newFakeDocuSign(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/restapi/v2.1/accounts/acc-1/envelopes", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			auth = append(auth, r.Header.Get("Authorization"))
			envelopeCreated(w, r)
		})
		client := fake.client(clockwork.NewFakeClock())

		id, err := client.CreateEnvelope(ctx, EnvelopeDefinition{Status: "sent"})
		require.NoError(t, err)
		assert.Equal(t, "env-1", id)

		_, err = client.CreateEnvelope(ctx, EnvelopeDefinition{Status: "sent"})
		require.NoError(t, err)

		assert.Equal(t, int32(1), fake.tokenCalls.Load())
		assert.Equal(t, []string{"Bearer tok-1", "Bearer tok-1"}, auth)
	})

	t.Run("Renova token a 4 minutos da expiração", func(t *testing.T) {
		var auth []string
		fake := newFakeDocuSign(t, func(w http.ResponseWriter, r *http.Request) {
			auth = append(auth, r.Header.Get("Authorization"))
			envelopeCreated(w, r)
		})
		clock := clockwork.NewFakeClock()
		client := fake.client(clock)

		_, err := client.CreateEnvelope(ctx, EnvelopeDefinition{Status: "sent"})
		require.NoError(t, err)

		clock.Advance(56 * time.Minute)
		_, err = client.CreateEnvelope(ctx, EnvelopeDefinition{Status: "sent"})
		require.NoError(t, err)

		_, err = client.CreateEnvelope(ctx, EnvelopeDefinition{Status: "sent"})
		require.NoError(t, err)

		assert.Equal(t, int32(2), fake.tokenCalls.Load())
		assert.Equal(t, []string{"Bearer tok-1", "Bearer tok-2", "Bearer tok-2"}, auth)
	})

	t.Run("Repete uma vez após 401", func(t *testing.T) {
		fake := newFakeDocuSign(t, nil)
		fake.api = func(w http.ResponseWriter, r *http.Request) {
			if fake.apiCalls.Load() == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"errorCode":"AUTHORIZATION_INVALID_TOKEN","message":"The access token provided is expired"}`))
				return
			}
			assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
			envelopeCreated(w, r)
		}
		client := fake.client(clockwork.NewFakeClock())

		id, err := client.CreateEnvelope(ctx, EnvelopeDefinition{Status: "sent"})
		require.NoError(t, err)
		assert.Equal(t, "env-1", id)
		assert.Equal(t, int32(2), fake.apiCalls.Load())
		assert.Equal(t, int32(2), fake.tokenCalls.Load())
	})

	t.Run("Segunda falha de token vira AuthError", func(t *testing.T) {
		fake := newFakeDocuSign(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"errorCode":"USER_AUTHENTICATION_FAILED","message":"unauthorized"}`))
		})
		client := fake.client(clockwork.NewFakeClock())

		_, err := client.CreateEnvelope(ctx, EnvelopeDefinition{Status: "sent"})
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, int32(2), fake.apiCalls.Load())
	})

	t.Run("Erro comum não é repetido", func(t *testing.T) {
		fake := newFakeDocuSign(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errorCode":"TEMPLATE_ID_INVALID","message":"Invalid template ID."}`))
		})
		client := fake.client(clockwork.NewFakeClock())

		_, err := client.CreateEnvelope(ctx, EnvelopeDefinition{Status: "sent"})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
		assert.Equal(t, "TEMPLATE_ID_INVALID", reqErr.ErrorCode)
		assert.Equal(t, int32(1), fake.apiCalls.Load())
	})

	t.Run("Credenciais ausentes", func(t *testing.T) {
		client := NewClient(Config{BaseURL: "http://127.0.0.1:1", AccountID: "acc-1"}, nil)

		_, err := client.CreateEnvelope(ctx, EnvelopeDefinition{Status: "sent"})
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.True(t, IsProviderError(err))
	})
}

func TestEnvelopeOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("VoidEnvelope envia status voided", func(t *testing.T) {
		fake := newFakeDocuSign(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/restapi/v2.1/accounts/acc-1/envelopes/env-9", r.URL.Path)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "voided", body["status"])
			assert.Equal(t, "Envelope regenerado", body["voidedReason"])
			w.Write([]byte(`{}`))
		})

		err := fake.client(clockwork.NewFakeClock()).VoidEnvelope(ctx, "env-9", "Envelope regenerado")
		require.NoError(t, err)
	})

	t.Run("CreateRecipientView usa o email como clientUserId", func(t *testing.T) {
		fake := newFakeDocuSign(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/restapi/v2.1/accounts/acc-1/envelopes/env-1/views/recipient", r.URL.Path)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "none", body["authenticationMethod"])
			assert.Equal(t, "ana@example.com", body["email"])
			assert.Equal(t, "ana@example.com", body["clientUserId"])
			assert.Equal(t, "Ana Souza", body["userName"])
			assert.Equal(t, "https://app.example.com/ok", body["returnUrl"])

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"url":"https://demo.docusign.net/signing/abc"}`))
		})

		url, err := fake.client(clockwork.NewFakeClock()).CreateRecipientView(ctx, "env-1", "ana@example.com", "Ana Souza", "https://app.example.com/ok")
		require.NoError(t, err)
		assert.Equal(t, "https://demo.docusign.net/signing/abc", url)
	})

	t.Run("GetEnvelopeStatus mapeia status", func(t *testing.T) {
		fake := newFakeDocuSign(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "recipients", r.URL.Query().Get("include"))
			w.Write([]byte(`{"envelopeId":"env-1","status":"completed","statusChangedDateTime":"2024-02-01T10:00:00Z","emailSubject":"Contrato","recipients":{"signers":[{"email":"ana@example.com","name":"Ana","status":"completed"}]}}`))
		})

		status, err := fake.client(clockwork.NewFakeClock()).GetEnvelopeStatus(ctx, "env-1")
		require.NoError(t, err)
		assert.Equal(t, entity.ContractStatusCompleted, status.Status)
		assert.Equal(t, "2024-02-01T10:00:00Z", status.StatusDateTime)
		require.Len(t, status.Signers, 1)
		assert.Equal(t, "ana@example.com", status.Signers[0].Email)
	})

	t.Run("GetEnvelopeStatus rejeita status desconhecido", func(t *testing.T) {
		fake := newFakeDocuSign(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"envelopeId":"env-1","status":"timedout"}`))
		})

		_, err := fake.client(clockwork.NewFakeClock()).GetEnvelopeStatus(ctx, "env-1")
		assert.True(t, errors.Is(err, entity.ErrUnknownContractStatus))
	})

	t.Run("DownloadDocument devolve os bytes", func(t *testing.T) {
		fake := newFakeDocuSign(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/restapi/v2.1/accounts/acc-1/envelopes/env-1/documents/1", r.URL.Path)
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("%PDF-1.4"))
		})

		content, err := fake.client(clockwork.NewFakeClock()).DownloadDocument(ctx, "env-1", "1")
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), content)
	})
}

func TestParsePrivateKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	parsed, err := ParsePrivateKey(string(pemKey))
	require.NoError(t, err)
	assert.True(t, key.Equal(parsed))

	parsed, err = ParsePrivateKey(base64.StdEncoding.EncodeToString(pemKey))
	require.NoError(t, err)
	assert.True(t, key.Equal(parsed))

	_, err = ParsePrivateKey("")
	assert.Error(t, err)
}

func TestAuthBaseURL(t *testing.T) {
	assert.Equal(t, "https://account-d.docusign.com", authBaseURL("account-d.docusign.com"))
	assert.Equal(t, "http://127.0.0.1:8080", authBaseURL("http://127.0.0.1:8080/"))
	assert.Equal(t, "account-d.docusign.com", authAudience("account-d.docusign.com"))
}
