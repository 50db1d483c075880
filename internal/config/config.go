package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DocuSign struct {
	BaseURL        string
	AccountID      string
	IntegrationKey string
	UserID         string
	AuthBasePath   string
	PrivateKey     string
	TemplateID     string
	EmailSubject   string
	WebhookSecret  string
	Timeout        time.Duration
}

// Configured indica se há credenciais suficientes para pedir token.
func (d DocuSign) Configured() bool {
	return d.IntegrationKey != "" && d.UserID != "" && d.PrivateKey != "" && d.AccountID != ""
}

type Mail struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type WhatsApp struct {
	AccessToken string
	PhoneID     string
	Template    string
}

type Config struct {
	Port               string
	DatabaseURL        string
	AutoMigrate        bool
	AllowedOrigins     []string
	RabbitMQURL        string
	ValkeyAddr         string
	SigningLockTTL     time.Duration
	StatusSyncInterval time.Duration // 0 desliga o worker
	DocuSign           DocuSign
	Mail               Mail
	WhatsApp           WhatsApp
}

// Load lê as variáveis de ambiente (o .env já foi carregado pelo godotenv no main).
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("SIGNING_LOCK_TTL", "2m")
	v.SetDefault("DOCUSIGN_BASE_URL", "https://demo.docusign.net/restapi")
	v.SetDefault("DOCUSIGN_AUTH_BASE_PATH", "account-d.docusign.com")
	v.SetDefault("DOCUSIGN_EMAIL_SUBJECT", "Contrato de adesão - Advantage")
	v.SetDefault("DOCUSIGN_TIMEOUT", "30s")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("STATUS_SYNC_INTERVAL", "0s")
	v.SetDefault("WHATSAPP_TEMPLATE", "contrato_assinado")

	return &Config{
		Port:               v.GetString("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		AutoMigrate:        v.GetBool("AUTO_MIGRATE"),
		AllowedOrigins:     splitList(v.GetString("ALLOWED_ORIGINS")),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		ValkeyAddr:         v.GetString("VALKEY_ADDR"),
		SigningLockTTL:     v.GetDuration("SIGNING_LOCK_TTL"),
		StatusSyncInterval: v.GetDuration("STATUS_SYNC_INTERVAL"),
		DocuSign: DocuSign{
			BaseURL:        v.GetString("DOCUSIGN_BASE_URL"),
			AccountID:      v.GetString("DOCUSIGN_ACCOUNT_ID"),
			IntegrationKey: v.GetString("DOCUSIGN_INTEGRATION_KEY"),
			UserID:         v.GetString("DOCUSIGN_USER_ID"),
			AuthBasePath:   v.GetString("DOCUSIGN_AUTH_BASE_PATH"),
			PrivateKey:     v.GetString("DOCUSIGN_PRIVATE_KEY"),
			TemplateID:     v.GetString("DOCUSIGN_TEMPLATE_ID"),
			EmailSubject:   v.GetString("DOCUSIGN_EMAIL_SUBJECT"),
			WebhookSecret:  v.GetString("DOCUSIGN_WEBHOOK_SECRET"),
			Timeout:        v.GetDuration("DOCUSIGN_TIMEOUT"),
		},
		Mail: Mail{
			Host:     v.GetString("MAIL_HOST"),
			Port:     v.GetInt("MAIL_PORT"),
			User:     v.GetString("MAIL_USER"),
			Password: v.GetString("MAIL_PASS"),
			From:     v.GetString("MAIL_FROM"),
		},
		WhatsApp: WhatsApp{
			AccessToken: v.GetString("WHATSAPP_ACCESS_TOKEN"),
			PhoneID:     v.GetString("WHATSAPP_PHONE_ID"),
			Template:    v.GetString("WHATSAPP_TEMPLATE"),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
