package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/app"
	"github.com/bepulse/advantage-backend/internal/config"
	"github.com/bepulse/advantage-backend/internal/infra/database"
	"github.com/bepulse/advantage-backend/internal/infra/http/handlers"
	"github.com/bepulse/advantage-backend/internal/infra/http/router"
	"github.com/bepulse/advantage-backend/internal/infra/integration/whatsapp"
	"github.com/bepulse/advantage-backend/internal/infra/mail"
	"github.com/bepulse/advantage-backend/internal/infra/queue"
	"github.com/bepulse/advantage-backend/internal/infra/worker"
	"github.com/bepulse/advantage-backend/internal/logger"
	"github.com/bepulse/advantage-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	zl, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		panic(err)
	}
	defer zl.Sync()
	log := zl.Sugar()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Banco
	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("❌ Falha ao conectar no banco", "error", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		n, err := database.MigrateUp(db.DB)
		if err != nil {
			log.Fatalw("❌ Falha ao aplicar migrations", "error", err)
		}
		log.Infow("Migrations aplicadas", "count", n)
	}

	// 2. Integrações
	docuSign := app.NewDocuSignClient(cfg.DocuSign)
	if !cfg.DocuSign.Configured() {
		log.Warn("⚠️ Credenciais do DocuSign incompletas; chamadas ao provedor vão falhar")
	}

	locker, valkeyClient := app.NewSigningLocker(cfg.ValkeyAddr, cfg.SigningLockTTL)
	if valkeyClient != nil {
		defer valkeyClient.Close()
	}

	// 3. Fila (opcional)
	var publisher usecase.ContractEventPublisher
	var rabbitConn *amqp091.Connection
	var rabbitMQ *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalw("❌ Falha ao conectar no RabbitMQ", "error", err)
		}
		defer rabbitMQ.Close()
		rabbitConn = rabbitMQ.Conn
		publisher = queue.NewProducer(rabbitMQ.Ch)
	} else {
		log.Warn("RABBITMQ_URL não definido, eventos de contrato não serão publicados")
	}

	// 4. UseCases
	ucs := app.NewUseCases(db, cfg, docuSign, locker, publisher)

	// 5. Worker
	if rabbitMQ != nil {
		var notifier queue.ContractNotifier
		if cfg.Mail.Host != "" {
			notifier = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From, "Advantage")
		}
		consumer := queue.NewWorker(rabbitMQ.Ch, ucs.Eligibility, notifier)
		wa := whatsapp.NewClient(whatsapp.Config{
			AccessToken:  cfg.WhatsApp.AccessToken,
			PhoneID:      cfg.WhatsApp.PhoneID,
			TemplateName: cfg.WhatsApp.Template,
		})
		if wa.Configured() {
			consumer.WhatsApp = wa
		}
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				log.Errorw("❌ Worker parou", "error", err)
			}
		}()
	}

	if cfg.StatusSyncInterval > 0 {
		go worker.NewStatusSyncWorker(database.NewContractRepository(db), ucs.GetStatus, cfg.StatusSyncInterval).Start(ctx)
	}

	// 6. Handlers e router
	handler := router.New(router.Handlers{
		Contract: handlers.NewContractHandler(ucs.CreateAndSign, ucs.CreateEnvelope, ucs.RecipientView, ucs.GetStatus, ucs.UpdateStatus, ucs.Download, log),
		Customer: handlers.NewCustomerHandler(ucs.Eligibility, ucs.Pendings, log),
		Webhook:  handlers.NewWebhookHandler(ucs.UpdateStatus, cfg.DocuSign.WebhookSecret, log),
		Health:   handlers.NewHealthHandler(db, rabbitConn, valkeyClient, cfg.DocuSign.Configured()),
	}, cfg.AllowedOrigins, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("🔥 API Advantage rodando na porta %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("❌ Servidor HTTP falhou", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("Erro no shutdown", "error", err)
	}
}
