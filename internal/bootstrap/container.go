package bootstrap

import (
	"log"
	"time"

	"ai-intake-be/internal/config"
	"ai-intake-be/internal/controller"
	"ai-intake-be/internal/pkg/logger"
	"ai-intake-be/internal/pkg/mailer"
	"ai-intake-be/internal/repository/memory"
	"ai-intake-be/internal/repository/unitofwork"
	"ai-intake-be/internal/service"
	"ai-intake-be/pkg/llm/factory"
	"ai-intake-be/pkg/triage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	Cfg *config.Config

	// Controllers
	IntakeController *controller.IntakeController
	ReportController *controller.ReportController
	AuthController   *controller.AuthController

	// Background services, run from main.go
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus for risk alerts
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	publisherService := service.NewPublisherService(cfg.Intake.RiskAlertTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Intake.RiskAlertTopic,
		emailService,
		cfg.Intake.RecipientEmail,
		sysLogger,
	)

	// 3. AI components
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	reflector := triage.NewReflector(cfg.Intake.ReflectionStrategy, llmProvider)

	// 4. Session store
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Intake.SessionTTLMinutes) * time.Minute)

	// 5. Services
	intakeService := service.NewIntakeService(
		uowFactory,
		sessionRepo,
		llmProvider,
		reflector,
		emailService,
		publisherService,
		sysLogger,
		cfg.Intake.RecipientEmail,
	)
	reportService := service.NewReportService(uowFactory, sysLogger)
	authService := service.NewAuthService(cfg.Admin, sysLogger)

	return &Container{
		Cfg:              cfg,
		IntakeController: controller.NewIntakeController(intakeService),
		ReportController: controller.NewReportController(reportService, sysLogger),
		AuthController:   controller.NewAuthController(authService),
		ConsumerService:  consumerService,
		Logger:           sysLogger,
	}
}
