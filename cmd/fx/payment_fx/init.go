package payment_fx

import (
	"os"

	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"gymflow/internal/api/controllers"
	"gymflow/internal/gateway"
	"gymflow/internal/repositories"
	"gymflow/internal/services"
)

var Module = fx.Provide(
	provideGatewayConfig, provideGatewayClient,
	providePaymentRepo, providePaymentService, providePaymentController,
)

func provideGatewayConfig() gateway.Config {
	return gateway.Config{
		KeyID:        os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret:    os.Getenv("RAZORPAY_KEY_SECRET"),
		ProviderName: "razorpay",
	}
}

func provideGatewayClient(cfg gateway.Config) gateway.Client {
	client, err := gateway.NewRazorpayClient(cfg)
	if err != nil {
		log.WithError(err).Fatal("error initializing razorpay client")
	}
	return client
}

func providePaymentRepo(db *gorm.DB) repositories.PaymentRepository {
	return repositories.NewPaymentRepository(db)
}

func providePaymentService(
	db *gorm.DB,
	client gateway.Client,
	cfg gateway.Config,
	accountRepo repositories.AccountRepository,
	memberRepo repositories.MemberRepository,
	paymentRepo repositories.PaymentRepository,
) services.PaymentServiceInterface {
	return services.NewPaymentService(db, client, cfg, accountRepo, memberRepo, paymentRepo)
}

func providePaymentController(paymentService services.PaymentServiceInterface) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}
