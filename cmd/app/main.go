package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"gymflow/cmd/fx/account_fx"
	"gymflow/cmd/fx/db_fx"
	"gymflow/cmd/fx/member_fx"
	"gymflow/cmd/fx/payment_fx"
	"gymflow/cmd/fx/plan_fx"
	"gymflow/internal/api/controllers"
	"gymflow/internal/infra"
	"gymflow/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		plan_fx.Module,
		member_fx.Module,
		payment_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "5000"
			}
			go func() {
				log.Infof("starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.WithError(err).Fatal("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	memberController *controllers.MemberController,
	paymentController *controllers.PaymentController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, accountController, planController, memberController, paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	memberController *controllers.MemberController,
	paymentController *controllers.PaymentController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/register", accountController.Register)
	authGroup.POST("/login", accountController.Login)

	r.GET("/plans", planController.ListPlans)

	paymentGroup := r.Group("/payment")
	paymentGroup.Use(middleware.JWTAuthMiddleware())
	paymentGroup.POST("/order", paymentController.CreateOrder)
	paymentGroup.POST("/verify", paymentController.VerifyPayment)
	paymentGroup.GET("/subscription/status", paymentController.SubscriptionStatus)
	paymentGroup.POST("/subscription/deactivate", paymentController.DeactivateSubscription)

	paymentsGroup := r.Group("/payments")
	paymentsGroup.Use(middleware.JWTAuthMiddleware())
	paymentsGroup.GET("/recent", paymentController.RecentPayments)

	membersGroup := r.Group("/members")
	membersGroup.Use(middleware.JWTAuthMiddleware())
	membersGroup.POST("", memberController.CreateMember)
	membersGroup.GET("", memberController.ListMembers)
}
