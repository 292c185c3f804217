// Seeds the default owner and test accounts. Safe to run repeatedly.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"gymflow/internal/infra"
	"gymflow/internal/models/db_models"
	"gymflow/internal/repositories"
	"gymflow/pkg/utils"
)

type seedAccount struct {
	name       string
	email      string
	password   string
	role       db_models.AccountRole
	subscribed bool
}

var seedAccounts = []seedAccount{
	{name: "GYM Owner", email: "gym@mail.com", password: "admin123", role: db_models.RoleOwner, subscribed: true},
	{name: "Test User", email: "user@mail.com", password: "user123", role: db_models.RoleUser},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found")
	}

	db := infra.InitPostgresql()
	defer infra.ClosePostgresql(db)

	accounts := repositories.NewAccountRepository(db)
	ctx := context.Background()

	for _, seed := range seedAccounts {
		existing, err := accounts.FindByEmail(ctx, seed.email)
		if err != nil {
			log.WithError(err).Fatal("error looking up seed account")
		}
		if existing != nil {
			log.WithField("email", seed.email).Info("account already exists, skipping")
			continue
		}

		hash, err := utils.HashPassword(seed.password)
		if err != nil {
			log.WithError(err).Fatal("error hashing seed password")
		}

		account := &db_models.Account{
			Name:         seed.name,
			Email:        seed.email,
			PasswordHash: hash,
			Role:         seed.role,
		}
		if seed.subscribed {
			validTill := time.Now().AddDate(1, 0, 0).Unix()
			account.IsSubscribed = true
			account.SubscriptionValidTill = &validTill
		}

		if err := accounts.Insert(ctx, account); err != nil {
			log.WithError(err).Fatal("error creating seed account")
		}
		log.WithField("email", seed.email).Info("account created")
	}
}
