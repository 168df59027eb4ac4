package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ryabov/momentum/internal/api"
	"github.com/ryabov/momentum/internal/repository"
	"github.com/ryabov/momentum/internal/service"
	"github.com/ryabov/momentum/pkg/cleanup"
	"github.com/ryabov/momentum/pkg/config"
	jwtservice "github.com/ryabov/momentum/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	actionsRepo := repository.NewActionsRepo(&dbCfg)
	userService := service.NewUserService(
		repository.NewUsersRepo(&dbCfg),
		cfg.GetInt("BCRYPT_COST", bcrypt.DefaultCost),
	)
	actionsService := service.NewActionsService(actionsRepo)
	recordsService := service.NewRecordsService(actionsRepo, repository.NewRecordsRepo(&dbCfg))
	serv := api.New(&api.ServicesList{
		UserService:    userService,
		ActionsService: actionsService,
		RecordsService: recordsService,
		JwtService: jwtservice.New(
			cfg.GetString("JWT_SECRET"),
			cfg.GetDuration("JWT_TTL", 24*time.Hour),
		),
	})
	defer cleanup.CleanUp()
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
