package main

import (
	"log"
	"net/http"

	_ "github.com/MatiasBordenave/Practica-Backend/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/MatiasBordenave/Practica-Backend/internal/auth"
	"github.com/MatiasBordenave/Practica-Backend/internal/cache"
	"github.com/MatiasBordenave/Practica-Backend/internal/config"
	"github.com/MatiasBordenave/Practica-Backend/internal/db"
	"github.com/MatiasBordenave/Practica-Backend/internal/handler"
	"github.com/MatiasBordenave/Practica-Backend/internal/model"
	"github.com/MatiasBordenave/Practica-Backend/internal/repository"
	"github.com/MatiasBordenave/Practica-Backend/internal/router"
	"github.com/MatiasBordenave/Practica-Backend/internal/service"
)

// @title API de Usuarios
// @version 1.0
// @description REST API for user accounts: registration, login, role-based CRUD and soft deletion.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	userService := service.NewUserService(userRepo, jwtService, cacheClient, cfg.DeleteMode)

	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)

	router.Register(e, cfg, authHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
