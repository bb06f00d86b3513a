package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/escusoft/escuela-backend/internal/config"
	"github.com/escusoft/escuela-backend/internal/database"
	"github.com/escusoft/escuela-backend/internal/logger"
	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/repository"
	"github.com/escusoft/escuela-backend/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, authService, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	username := promptLine(reader, "Enter Username: ")
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	firstName := promptLine(reader, "Enter First Name: ")
	lastName := promptLine(reader, "Enter Last Name: ")
	if firstName == "" || lastName == "" {
		fmt.Println("Error: First and last name are required")
		return
	}

	email := promptLine(reader, "Enter Email: ")
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	dniStr := promptLine(reader, "Enter DNI: ")
	dni, err := strconv.Atoi(dniStr)
	if err != nil || dni <= 0 {
		fmt.Println("Error: DNI must be a positive number")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 4 {
		fmt.Println("Error: Password must be at least 4 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	u, err := userService.Register(ctx, &model.RegisterUserRequest{
		Username:  username,
		Password:  password,
		Email:     email,
		DNI:       dni,
		FirstName: firstName,
		LastName:  lastName,
		Type:      model.RoleAdmin.String(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %d\n", u.Username, u.Detail.Email, u.ID)
}

func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
