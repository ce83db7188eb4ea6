package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/burhani-census/census-api/internal/config"
	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Bootstraps an operator account so scanning endpoints can be used
// before any admin UI exists.
func main() {
	username := flag.String("username", "", "operator username (required)")
	password := flag.String("password", "", "operator password (required)")
	fullName := flag.String("name", "", "operator full name (required)")
	role := flag.String("role", string(models.OperatorScanner), "operator role: admin or scanner")
	flag.Parse()

	if *username == "" || *password == "" || *fullName == "" {
		flag.Usage()
		log.Fatal("username, password and name are required")
	}
	if *role != string(models.OperatorAdmin) && *role != string(models.OperatorScanner) {
		log.Fatalf("invalid role %q: must be admin or scanner", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	operator := &models.Operator{
		Username:     *username,
		PasswordHash: string(hash),
		FullName:     *fullName,
		Role:         models.OperatorRole(*role),
	}

	operatorRepo := database.NewOperatorRepository(db)
	if err := operatorRepo.Create(operator); err != nil {
		log.Fatalf("Failed to create operator: %v", err)
	}

	fmt.Printf("Operator %s (%s) created with id %s\n", operator.Username, operator.Role, operator.ID)
}
