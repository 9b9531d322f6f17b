package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"c2panel/internal/auth"
	"c2panel/internal/config"
	"c2panel/internal/db"
	"c2panel/internal/logging"
	"c2panel/internal/model"
	"c2panel/internal/repository"
	"c2panel/internal/service"
)

// SeedUser is a user entry in the seed file.
type SeedUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Role     string `json:"role"`
	// Legacy stores the password as plaintext, as older rows did.
	Legacy bool `json:"legacy"`
}

// SeedData is the structure of the seed file.
type SeedData struct {
	Users     []SeedUser       `json:"users"`
	Computers []model.Computer `json:"computers"`
}

func defaultSeed() SeedData {
	data := SeedData{
		Users: []SeedUser{{
			Email:    "admin@c2panel.local",
			Password: envOr("SEED_ADMIN_PASSWORD", "admin123"),
			Username: "Administrator",
			Role:     auth.RoleAdmin,
		}},
	}
	for _, c := range service.SampleComputers {
		data.Computers = append(data.Computers, c.Computer)
	}
	return data
}

func main() {
	file := flag.String("file", "", "path to a JSON seed file; defaults to the sample computers and one admin")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.NewJSON(os.Stdout, cfg.Debug)

	data := defaultSeed()
	if *file != "" {
		loaded, err := loadSeedFile(*file)
		if err != nil {
			logger.Error(ctx, "read seed file", "file", *file, "error", err)
			os.Exit(1)
		}
		data = loaded
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		logger.Error(ctx, "run migrations", "error", err)
		os.Exit(1)
	}

	users, computers, err := seed(ctx, repository.NewUserRepository(gormDB), repository.NewComputerRepository(gormDB), data)
	if err != nil {
		logger.Error(ctx, "seed", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "seed completed", "users", users, "computers", computers)
}

func loadSeedFile(path string) (SeedData, error) {
	var data SeedData
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("parse seed file: %w", err)
	}
	return data, nil
}

// seed inserts or updates every user (matched by email) and computer (matched by ID).
func seed(ctx context.Context, users repository.UserRepository, computers repository.ComputerRepository, data SeedData) (int, int, error) {
	for _, u := range data.Users {
		if err := seedUser(ctx, users, u); err != nil {
			return 0, 0, fmt.Errorf("user %s: %w", u.Email, err)
		}
	}
	for i := range data.Computers {
		if data.Computers[i].ComputerID == "" {
			return 0, 0, errors.New("computer without computer_id")
		}
		if err := computers.Save(ctx, &data.Computers[i]); err != nil {
			return 0, 0, fmt.Errorf("computer %s: %w", data.Computers[i].ComputerID, err)
		}
	}
	return len(data.Users), len(data.Computers), nil
}

func seedUser(ctx context.Context, users repository.UserRepository, u SeedUser) error {
	if u.Email == "" || u.Password == "" {
		return errors.New("email and password are required")
	}
	if u.Role == "" {
		u.Role = auth.RoleViewer
	}
	if !auth.ValidRole(u.Role) {
		return fmt.Errorf("unknown role %q", u.Role)
	}

	password := u.Password
	if !u.Legacy {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		password = hash
	}

	existing, err := users.FindByEmail(ctx, u.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		existing.Password = password
		existing.Username = u.Username
		existing.Role = u.Role
		return users.Update(ctx, existing)
	}
	return users.Create(ctx, &model.User{
		Email:    u.Email,
		Password: password,
		Username: u.Username,
		Role:     u.Role,
	})
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
