// Command admin-user bootstraps an admin account directly in the database.
// Intended for first-run setup; subsequent staff accounts are created through
// the admin API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"firmdesk.backend/internal/config"
	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/internal/infrastructure/datasources/postgres"
	"firmdesk.backend/internal/infrastructure/repositories"
	"firmdesk.backend/pkg/crypto"
)

var openAdminUserDB = postgres.NewConnection

var openAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type adminUserRuntime interface {
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
}

type adminUserDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminUserRuntime, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultAdminUserDeps() adminUserDeps {
	return adminUserDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminUserRuntime, io.Closer, error) {
			db, err := openAdminUserDB(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := openAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return repositories.NewUserRepository(db), sqlDB, nil
		},
		out: os.Stdout,
	}
}

func runAdminUser(args []string, deps adminUserDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		def := defaultAdminUserDeps()
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("admin-user", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin email address (required)")
	nameFlag := fs.String("name", "Administrator", "full name")
	passwordFlag := fs.String("password", "", "password (generated when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email := entities.NormalizeEmail(*emailFlag)
	if email == "" {
		return fmt.Errorf("--email is required")
	}

	password := *passwordFlag
	generated := false
	if password == "" {
		var err error
		password, err = crypto.GenerateTempPassword()
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		generated = true
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	if existing, err := runtime.GetByEmail(ctx, email); err == nil && existing != nil {
		return fmt.Errorf("user %s already exists (id=%d)", email, existing.ID)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:        email,
		FullName:     *nameFlag,
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := runtime.Create(ctx, user); err != nil {
		return fmt.Errorf("failed creating admin user: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created admin user")
	_, _ = fmt.Fprintf(deps.out, "user_id=%d\n", user.ID)
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", email)
	if generated {
		_, _ = fmt.Fprintf(deps.out, "PASSWORD=%s\n", password)
	}
	return nil
}

func main() {
	if err := runAdminUser(os.Args[1:], defaultAdminUserDeps()); err != nil {
		log.Fatal(err)
	}
}
