package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/woodveneer/storefront/internal/adapters/xlsx"
	"github.com/woodveneer/storefront/internal/app"
	"github.com/woodveneer/storefront/internal/config"
	"github.com/woodveneer/storefront/internal/domain"
	"github.com/woodveneer/storefront/internal/usecase"
)

const usage = "expected one of: create-admin, reset-password, export-products"

func main() {
	_ = godotenv.Load()
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	createCmd := flag.NewFlagSet("create-admin", flag.ExitOnError)
	cUser := createCmd.String("username", "", "login name")
	cPass := createCmd.String("password", "", "password (min 6 characters)")
	cEmail := createCmd.String("email", "", "email address")
	cName := createCmd.String("name", "", "full name")
	cRole := createCmd.String("role", string(domain.RoleSuperAdmin), "super_admin, admin or editor")

	resetCmd := flag.NewFlagSet("reset-password", flag.ExitOnError)
	rUser := resetCmd.String("username", "", "login name")
	rPass := resetCmd.String("password", "", "new password")

	exportCmd := flag.NewFlagSet("export-products", flag.ExitOnError)
	out := exportCmd.String("out", "", "output .xlsx path (default products-<timestamp>.xlsx)")
	category := exportCmd.String("category", "", "only this category")

	ctx := context.Background()
	switch os.Args[1] {
	case "create-admin":
		_ = createCmd.Parse(os.Args[2:])
		if *cUser == "" || *cPass == "" || *cEmail == "" {
			fmt.Println("username, password and email are required")
			createCmd.PrintDefaults()
			os.Exit(1)
		}
		if *cName == "" {
			*cName = *cUser
		}
		a := open()
		created, err := a.AdminUC.Create(ctx, operator, usecase.NewAdmin{
			Username: *cUser,
			Email:    *cEmail,
			FullName: *cName,
			Password: *cPass,
			Role:     domain.Role(*cRole),
		})
		if err != nil {
			zlog.Fatal().Err(err).Msg("create admin")
		}
		fmt.Printf("Admin '%s' created with role %s.\n", created.Username, created.Role)

	case "reset-password":
		_ = resetCmd.Parse(os.Args[2:])
		if *rUser == "" || *rPass == "" {
			fmt.Println("username and password are required")
			resetCmd.PrintDefaults()
			os.Exit(1)
		}
		a := open()
		target, err := a.AdminUC.Admins.FindByUsername(ctx, *rUser)
		if err != nil {
			zlog.Fatal().Err(err).Str("username", *rUser).Msg("find admin")
		}
		if _, err := a.AdminUC.Update(ctx, operator, target.ID, usecase.AdminChange{Password: rPass}); err != nil {
			zlog.Fatal().Err(err).Msg("reset password")
		}
		fmt.Printf("Password for '%s' updated.\n", *rUser)

	case "export-products":
		_ = exportCmd.Parse(os.Args[2:])
		path := *out
		if path == "" {
			path = xlsx.Filename("products", time.Now())
		}
		a := open()
		n, err := exportProducts(ctx, a.ProductUC, domain.ProductFilter{Category: *category}, path)
		if err != nil {
			zlog.Fatal().Err(err).Msg("export products")
		}
		fmt.Printf("%d products written to %s\n", n, path)

	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

// operator is the actor for CLI changes; whoever holds database credentials
// already has super_admin reach.
var operator = &domain.Admin{Role: domain.RoleSuperAdmin}

func open() *app.App {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("invalid configuration")
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := app.Migrate(db); err != nil {
		zlog.Fatal().Err(err).Msg("failed to migrate database")
	}
	a, err := app.NewApp(db, cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create app")
	}
	return a
}

func exportProducts(ctx context.Context, uc *usecase.ProductUC, f domain.ProductFilter, path string) (int, error) {
	sheet, err := xlsx.NewProductSheet()
	if err != nil {
		return 0, err
	}
	defer sheet.Close()
	if err := uc.Each(ctx, f, sheet.Add); err != nil {
		return 0, err
	}
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if _, err := sheet.WriteTo(file); err != nil {
		file.Close()
		return 0, err
	}
	return sheet.Rows(), file.Close()
}
