package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/seed/seeders"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the English learning database with demo data",
	Long: `Creates demo accounts (admin, approved teacher, students) and a
published starter course per level. Running it twice is safe: existing rows
are skipped.`,
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Seed users and courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSeeder(cmd, (*seeders.MainSeeder).SeedAll)
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Seed demo accounts only",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSeeder(cmd, (*seeders.MainSeeder).SeedUsersOnly)
	},
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Seed courses and lessons only (needs the demo teacher)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSeeder(cmd, (*seeders.MainSeeder).SeedCoursesOnly)
	},
}

func init() {
	rootCmd.PersistentFlags().String("driver", "", "Database driver: postgres or sqlite (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().String("db", "", "DSN or sqlite file (overrides DATABASE_URL / DB_DATABASE)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log every SQL statement")

	rootCmd.AddCommand(allCmd, usersCmd, coursesCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func withSeeder(cmd *cobra.Command, run func(*seeders.MainSeeder) error) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := run(seeders.NewMainSeeder(db)); err != nil {
		return err
	}
	log.Info("Seeding operation completed successfully")
	return nil
}

func openDatabase(cmd *cobra.Command) (*gorm.DB, error) {
	driver, _ := cmd.Flags().GetString("driver")
	if driver == "" {
		driver = os.Getenv("DB_DRIVER")
	}
	driver = strings.ToLower(driver)

	dsn, _ := cmd.Flags().GetString("db")

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		if dsn == "" {
			dsn = os.Getenv("DB_DATABASE")
		}
		if dsn == "" {
			dsn = "english_api.db"
		}
		dialector = sqlite.Open(dsn)
	case "", "postgres":
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			return nil, fmt.Errorf("postgres needs --db or DATABASE_URL")
		}
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}

	level := logger.Warn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	log.WithField("driver", dialector.Name()).Info("Connected to database")
	return db, nil
}
