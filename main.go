package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/routes"
	"hotel-booking/schema"
	"hotel-booking/utils"
)

var (
	seedDemo     bool
	schemaFormat string
	schemaTables string
)

var rootCmd = &cobra.Command{
	Use:          "hotel-booking",
	Short:        "Hotel booking data model and CRUD API",
	Long:         `hotel-booking migrates the users/hotels/rooms/bookings/payments/reviews schema into MySQL, PostgreSQL or SQLite and serves a JSON CRUD API over it.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and serve the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the tables and exit",
	RunE:  runMigrate,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Migrate, then print the live schema",
	RunE:  runSchema,
}

func init() {
	migrateCmd.Flags().BoolVar(&seedDemo, "seed", false, "Insert a demo hotel, rooms and users when the database is empty")
	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "text", "Output format: text or ddl")
	schemaCmd.Flags().StringVarP(&schemaTables, "tables", "t", "", "Specific tables (comma-separated, default: all six)")

	rootCmd.AddCommand(serveCmd, migrateCmd, schemaCmd)
}

// openDatabase loads settings and returns a migrated connection.
func openDatabase() (*gorm.DB, config.Settings, error) {
	s, err := config.LoadSettings()
	if err != nil {
		return nil, s, err
	}
	db, err := config.Open(s.Driver, s.DSN, s.LogLevel)
	if err != nil {
		return nil, s, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func closeDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("warning: failed to close database: %v", err)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, s, err := openDatabase()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer closeDatabase(db)

	if seedDemo || s.SeedDemo {
		if err := config.SeedDatabase(db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	log.Printf("✅ %s schema is up to date (%s)", s.Driver, strings.Join(models.TableNames, ", "))
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	db, _, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	tables := models.TableNames
	if schemaTables != "" {
		tables = utils.SplitCSV(schemaTables)
	}

	inspector := schema.NewInspector(db)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch schemaFormat {
	case "ddl":
		ddl, err := inspector.DDL(ctx, tables)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, ddl)
		return err
	case "text":
		s, err := inspector.Inspect(ctx, tables)
		if err != nil {
			return fmt.Errorf("failed to extract schema: %w", err)
		}
		return schema.NewTextFormatter(out).Format(s)
	}
	return fmt.Errorf("invalid format %q: must be text or ddl", schemaFormat)
}

func runServe(cmd *cobra.Command, args []string) error {
	if _, err := config.ConnectDatabase(); err != nil {
		return fmt.Errorf("database connect failed: %w", err)
	}
	db := config.DB
	defer closeDatabase(db)
	log.Println("✅ Database connection established and migrations applied.")

	router := routes.SetupRouter(routes.NewControllers(db))

	addr := ":" + utils.EnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("✅ Server stopped gracefully")
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if err := rootCmd.Execute(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}
