package main

import (
	"flag"
	"log"
	"os"

	"github.com/cardnews/cardnews-backend/internal/config"
	"github.com/cardnews/cardnews-backend/internal/database"
	"github.com/cardnews/cardnews-backend/internal/migration"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "config file path (default: configs/config.$APP_ENV.yaml)")
	dryRun := flag.Bool("dry-run", false, "show what would be migrated without executing")
	verify := flag.Bool("verify", false, "print row counts of every table")
	seed := flag.Bool("seed", false, "insert the admin account and default template even if users exist")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	files := config.LoadDotEnv()
	log.Printf("loaded env files: %v", files)

	path := *configPath
	if path == "" {
		path = config.Path(os.Getenv("APP_ENV"))
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := database.Open(cfg, logLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	if *dryRun {
		runDryRun(db)
		return
	}

	if *verify {
		runVerify(db)
		return
	}

	if err := migration.Run(db); err != nil {
		log.Fatalf("[migrate] failed: %v", err)
	}
	log.Println("[migrate] schema up to date")

	if *seed {
		if err := migration.Seed(db); err != nil {
			log.Fatalf("[seed] failed: %v", err)
		}
		log.Println("[seed] admin account and default template inserted")
	}
}

func runDryRun(db *gorm.DB) {
	for _, model := range migration.Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			log.Printf("[dry-run] %T: %v", model, err)
			continue
		}
		state := "create"
		if db.Migrator().HasTable(model) {
			state = "alter"
		}
		log.Printf("[dry-run] %-14s %s", stmt.Schema.Table, state)
	}
}

func runVerify(db *gorm.DB) {
	for _, model := range migration.Models() {
		if !db.Migrator().HasTable(model) {
			log.Printf("[verify] %T: table missing", model)
			continue
		}
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			log.Printf("[verify] %T: %v", model, err)
			continue
		}
		log.Printf("[verify] %T: %d rows", model, count)
	}
}
