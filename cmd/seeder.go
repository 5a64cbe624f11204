package cmd

import (
	"fmt"
	"log"
	"time"

	expenseDatamodel "github.com/FabricioUDB/control-gastos/internal/core/datamodel/expense"
	"github.com/FabricioUDB/control-gastos/internal/ledger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample expenses for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		const demoUser = "demo-user"

		if clearData {
			if err := db.Where("user_id = ?", demoUser).Delete(&expenseDatamodel.Expense{}).Error; err != nil {
				log.Fatalf("failed to clear demo expenses: %v", err)
			}
			fmt.Println("Cleared existing demo expenses")
		}

		loc := cfg.App.Location()
		now := time.Now().In(loc)

		samples := []struct {
			name     string
			category string
			amount   float64
			day      int
			note     string
		}{
			{"Supermercado semanal", "Alimentación", 54.30, 2, ""},
			{"Abono de bus", "Transporte", 22.00, 3, "mensual"},
			{"Cine", "Entretenimiento", 8.50, 5, ""},
			{"Farmacia", "Salud", 12.75, 8, ""},
			{"Factura de luz", "Servicios", 41.20, 10, ""},
			{"Almuerzo con amigos", "Alimentación", 18.90, 12, ""},
			{"Curso en línea", "Educación", 29.99, 15, ""},
		}

		for _, s := range samples {
			occurredAt := time.Date(now.Year(), now.Month(), s.day, 13, 0, 0, 0, loc)
			row := &expenseDatamodel.Expense{
				ID:         uuid.NewString(),
				UserID:     demoUser,
				Name:       s.name,
				Category:   s.category,
				Amount:     s.amount,
				OccurredAt: occurredAt,
				Note:       s.note,
				CreatedAt:  occurredAt,
			}
			if err := db.Create(row).Error; err != nil {
				log.Fatalf("failed to seed expense %q: %v", s.name, err)
			}
		}

		fmt.Printf("Seeded %d expenses for user %s\n", len(samples), demoUser)
		fmt.Printf("Suggested categories: %v\n", ledger.SuggestedCategories)
	},
}
