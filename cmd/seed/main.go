package main

import (
	"fmt"

	"github.com/petits-moulins/api/internal/config"
	"github.com/petits-moulins/api/internal/logger"
	"github.com/petits-moulins/api/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 班组
	groups := []models.Group{
		{
			Name:        "Les Poussins",
			AgeMin:      1,
			AgeMax:      2,
			Description: "Groupe des poupons et trottineurs",
			Color:       "#f1c40f",
			Active:      true,
		},
		{
			Name:        "Les Papillons",
			AgeMin:      2,
			AgeMax:      4,
			Description: "Groupe des 2 à 4 ans",
			Color:       "#2ecc71",
			Active:      true,
		},
		{
			Name:        "Les Explorateurs",
			AgeMin:      4,
			AgeMax:      6,
			Description: "Groupe préscolaire",
			Color:       "#3498db",
			Active:      true,
		},
	}

	for _, grp := range groups {
		var existing models.Group
		if err := models.DB.Where("name = ?", grp.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&grp).Error; err != nil {
				stdLog.Printf("Failed to create group %s: %v", grp.Name, err)
			} else {
				stdLog.Printf("Created group: %s", grp.Name)
			}
		} else {
			stdLog.Printf("Group already exists: %s", grp.Name)
		}
	}

	// 教育者
	educators := []models.Educator{
		{
			Name:           "Marie Tremblay",
			Email:          "marie.tremblay@lespetitsmoulins.ca",
			Phone:          "514-555-0101",
			Specialization: "Éducation à la petite enfance",
			Active:         true,
		},
		{
			Name:           "Sophie Gagnon",
			Email:          "sophie.gagnon@lespetitsmoulins.ca",
			Phone:          "514-555-0102",
			Specialization: "Motricité et psychomotricité",
			Active:         true,
		},
		{
			Name:           "Julie Bergeron",
			Email:          "julie.bergeron@lespetitsmoulins.ca",
			Phone:          "514-555-0103",
			Specialization: "Éveil musical",
			Active:         false,
		},
	}

	for _, edu := range educators {
		var existing models.Educator
		if err := models.DB.Where("email = ?", edu.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&edu).Error; err != nil {
				stdLog.Printf("Failed to create educator %s: %v", edu.Name, err)
			} else {
				stdLog.Printf("Created educator: %s", edu.Name)
			}
		} else {
			stdLog.Printf("Educator already exists: %s", edu.Name)
		}
	}

	// 家长账号
	parents := []models.Parent{
		{
			Name:     "Isabelle Roy",
			Email:    "isabelle.roy@example.com",
			Phone:    "514-555-0201",
			Children: models.StringArray{"Émile Roy", "Clara Roy"},
			ChildrenDetails: models.JSONArray{
				map[string]interface{}{"name": "Émile Roy", "group": "Les Papillons", "age": 3},
				map[string]interface{}{"name": "Clara Roy", "group": "Les Poussins", "age": 1},
			},
			Status: "active",
		},
		{
			Name:     "Marc Lavoie",
			Email:    "marc.lavoie@example.com",
			Phone:    "514-555-0202",
			Children: models.StringArray{"Félix Lavoie"},
			ChildrenDetails: models.JSONArray{
				map[string]interface{}{"name": "Félix Lavoie", "group": "Les Explorateurs", "age": 5},
			},
			Status: "active",
		},
		{
			Name:     "Caroline Fortin",
			Email:    "caroline.fortin@example.com",
			Phone:    "514-555-0203",
			Children: models.StringArray{"Léa Fortin"},
			ChildrenDetails: models.JSONArray{
				map[string]interface{}{"name": "Léa Fortin", "group": "Les Papillons", "age": 2},
			},
			Status: "inactive",
		},
	}

	for _, parent := range parents {
		var existing models.Parent
		if err := models.DB.Where("email = ?", parent.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&parent).Error; err != nil {
				stdLog.Printf("Failed to create parent %s: %v", parent.Email, err)
			} else {
				stdLog.Printf("Created parent: %s", parent.Email)
			}
		} else {
			existing.Name = parent.Name
			existing.Phone = parent.Phone
			existing.Children = parent.Children
			existing.ChildrenDetails = parent.ChildrenDetails
			existing.Status = parent.Status
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update parent %s: %v", parent.Email, err)
			} else {
				stdLog.Printf("Updated parent: %s", parent.Email)
			}
		}
	}

	fmt.Println("\n✅ Données de démonstration créées!")
	fmt.Println("Résumé:")
	fmt.Println("- 3 groupes")
	fmt.Println("- 3 éducatrices")
	fmt.Println("- 3 comptes parents")
}
