package main

import (
	"log"

	"local-services-server/database"
	"local-services-server/models"
)

func seedServiceCategories() error {
	db := database.GetDB()

	categories := []models.ServiceCategory{
		{
			Name:        "Plumbing",
			Description: "Leak repairs, taps, pipes and plumbing installations",
			Icon:        "water",
			Color:       "#2f80ed",
			IsActive:    true,
			SortOrder:   1,
		},
		{
			Name:        "Electrical",
			Description: "Wiring, fittings, electrical installation and repair",
			Icon:        "flash",
			Color:       "#f2c94c",
			IsActive:    true,
			SortOrder:   2,
		},
		{
			Name:        "Cleaning",
			Description: "Professional home and office cleaning",
			Icon:        "sparkles",
			Color:       "#27ae60",
			IsActive:    true,
			SortOrder:   3,
		},
		{
			Name:        "Painting",
			Description: "Interior and exterior painting, preparation and finishing",
			Icon:        "paint-roller",
			Color:       "#eb5757",
			IsActive:    true,
			SortOrder:   4,
		},
		{
			Name:        "Carpentry",
			Description: "Doors, windows, furniture repair and woodwork",
			Icon:        "hammer",
			Color:       "#9b51e0",
			IsActive:    true,
			SortOrder:   5,
		},
		{
			Name:        "Appliance Repair",
			Description: "Fridges, washing machines and other home appliances",
			Icon:        "tools",
			Color:       "#56ccf2",
			IsActive:    true,
			SortOrder:   6,
		},
		{
			Name:        "Air Conditioning",
			Description: "AC installation, servicing and ventilation",
			Icon:        "snow",
			Color:       "#2d9cdb",
			IsActive:    true,
			SortOrder:   7,
		},
		{
			Name:        "Gardening",
			Description: "Lawn care, pruning and general garden maintenance",
			Icon:        "leaf",
			Color:       "#6fcf97",
			IsActive:    true,
			SortOrder:   8,
		},
	}

	for _, category := range categories {
		var existing models.ServiceCategory
		if err := db.Where("name = ?", category.Name).First(&existing).Error; err != nil {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Failed to create category %s: %v", category.Name, err)
				return err
			}
			log.Printf("✅ Created category: %s", category.Name)
		}
	}

	return nil
}
