package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tourlms/config"
	"tourlms/database"
	"tourlms/models"
	courseModels "tourlms/models/course"
	"tourlms/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// importStats counts what a catalog import did
type importStats struct {
	Inserted int
	Updated  int
	Skipped  int
}

func main() {
	config.LoadConfig()
	utils.Log = utils.NewLogger(config.AppConfig.IsDevelopment())
	database.ConnectDb()

	path := "catalog.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		utils.Log.Fatal().Err(err).Str("path", path).Msg("open catalog CSV")
	}
	defer file.Close()

	stats, err := importCatalog(database.Database.Db, file)
	if err != nil {
		utils.Log.Fatal().Err(err).Msg("import catalog")
	}

	utils.Log.Info().
		Int("inserted", stats.Inserted).
		Int("updated", stats.Updated).
		Int("skipped", stats.Skipped).
		Msg("=== Import Complete ===")
}

// importCatalog upserts courses from a CSV with the header
// title,description,category,facilitator_email,thumbnail_url,published.
// A course is matched on title and facilitator.
func importCatalog(db *gorm.DB, r io.Reader) (importStats, error) {
	var stats importStats

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return stats, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) < 2 {
		return stats, fmt.Errorf("CSV file is empty or has only headers")
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	facilitators := make(map[string]models.User)

	for i, row := range records[1:] {
		title := getField(row, headerIndex, "title")
		email := strings.ToLower(getField(row, headerIndex, "facilitator_email"))
		if title == "" || email == "" {
			stats.Skipped++
			continue
		}

		facilitator, ok := facilitators[email]
		if !ok {
			err := db.Where("email = ? AND role IN ? AND is_deleted = ?", email,
				[]string{models.RoleFacilitator, models.RoleAdmin}, false).First(&facilitator).Error
			if err != nil {
				utils.Log.Warn().Int("row", i+2).Str("email", email).Msg("unknown facilitator, skipping row")
				stats.Skipped++
				continue
			}
			facilitators[email] = facilitator
		}

		published := parseBool(getField(row, headerIndex, "published"))
		status := "DRAFT"
		if published {
			status = "ACTIVE"
		}

		var existing courseModels.Course
		err := db.Where("title = ? AND facilitator_id = ? AND is_deleted = ?", title, facilitator.ID, false).First(&existing).Error
		if err != nil {
			course := courseModels.Course{
				Key:              utils.GenerateCourseKey(),
				Title:            title,
				Description:      getField(row, headerIndex, "description"),
				Category:         getField(row, headerIndex, "category"),
				FacilitatorID:    facilitator.ID,
				FacilitatorName:  facilitator.Name,
				ThumbnailURL:     getField(row, headerIndex, "thumbnail_url"),
				EnrolledStudents: datatypes.JSONSlice[uint]{},
				Status:           status,
				IsPublished:      published,
			}
			if err := db.Create(&course).Error; err != nil {
				utils.Log.Error().Err(err).Int("row", i+2).Str("title", title).Msg("insert course")
				continue
			}
			stats.Inserted++
			continue
		}

		existing.Description = getField(row, headerIndex, "description")
		existing.Category = getField(row, headerIndex, "category")
		existing.ThumbnailURL = getField(row, headerIndex, "thumbnail_url")
		existing.FacilitatorName = facilitator.Name
		existing.IsPublished = published
		existing.Status = status
		if err := db.Save(&existing).Error; err != nil {
			utils.Log.Error().Err(err).Int("row", i+2).Str("title", title).Msg("update course")
			continue
		}
		stats.Updated++
	}

	return stats, nil
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseBool(s string) bool {
	val, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return s == "yes" || s == "y"
	}
	return val
}
