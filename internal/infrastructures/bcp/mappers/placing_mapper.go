package mappers

import (
	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/bcp/dto"
)

func ToPlacingRecords(rows []dto.PlacingRow) []models.PlacingRecord {
	records := make([]models.PlacingRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ToPlacingRecord(row))
	}
	return records
}

func ToPlacingRecord(row dto.PlacingRow) models.PlacingRecord {
	record := models.PlacingRecord{
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Placing:        row.Placing,
		Team:           flatOrNested(row.TeamName, row.Team),
		Faction:        flatOrNested(row.ArmyName, row.Army),
		ExternalUserID: row.UserID,
	}
	if row.NumWins != nil {
		record.Wins = *row.NumWins
	}
	if row.PathToVictory != nil {
		record.PathToVictory = *row.PathToVictory
	}

	return record
}

func flatOrNested(flat string, nested *dto.NamedItem) string {
	if flat != "" {
		return flat
	}
	if nested != nil {
		return nested.Name
	}
	return ""
}
