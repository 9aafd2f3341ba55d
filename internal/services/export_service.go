package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/reviewhub/review-service/internal/models"
	"github.com/reviewhub/review-service/internal/repositories"
)

const exportPageSize = 100

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportTitles builds an xlsx workbook of the full catalog, one row per
// title with its taxonomy and derived rating.
func (s *exportService) ExportTitles(ctx context.Context) (*excelize.File, error) {
	file := excelize.NewFile()

	const sheet = "Titles"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to prepare export sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Year", "Category", "Genres", "Rating"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build export header: %w", err)
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to build export header: %w", err)
		}
	}

	row := 2
	offset := 0
	for {
		titles, total, err := s.repo.Title().List(ctx, repositories.TitleFilters{
			Limit:  exportPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load titles for export: %w", err)
		}

		for _, title := range titles {
			if err := s.writeTitleRow(file, sheet, row, title); err != nil {
				return nil, err
			}
			row++
		}

		offset += len(titles)
		if len(titles) == 0 || int64(offset) >= total {
			break
		}
	}

	s.logger.Info("Catalog exported", "titles", row-2)
	return file, nil
}

func (s *exportService) writeTitleRow(file *excelize.File, sheet string, row int, title *models.Title) error {
	category := ""
	if title.Category != nil {
		category = title.Category.Slug
	}

	genres := make([]string, len(title.Genres))
	for i, genre := range title.Genres {
		genres[i] = genre.Slug
	}

	var rating interface{}
	if title.Rating != nil {
		rating = *title.Rating
	}

	values := []interface{}{title.ID, title.Name, title.Year, category, strings.Join(genres, ", "), rating}
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to build export row: %w", err)
		}
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to build export row: %w", err)
		}
	}

	return nil
}
