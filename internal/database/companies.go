package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crypto-portfolio-go/internal/models"

	"go.uber.org/zap"
)

func (s *Service) InsertCompany(ctx context.Context, company models.Company) (bool, error) {
	zap.L().Info("Inserting company", zap.Int("id", company.Id), zap.String("name", company.Name))

	result, err := s.db.ExecContext(ctx, queryInsertCompany, company.Id, company.Name, company.Identifier)
	if err != nil {
		if isUniqueViolation(err) {
			zap.L().Warn("Duplicate company rejected", zap.Int("id", company.Id))
			return false, nil
		}
		zap.L().Error("Failed to insert company", zap.Int("id", company.Id), zap.Error(err))
		return false, fmt.Errorf("unable to insert company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *Service) GetCompanyById(ctx context.Context, id int) (*models.Company, error) {
	var company models.Company
	err := s.db.QueryRowContext(ctx, queryGetCompanyById, id).Scan(&company.Id, &company.Name, &company.Identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("Failed to query company by ID", zap.Int("company_id", id), zap.Error(err))
		return nil, fmt.Errorf("unable to query company by ID: %w", err)
	}
	return &company, nil
}

func (s *Service) GetCompanies(ctx context.Context) ([]models.Company, error) {
	rows, err := s.db.QueryContext(ctx, queryGetCompanies)
	if err != nil {
		zap.L().Error("Failed to query companies", zap.Error(err))
		return nil, fmt.Errorf("unable to query companies: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var companies []models.Company
	for rows.Next() {
		var company models.Company
		if err := rows.Scan(&company.Id, &company.Name, &company.Identifier); err != nil {
			return nil, fmt.Errorf("unable to scan company row: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}

	zap.L().Info("Retrieved companies", zap.Int("count", len(companies)))
	return companies, nil
}

func (s *Service) UpdateCompany(ctx context.Context, company models.Company) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryUpdateCompany, company.Name, company.Identifier, company.Id)
	if err != nil {
		zap.L().Error("Failed to update company", zap.Int("company_id", company.Id), zap.Error(err))
		return false, fmt.Errorf("unable to update company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *Service) DeleteCompany(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryDeleteCompany, id)
	if err != nil {
		zap.L().Error("Failed to delete company", zap.Int("company_id", id), zap.Error(err))
		return false, fmt.Errorf("unable to delete company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		zap.L().Debug("No company found to delete", zap.Int("company_id", id))
		return false, nil
	}
	zap.L().Info("Company deleted", zap.Int("company_id", id))
	return true, nil
}
