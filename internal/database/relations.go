package database

import (
	"context"
	"database/sql"
	"fmt"

	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateRelation links a user to a company. The (user, company) pair is
// unique; a second insert fails with store.ErrDuplicateRelation.
func (s *Service) CreateRelation(ctx context.Context, rel models.UserCompanyRelation) error {
	zap.L().Info("Creating user-company relation",
		zap.Int("user_id", rel.UserId),
		zap.Int("company_id", rel.CompanyId),
		zap.String("invested_amount", rel.InvestedAmount.String()))

	_, err := s.db.ExecContext(ctx, queryInsertRelation,
		rel.UserId, rel.CompanyId, rel.InvestedAmount.String(), rel.StartDate.Format("2006-01-02"))
	if err != nil {
		if isUniqueViolation(err) {
			zap.L().Warn("Duplicate relation rejected",
				zap.Int("user_id", rel.UserId),
				zap.Int("company_id", rel.CompanyId))
			return fmt.Errorf("%w: user %d, company %d", store.ErrDuplicateRelation, rel.UserId, rel.CompanyId)
		}
		zap.L().Error("Failed to insert relation", zap.Error(err))
		return fmt.Errorf("unable to insert relation: %w", err)
	}
	return nil
}

// UpdateInvestedAmount replaces the invested amount of an existing relation
// (replace, not accumulate). Returns false when the relation does not exist.
func (s *Service) UpdateInvestedAmount(ctx context.Context, userId, companyId int, amount decimal.Decimal) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryUpdateInvestedAmount, amount.String(), userId, companyId)
	if err != nil {
		zap.L().Error("Failed to update invested amount",
			zap.Int("user_id", userId),
			zap.Int("company_id", companyId),
			zap.Error(err))
		return false, fmt.Errorf("unable to update invested amount: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *Service) DeleteRelation(ctx context.Context, userId, companyId int) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryDeleteRelation, userId, companyId)
	if err != nil {
		zap.L().Error("Failed to delete relation",
			zap.Int("user_id", userId),
			zap.Int("company_id", companyId),
			zap.Error(err))
		return false, fmt.Errorf("unable to delete relation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *Service) UsersByCompany(ctx context.Context, companyId int) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, queryGetUsersByCompany, companyId)
	if err != nil {
		zap.L().Error("Failed to query users by company", zap.Int("company_id", companyId), zap.Error(err))
		return nil, fmt.Errorf("unable to query users by company: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var userIds []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("unable to scan user id: %w", err)
		}
		userIds = append(userIds, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relation rows: %w", err)
	}
	return userIds, nil
}

func (s *Service) RelationsByUser(ctx context.Context, userId int) ([]models.UserCompanyRelation, error) {
	rows, err := s.db.QueryContext(ctx, queryGetRelationsByUser, userId)
	if err != nil {
		zap.L().Error("Failed to query relations by user", zap.Int("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query relations by user: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var relations []models.UserCompanyRelation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, err
		}
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relation rows: %w", err)
	}
	return relations, nil
}

// GetRelation returns one relation, or nil when the pair is not linked.
func (s *Service) GetRelation(ctx context.Context, userId, companyId int) (*models.UserCompanyRelation, error) {
	rows, err := s.db.QueryContext(ctx, queryGetRelation, userId, companyId)
	if err != nil {
		return nil, fmt.Errorf("unable to query relation: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading relation row: %w", err)
		}
		return nil, nil
	}
	rel, err := scanRelation(rows)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func scanRelation(rows *sql.Rows) (models.UserCompanyRelation, error) {
	var rel models.UserCompanyRelation
	var amountStr string
	if err := rows.Scan(&rel.UserId, &rel.CompanyId, &amountStr, &rel.StartDate); err != nil {
		return rel, fmt.Errorf("unable to scan relation row: %w", err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return rel, fmt.Errorf("failed to parse invested amount '%s': %w", amountStr, err)
	}
	rel.InvestedAmount = amount
	return rel, nil
}
