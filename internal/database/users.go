/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crypto-portfolio-go/internal/auth"
	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/store"

	"go.uber.org/zap"
)

func (s *Service) CreateUser(ctx context.Context, params store.CreateUserParams) (*models.User, error) {
	zap.L().Info("Creating user", zap.Int("id", params.Id), zap.String("name", params.Name), zap.String("email", params.Email))

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("unable to hash password: %w", err)
	}

	_, err = s.db.ExecContext(ctx, queryInsertUser, params.Id, params.Name, params.Email, hash)
	if err != nil {
		if isUniqueViolation(err) {
			zap.L().Warn("Duplicate user rejected", zap.Int("id", params.Id), zap.String("email", params.Email))
			return nil, fmt.Errorf("%w: %s", store.ErrDuplicateEmail, params.Email)
		}
		zap.L().Error("Failed to insert user", zap.String("email", params.Email), zap.Error(err))
		return nil, fmt.Errorf("unable to insert user: %w", err)
	}

	zap.L().Info("User created successfully", zap.Int("id", params.Id), zap.String("email", params.Email))
	return s.GetUserById(ctx, params.Id)
}

func (s *Service) GetUserById(ctx context.Context, id int) (*models.User, error) {
	zap.L().Debug("Querying user by ID", zap.Int("user_id", id))

	var user models.User
	err := s.db.QueryRowContext(ctx, queryGetUserById, id).Scan(
		&user.Id, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("Failed to query user by ID", zap.Int("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("unable to query user by ID: %w", err)
	}

	return &user, nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	zap.L().Debug("Querying user by email", zap.String("email", email))

	var user models.User
	err := s.db.QueryRowContext(ctx, queryGetUserByEmail, email).Scan(
		&user.Id, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("Failed to query user by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("unable to query user by email: %w", err)
	}

	return &user, nil
}

func (s *Service) GetUsers(ctx context.Context) ([]models.User, error) {
	zap.L().Debug("Querying all users")

	rows, err := s.db.QueryContext(ctx, queryGetUsers)
	if err != nil {
		zap.L().Error("Failed to query users", zap.Error(err))
		return nil, fmt.Errorf("unable to query users: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.Id, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			zap.L().Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during user row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	zap.L().Info("Retrieved users", zap.Int("count", len(users)))
	return users, nil
}

// UpdateUser replaces the stored row keyed by user.Id. PasswordHash must
// already be a hash (see auth.HashPassword). Returns false when no row matched.
func (s *Service) UpdateUser(ctx context.Context, user models.User) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryUpdateUser, user.Name, user.Email, user.PasswordHash, user.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("%w: %s", store.ErrDuplicateEmail, user.Email)
		}
		zap.L().Error("Failed to update user", zap.Int("user_id", user.Id), zap.Error(err))
		return false, fmt.Errorf("unable to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, queryDeleteUser, id)
	if err != nil {
		zap.L().Error("Failed to delete user", zap.Int("user_id", id), zap.Error(err))
		return false, fmt.Errorf("unable to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		zap.L().Debug("No user found to delete", zap.Int("user_id", id))
		return false, nil
	}

	zap.L().Info("User deleted", zap.Int("user_id", id))
	return true, nil
}

// Authenticate verifies email/password against the stored hash. Returns the
// user on success, nil when the user is unknown or the password mismatches.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, nil
	}
	return user, nil
}
