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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"regexp"

	"crypto-portfolio-go/internal/common"
	"crypto-portfolio-go/internal/config"
	"crypto-portfolio-go/internal/store"

	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	idFlag := flag.Int("id", 0, "User id (required)")
	nameFlag := flag.String("name", "", "User's full name (required)")
	emailFlag := flag.String("email", "", "User's email address (required)")
	passwordFlag := flag.String("password", "", "User's password (required)")
	flag.Parse()

	// Validate required flags
	if *idFlag <= 0 || *nameFlag == "" || *emailFlag == "" || *passwordFlag == "" {
		zap.L().Fatal("All flags are required: --id, --name, --email and --password")
	}

	// Validate email
	if err := validateEmail(*emailFlag); err != nil {
		zap.L().Fatal("Invalid email", zap.Error(err))
	}

	zap.L().Info("Starting user creation process",
		zap.Int("id", *idFlag),
		zap.String("name", *nameFlag),
		zap.String("email", *emailFlag))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	user, err := dbService.CreateUser(ctx, store.CreateUserParams{
		Id:       *idFlag,
		Name:     *nameFlag,
		Email:    *emailFlag,
		Password: *passwordFlag,
	})
	if errors.Is(err, store.ErrDuplicateEmail) {
		zap.L().Fatal("Email already registered", zap.String("email", *emailFlag))
	}
	if err != nil {
		zap.L().Fatal("Failed to create user", zap.Error(err))
	}

	zap.L().Info("User created successfully",
		zap.Int("user_id", user.Id),
		zap.String("email", user.Email))
	fmt.Printf("Created %s\n", user)
}
