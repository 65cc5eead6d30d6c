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
	"flag"

	"crypto-portfolio-go/internal/common"
	"crypto-portfolio-go/internal/config"
	"crypto-portfolio-go/internal/export"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	outFlag := flag.String("out", "", "Output file path (defaults to EXPORT_PATH)")
	flag.Parse()

	logger.Info("Starting portfolio export")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	path := cfg.Export.Path
	if *outFlag != "" {
		path = *outFlag
	}

	// Read-only operation, database is all we need
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	if err := export.WriteFlatFile(ctx, dbService, path); err != nil {
		logger.Fatal("Export failed", zap.Error(err))
	}

	logger.Info("Export completed", zap.String("path", path))
}
