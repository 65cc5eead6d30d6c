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
	"os"

	"crypto-portfolio-go/internal/common"
	"crypto-portfolio-go/internal/config"
	"crypto-portfolio-go/internal/selftest"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	verboseFlag := flag.Bool("verbose", false, "Print every passing check, not just failures")
	flag.Parse()

	logger.Info("Starting self-test run")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Self-test runs against a throwaway database so it never touches real data
	cfg.Database.Path = "selftest.db"
	_ = os.Remove(cfg.Database.Path)

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()
	defer os.Remove(cfg.Database.Path)

	common.PrintHeader("PORTFOLIO SELF-TEST", common.DefaultWidth)

	runner := selftest.New(services.DbService, services.Market, os.Stdout, *verboseFlag)
	passed, failed := runner.Run(ctx)

	common.PrintFooter("SELF-TEST FINISHED", common.DefaultWidth)

	logger.Info("Self-test completed",
		zap.Int("passed", passed),
		zap.Int("failed", failed))

	if failed > 0 {
		loggerCleanup()
		services.Close()
		os.Remove(cfg.Database.Path)
		os.Exit(1)
	}
}
