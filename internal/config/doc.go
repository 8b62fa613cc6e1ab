// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package config loads server configuration with koanf.

Sources, lowest to highest priority:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: $CONFIG_PATH, else config.yaml, config.yml,
    /etc/reliefmap/config.yaml, /etc/reliefmap/config.yml
 3. Environment variables listed in envMappings

Example config.yaml:

	server:
	  port: 3858
	  environment: production
	security:
	  cors_origins: ["https://map.example.org"]
	store:
	  path: /data/reliefmap
	  import_dir: /data/import
	  strict_integrity: true
	coverage:
	  weight_medical: 1.5
	  outlier_percentile: 0.9
	recommend:
	  max_budget: 200

Common environment variables:

	HTTP_PORT, HTTP_HOST, ENVIRONMENT
	CORS_ORIGINS (comma-separated), RATE_LIMIT_REQS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
	STORE_PATH, STORE_IN_MEMORY, IMPORT_DIR, SEED_SYNTHETIC_DATA, SEED_VALUE, STRICT_INTEGRITY
	CACHE_ENABLED, CACHE_TTL
	COVERAGE_WEIGHT_FOOD, COVERAGE_WEIGHT_MEDICAL, COVERAGE_WEIGHT_INFRASTRUCTURE
	COVERAGE_NEED_FACTOR_LOW, COVERAGE_NEED_FACTOR_MEDIUM, COVERAGE_NEED_FACTOR_HIGH
	COVERAGE_OUTLIER_PERCENTILE, COVERAGE_TOP_ORGS
	RECOMMEND_MAX_BUDGET, RECOMMEND_MAX_RESULTS, RECOMMEND_TARGET_MIN_URGENCY

The coverage and recommend sections are flat mirrors of coverage.Config and
recommend.Config; CoverageEngineConfig and RecommendEngineConfig convert them,
and Validate delegates range checks to those packages.
*/
package config
