package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lg/fitness-coach-api/internal/bodycomp"
	"lg/fitness-coach-api/internal/foodrec"
)

// Handler holds shared dependencies (db pool, catalog, providers) for all route handlers.
type Handler struct {
	db            *pgxpool.Pool
	openAIBaseURL string // Base URL for OpenAI API (overridable for tests)
	catalog       *foodrec.Catalog
	estimator     *bodycomp.Estimator
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn) because
// the hosted Postgres closes idle connections after a few minutes.
func getDBPool(dbURL string) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Simple query protocol avoids "cached plan must not change result type"
	// errors after schema migrations.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	log.Println("DB pool ready")
	return pool
}

// newEstimator chains the trained model (when a model URL is configured)
// ahead of the formula fallback.
func newEstimator(bodyModelURL string) *bodycomp.Estimator {
	if bodyModelURL == "" {
		return bodycomp.NewEstimator()
	}
	return bodycomp.NewEstimator(bodycomp.ModelStage{Provider: bodycomp.NewHTTPModel(bodyModelURL)})
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.POST("/logout", h.logout)

	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)

	api.GET("/food-log/daily", h.getDailyLog)
	api.GET("/food-log/week", h.getWeekLog)
	api.POST("/food-log/entries", h.createFoodLogEntry)
	api.DELETE("/food-log/entries/:id", h.deleteFoodLogEntry)
	api.POST("/food-log/suggest", h.suggestFoodLogEntry)

	api.GET("/nutrition/analysis", h.getNutritionAnalysis)
	api.GET("/food/catalog", h.getFoodCatalog)
	api.GET("/food/recommendations", h.getFoodRecommendations)

	api.POST("/body-composition", h.estimateBodyComposition)
	api.GET("/body-composition", h.getBodyCompositionLog)
	api.DELETE("/body-composition/:id", h.deleteBodyCompositionEntry)

	api.POST("/workout-plans", h.createWorkoutPlan)
	api.GET("/workout-plans/latest", h.getLatestWorkoutPlan)
	api.GET("/workout-plans/:id", h.getWorkoutPlan)
	api.GET("/workout-plans/:id/export", h.exportWorkoutPlan)

	api.POST("/coach/chat", h.coachChat)
}
