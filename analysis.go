package main

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lg/fitness-coach-api/internal/foodrec"
	"lg/fitness-coach-api/internal/nutrition"
)

// recentFoodDays is how far back a food counts as "recently eaten" and is
// excluded from recommendations.
const recentFoodDays = 3

// getNutritionAnalysis returns the 7-day analysis ending on end: totals,
// daily averages, targets, per-macro status and recommendations.
// GET /api/nutrition/analysis?end=YYYY-MM-DD (defaults to today).
func (h *Handler) getNutritionAnalysis(c *gin.Context) {
	userID := c.GetInt("user_id")

	end, err := parseDayParam(c.Query("end"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}

	result, err := h.analyzeWeek(c, userID, end)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to analyze nutrition")
		return
	}

	c.JSON(http.StatusOK, result)
}

// analyzeWeek loads the window ending on end and the profile, then analyzes.
func (h *Handler) analyzeWeek(c *gin.Context, userID int, end time.Time) (nutrition.Result, error) {
	start, stop := nutrition.Window(end)
	rows, err := h.loadFoodLog(c, userID, start, stop)
	if err != nil {
		return nutrition.Result{}, err
	}
	p, err := h.engineProfile(c, userID)
	if err != nil {
		return nutrition.Result{}, err
	}
	return nutrition.Analyze(entries(rows), p), nil
}

// getFoodCatalog returns every predefined food item.
// GET /api/food/catalog.
func (h *Handler) getFoodCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Items())
}

// getFoodRecommendations suggests up to 10 catalog foods for a meal that fit
// the remaining calorie budget and were not eaten in the last 3 days.
// GET /api/food/recommendations?meal_type=lunch&remaining_calories=600.
// remaining_calories defaults to today's recommended intake minus what has
// already been logged today.
func (h *Handler) getFoodRecommendations(c *gin.Context) {
	userID := c.GetInt("user_id")

	meal, ok := nutrition.ParseMealType(c.Query("meal_type"))
	if !ok {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}

	var remaining *float64
	if v := c.Query("remaining_calories"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			apiError(c, http.StatusBadRequest, "remaining_calories must be a finite number")
			return
		}
		remaining = &f
	}

	today, _ := parseDayParam("")
	var recent []string
	if h.db != nil {
		rows, err := h.loadFoodLog(c, userID, today.AddDate(0, 0, -(recentFoodDays-1)), today.AddDate(0, 0, 1))
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to fetch recent foods")
			return
		}
		var eatenToday float64
		for _, r := range rows {
			recent = append(recent, r.Name)
			if r.Date.Equal(today) {
				eatenToday += r.Calories
			}
		}
		if remaining == nil {
			p, err := h.engineProfile(c, userID)
			if err != nil {
				apiError(c, http.StatusInternalServerError, "failed to fetch profile")
				return
			}
			left := nutrition.Recommended(p).Calories - eatenToday
			remaining = &left
		}
	}
	if remaining == nil {
		apiError(c, http.StatusBadRequest, "remaining_calories is required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal_type":          meal,
		"remaining_calories": *remaining,
		"items":              foodrec.Recommend(recent, meal, *remaining, h.catalog.Items()),
	})
}
