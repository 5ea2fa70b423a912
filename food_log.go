package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fitness-coach-api/internal/nutrition"
)

// foodLogColumns are selected explicitly so the row always matches foodLogEntry.
const foodLogColumns = `id, user_id, date, name, meal_type, serving_qty, serving_unit,
	calories, protein_g, carbs_g, fat_g, logged_at, created_at`

// loadFoodLog returns the user's entries with start <= date < end, oldest first.
func (h *Handler) loadFoodLog(c *gin.Context, userID int, start, end time.Time) ([]foodLogEntry, error) {
	rows, err := queryMany[foodLogEntry](h.db, c,
		`SELECT `+foodLogColumns+` FROM food_log_entries
		 WHERE user_id = @userID AND date >= @start AND date < @end
		 ORDER BY date, logged_at`,
		pgx.NamedArgs{"userID": userID, "start": start.Format("2006-01-02"), "end": end.Format("2006-01-02")})
	if err != nil {
		return nil, err
	}
	// Ensure an empty array (not null) in JSON
	if rows == nil {
		rows = []foodLogEntry{}
	}
	return rows, nil
}

// summarizeDay totals one day of entries against the profile's targets.
func summarizeDay(date string, rows []foodLogEntry, target nutrition.Macros) dailyLog {
	var totals nutrition.Macros
	byMeal := make(map[string]float64, len(nutrition.MealTypes))
	for _, m := range nutrition.MealTypes {
		byMeal[string(m)] = 0
	}
	for _, r := range rows {
		totals.Calories += r.Calories
		totals.ProteinG += r.ProteinG
		totals.CarbsG += r.CarbsG
		totals.FatG += r.FatG
		byMeal[r.MealType] += r.Calories
	}
	return dailyLog{
		Date:    date,
		Totals:  totals,
		Target:  target,
		Left:    target.Calories - totals.Calories,
		ByMeal:  byMeal,
		Entries: rows,
	}
}

// getDailyLog returns the entries and totals for a given date, with calories
// left against the profile's recommended intake.
// GET /api/food-log/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailyLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	// Validate date format before querying; an invalid value silently returns no rows.
	day, err := parseDayParam(c.Query("date"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	rows, err := h.loadFoodLog(c, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food log")
		return
	}
	p, err := h.engineProfile(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, summarizeDay(day.Format("2006-01-02"), rows, nutrition.Recommended(p)))
}

// getWeekLog returns per-day totals for the 7 days ending on end.
// Days with no logged entries are included with has_data=false.
// GET /api/food-log/week?end=YYYY-MM-DD (defaults to today).
func (h *Handler) getWeekLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	end, err := parseDayParam(c.Query("end"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	start, stop := nutrition.Window(end)

	rows, err := h.loadFoodLog(c, userID, start, stop)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}

	c.JSON(http.StatusOK, nutrition.WeekDays(entries(rows), end))
}

// validateFoodLogEntry normalizes the meal type in place and returns the
// client-facing error message, or "".
func validateFoodLogEntry(body *createFoodLogEntryRequest) string {
	if body.Name == "" {
		return "name is required"
	}
	// Rejected here so the DB check constraint never surfaces as a cryptic 500.
	meal, ok := nutrition.ParseMealType(body.MealType)
	if !ok {
		return "meal_type must be one of: breakfast, lunch, dinner, snack"
	}
	body.MealType = string(meal)
	if body.Calories < 0 || body.ProteinG < 0 || body.CarbsG < 0 || body.FatG < 0 {
		return "calories and macros must not be negative"
	}
	if body.ServingQty != nil && *body.ServingQty <= 0 {
		return "serving_qty must be positive"
	}
	if body.Date == "" {
		body.Date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		return "invalid date, expected YYYY-MM-DD"
	}
	return ""
}

// createFoodLogEntry inserts a new food log entry.
// POST /api/food-log/entries. Defaults date to today if omitted.
func (h *Handler) createFoodLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createFoodLogEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateFoodLogEntry(&body); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	entry, err := queryOne[foodLogEntry](h.db, c,
		`INSERT INTO food_log_entries (user_id, date, name, meal_type, serving_qty, serving_unit, calories, protein_g, carbs_g, fat_g)
		 VALUES (@userID, @date, @name, @mealType, @servingQty, @servingUnit, @calories, @proteinG, @carbsG, @fatG)
		 RETURNING `+foodLogColumns,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "name": body.Name,
			"mealType": body.MealType, "servingQty": body.ServingQty, "servingUnit": body.ServingUnit,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteFoodLogEntry removes a food log entry. Returns 204 on success.
// DELETE /api/food-log/entries/:id. Entries are never edited in place.
func (h *Handler) deleteFoodLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM food_log_entries WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
