package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fitness-coach-api/internal/bodycomp"
	"lg/fitness-coach-api/internal/profile"
)

// estimateBodyComposition estimates body composition from stats, an optional
// pose and an optional photo.
// POST /api/body-composition. Stats fall back to the stored profile when
// omitted. An incomplete pose is rejected with 422 and the list of missing
// landmarks so the client can ask for a retake. Results are appended to the
// body composition log.
func (h *Handler) estimateBodyComposition(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body bodyCompositionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var stats bodycomp.UserStats
	if body.Stats != nil {
		stats = *body.Stats
	} else if h.db != nil {
		p, err := h.engineProfile(c, userID)
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to fetch profile")
			return
		}
		stats = bodycomp.UserStats{Age: p.Age, Gender: p.Gender, WeightKG: p.WeightKG, HeightCM: p.HeightCM}
	}
	stats, msg := validateStats(stats)
	if msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	result, err := h.estimator.Estimate(c.Request.Context(), bodycomp.Input{
		Stats:        stats,
		Pose:         body.Pose,
		Measurements: body.Measurements,
		Image:        body.Image,
	})
	var incomplete *bodycomp.PoseIncompleteError
	if errors.As(err, &incomplete) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "missing_landmarks": incomplete.Missing})
		return
	}
	if err != nil {
		log.Printf("[estimateBodyComposition] estimate failed for user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to estimate body composition")
		return
	}

	if h.db != nil {
		if _, err := h.db.Exec(c,
			`INSERT INTO body_composition_log (user_id, date, body_fat_percent, muscle_mass_percent, bmr, visceral_fat, body_type, bmi, method)
			 VALUES (@userID, @date, @bodyFat, @muscle, @bmr, @visceral, @bodyType, @bmi, @method)`,
			pgx.NamedArgs{
				"userID": userID, "date": time.Now().UTC().Format("2006-01-02"),
				"bodyFat": result.BodyFatPercent, "muscle": result.MuscleMassPercent,
				"bmr": result.BMR, "visceral": result.VisceralFat,
				"bodyType": string(result.BodyType), "bmi": result.BMI, "method": string(result.Method),
			}); err != nil {
			// The estimate is still useful to the client; only history is lost.
			log.Printf("[estimateBodyComposition] log insert failed for user %d: %v", userID, err)
		}
	}

	c.JSON(http.StatusOK, result)
}

// validateStats fills missing stats with profile defaults and checks the
// rest. Returns the client-facing error message, or "".
func validateStats(s bodycomp.UserStats) (bodycomp.UserStats, string) {
	if s.Gender != profile.GenderUnknown {
		g, ok := profile.ParseGender(string(s.Gender))
		if !ok {
			return s, "gender must be one of: male, female, other"
		}
		s.Gender = g
	}
	p := profile.UserProfile{Age: s.Age, Gender: s.Gender, WeightKG: s.WeightKG, HeightCM: s.HeightCM}
	var invalid *profile.InvalidProfileError
	if err := p.Validate(); errors.As(err, &invalid) {
		return s, invalid.Field + " " + invalid.Reason
	}
	p = p.WithDefaults()
	return bodycomp.UserStats{Age: p.Age, Gender: p.Gender, WeightKG: p.WeightKG, HeightCM: p.HeightCM}, ""
}

// getBodyCompositionLog returns logged estimates within [start, end].
// GET /api/body-composition?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getBodyCompositionLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	rows, err := queryMany[bodyCompositionEntry](h.db, c,
		`SELECT * FROM body_composition_log
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC, created_at ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch body composition log")
		return
	}
	// Ensure empty array (not null) in JSON
	if rows == nil {
		rows = []bodyCompositionEntry{}
	}

	c.JSON(http.StatusOK, rows)
}

// deleteBodyCompositionEntry removes a logged estimate by ID.
// DELETE /api/body-composition/:id. Returns 204 on success, 404 if not found.
// Ownership is enforced by requiring both id and user_id to match.
func (h *Handler) deleteBodyCompositionEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM body_composition_log WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete body composition entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "body composition entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
