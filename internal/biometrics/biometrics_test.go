package biometrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

/* ─── BMI ────────────────────────────────────────────────────────────── */

func TestBMI(t *testing.T) {
	assert.InDelta(t, 22.857, BMI(70, 175), 0.001)
	assert.InDelta(t, 25.0, BMI(81, 180), 0.001)
}

func TestBMI_ZeroHeightIsNotAnError(t *testing.T) {
	assert.True(t, math.IsInf(BMI(70, 0), 1))
}

func TestCategorizeBMI_Bands(t *testing.T) {
	cases := []struct {
		bmi  float64
		want BMICategory
	}{
		{15, Underweight},
		{18.49, Underweight},
		{18.5, Normal},
		{24.89, Normal},
		{24.9, Overweight},
		{29.89, Overweight},
		{29.9, Obese},
		{45, Obese},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategorizeBMI(tc.bmi), "bmi=%v", tc.bmi)
	}
}

// TestCategorizeBMI_ConsistentAcrossRange sweeps plausible weight/height
// combinations and checks the category agrees with the band the raw BMI falls in.
func TestCategorizeBMI_ConsistentAcrossRange(t *testing.T) {
	for w := 35.0; w <= 200; w += 2.5 {
		for h := 140.0; h <= 210; h += 2.5 {
			bmi := BMI(w, h)
			got := CategorizeBMI(bmi)
			var want BMICategory
			switch {
			case bmi < 18.5:
				want = Underweight
			case bmi < 24.9:
				want = Normal
			case bmi < 29.9:
				want = Overweight
			default:
				want = Obese
			}
			if got != want {
				t.Fatalf("CategorizeBMI(BMI(%v, %v)=%v) = %s, want %s", w, h, bmi, got, want)
			}
		}
	}
}

/* ─── BMR / TDEE ─────────────────────────────────────────────────────── */

func TestBMR_MifflinStJeor(t *testing.T) {
	// 10*80 + 6.25*180 - 5*30 = 1775
	assert.InDelta(t, 1780, BMR(80, 180, 30, true), 1e-9)
	assert.InDelta(t, 1614, BMR(80, 180, 30, false), 1e-9)
}

// TestBMRAndTDEE_Monotonic verifies BMR and TDEE rise with weight and with
// height for both sexes, other inputs held fixed.
func TestBMRAndTDEE_Monotonic(t *testing.T) {
	for _, male := range []bool{true, false} {
		for _, level := range ActivityLevels {
			prev := math.Inf(-1)
			for w := 40.0; w <= 150; w += 5 {
				tdee := TDEE(BMR(w, 175, 35, male), level)
				assert.Greater(t, tdee, prev)
				prev = tdee
			}
			prev = math.Inf(-1)
			for h := 140.0; h <= 210; h += 5 {
				bmr := BMR(75, h, 35, male)
				assert.Greater(t, bmr, prev)
				prev = bmr
			}
		}
	}
}

func TestTDEE_Multipliers(t *testing.T) {
	cases := map[string]float64{
		"Sedentary":         1.2,
		"Lightly Active":    1.375,
		"Moderately Active": 1.55,
		"Very Active":       1.725,
		"Extra Active":      1.9,
		"couch":             1.2,
		"":                  1.2,
	}
	for level, mult := range cases {
		assert.InDelta(t, 1000*mult, TDEE(1000, level), 1e-9, "level %q", level)
	}
}

func TestCalorieNeeds_CoversAllLevels(t *testing.T) {
	needs := CalorieNeeds(1500)
	assert.Len(t, needs, len(ActivityLevels))
	for _, level := range ActivityLevels {
		assert.InDelta(t, 1500*ActivityMultipliers[level], needs[level], 1e-9)
	}
}

/* ─── Body fat ───────────────────────────────────────────────────────── */

func TestBodyFatPercent_Deurenberg(t *testing.T) {
	bmi := BMI(70, 175)
	assert.Equal(t, 1.2*bmi+0.23*30-16.2, BodyFatPercent(bmi, 30, true))
	assert.Equal(t, 1.2*bmi+0.23*30-5.4, BodyFatPercent(bmi, 30, false))
}

func TestCategorizeBodyFat(t *testing.T) {
	male := []struct {
		pct  float64
		want BodyFatCategory
	}{
		{5, BodyFatVeryLow}, {8, BodyFatAthletic}, {14.9, BodyFatAthletic},
		{15, BodyFatFitness}, {20, BodyFatAverage}, {25, BodyFatHigh},
	}
	for _, tc := range male {
		assert.Equal(t, tc.want, CategorizeBodyFat(tc.pct, true), "male pct=%v", tc.pct)
	}

	female := []struct {
		pct  float64
		want BodyFatCategory
	}{
		{10, BodyFatVeryLow}, {15, BodyFatAthletic}, {22, BodyFatFitness},
		{27, BodyFatAverage}, {31.9, BodyFatAverage}, {32, BodyFatHigh},
	}
	for _, tc := range female {
		assert.Equal(t, tc.want, CategorizeBodyFat(tc.pct, false), "female pct=%v", tc.pct)
	}
}
