// Package bodycomp estimates body composition from biometrics and optional
// pose-derived measurements. Estimation runs through an ordered chain of
// stages (trained model first, formulas last); a stage that cannot produce a
// result hands over to the next.
package bodycomp

import (
	"context"
	"errors"

	"lg/fitness-coach-api/internal/biometrics"
	"lg/fitness-coach-api/internal/profile"
)

// ErrProviderUnavailable is returned by a stage that has no provider
// configured or whose provider failed. The estimator swallows it.
var ErrProviderUnavailable = errors.New("body analysis provider unavailable")

// BodyType is the somatotype classification.
type BodyType string

const (
	Ectomorph BodyType = "Ectomorph"
	Mesomorph BodyType = "Mesomorph"
	Endomorph BodyType = "Endomorph"
)

// Method records which stage produced a result.
type Method string

const (
	MethodModel   Method = "model"
	MethodFormula Method = "formula"
)

// UserStats are the biometrics an estimate needs.
type UserStats struct {
	Age      int            `json:"age"`
	Gender   profile.Gender `json:"gender"`
	WeightKG float64        `json:"weight_kg"`
	HeightCM float64        `json:"height_cm"`
}

// Input is one estimation request. Pose and Image are optional; when Pose is
// set it must contain every required landmark. Measurements, when empty, are
// derived from Pose.
type Input struct {
	Stats        UserStats
	Pose         *Pose
	Measurements []float64
	Image        []byte
}

// Result is a body composition estimate.
type Result struct {
	BodyFatPercent    float64                    `json:"body_fat_percent"`
	MuscleMassPercent float64                    `json:"muscle_mass_percent"`
	BMR               float64                    `json:"bmr"`
	VisceralFat       float64                    `json:"visceral_fat"`
	BodyType          BodyType                   `json:"body_type"`
	BMI               float64                    `json:"bmi"`
	BMICategory       biometrics.BMICategory     `json:"bmi_category"`
	BodyFatCategory   biometrics.BodyFatCategory `json:"body_fat_category"`
	CalorieNeeds      map[string]float64         `json:"calorie_needs"`
	Method            Method                     `json:"method"`
}

// Stage is one link of the estimation chain.
type Stage interface {
	TryEstimate(ctx context.Context, in Input) (Result, error)
}

// Estimator runs its stages in order and returns the first success. The
// formula stage is always last, so Estimate only fails on a bad pose.
type Estimator struct {
	stages []Stage
}

// NewEstimator builds a chain of the given stages followed by FormulaStage.
func NewEstimator(stages ...Stage) *Estimator {
	return &Estimator{stages: append(append([]Stage(nil), stages...), FormulaStage{})}
}

// Estimate validates the pose, fills measurements from it, and walks the chain.
// It stops with ctx.Err() once the context is done.
func (e *Estimator) Estimate(ctx context.Context, in Input) (Result, error) {
	if in.Pose != nil {
		if missing := in.Pose.Missing(); len(missing) > 0 {
			return Result{}, &PoseIncompleteError{Missing: missing}
		}
		if len(in.Measurements) == 0 {
			in.Measurements = MeasurementsFromPose(*in.Pose).Slice()
		}
	}

	var lastErr error
	for _, s := range e.stages {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		r, err := s.TryEstimate(ctx, in)
		if err == nil {
			return r, nil
		}
		lastErr = err
	}
	return Result{}, lastErr
}

// FormulaStage estimates from biometrics alone; it never fails.
type FormulaStage struct{}

// Formula-path constants.
const (
	muscleShareOfLean  = 0.85
	defaultVisceralFat = 5.0
)

func (FormulaStage) TryEstimate(_ context.Context, in Input) (Result, error) {
	s := in.Stats
	male := s.Gender.IsMale()
	bmi := biometrics.BMI(s.WeightKG, s.HeightCM)
	bodyFat := biometrics.BodyFatPercent(bmi, s.Age, male)
	lean := s.WeightKG * (1 - bodyFat/100)
	muscle := lean * muscleShareOfLean

	r := Result{
		BodyFatPercent:    bodyFat,
		MuscleMassPercent: muscle / s.WeightKG * 100,
		VisceralFat:       defaultVisceralFat,
		BodyType:          Mesomorph,
		Method:            MethodFormula,
	}
	if m, ok := measurementsFromSlice(in.Measurements); ok {
		r.BodyType = classifyFromMeasurements(m, bmi, biometrics.CategorizeBodyFat(bodyFat, male))
	}
	return finish(r, s), nil
}

// classifyFromMeasurements combines frame shape with body fat: high body fat
// reads as endomorph, broad shoulders as mesomorph, a light narrow frame as
// ectomorph.
func classifyFromMeasurements(m Measurements, bmi float64, fat biometrics.BodyFatCategory) BodyType {
	ratio := m.ShoulderHipRatio()
	switch {
	case fat == biometrics.BodyFatHigh:
		return Endomorph
	case ratio >= 1.4:
		return Mesomorph
	case bmi < 18.5:
		return Ectomorph
	case ratio > 0 && ratio < 1.15:
		return Endomorph
	default:
		return Mesomorph
	}
}

// finish fills the fields every path derives from biometrics.
func finish(r Result, s UserStats) Result {
	male := s.Gender.IsMale()
	r.BMI = biometrics.BMI(s.WeightKG, s.HeightCM)
	r.BMICategory = biometrics.CategorizeBMI(r.BMI)
	r.BodyFatCategory = biometrics.CategorizeBodyFat(r.BodyFatPercent, male)
	r.BMR = biometrics.BMR(s.WeightKG, s.HeightCM, s.Age, male)
	r.CalorieNeeds = biometrics.CalorieNeeds(r.BMR)
	return r
}
