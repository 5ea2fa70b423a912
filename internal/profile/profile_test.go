package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults_FillsMissingFields(t *testing.T) {
	p := UserProfile{}.WithDefaults()

	assert.Equal(t, DefaultWeightKG, p.WeightKG)
	assert.Equal(t, DefaultHeightCM, p.HeightCM)
	assert.Equal(t, DefaultAge, p.Age)
	assert.Equal(t, GenderMale, p.Gender)
	assert.Equal(t, "Moderately Active", p.ActivityLevel)
}

func TestWithDefaults_KeepsProvidedFields(t *testing.T) {
	in := UserProfile{WeightKG: 55, HeightCM: 160, Age: 41, Gender: GenderFemale, ActivityLevel: "Sedentary"}
	assert.Equal(t, in, in.WithDefaults())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		profile UserProfile
		field   string
	}{
		{"negative weight", UserProfile{WeightKG: -1}, "weight_kg"},
		{"negative height", UserProfile{HeightCM: -170}, "height_cm"},
		{"age too low", UserProfile{Age: 3}, "age"},
		{"age too high", UserProfile{Age: 200}, "age"},
		{"unknown gender", UserProfile{Gender: "robot"}, "gender"},
		{"unknown fitness level", UserProfile{FitnessLevel: "Elite"}, "fitness_level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.profile.Validate()
			var invalid *InvalidProfileError
			require.True(t, errors.As(err, &invalid), "expected InvalidProfileError, got %v", err)
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestValidate_EmptyProfilePasses(t *testing.T) {
	assert.NoError(t, UserProfile{}.Validate())
}

func TestParseHelpers(t *testing.T) {
	g, ok := ParseGender(" Female ")
	assert.True(t, ok)
	assert.Equal(t, GenderFemale, g)

	_, ok = ParseGender("x")
	assert.False(t, ok)

	l, ok := ParseFitnessLevel("advanced")
	assert.True(t, ok)
	assert.Equal(t, Advanced, l)
}

func TestComplete(t *testing.T) {
	assert.False(t, UserProfile{WeightKG: 70}.Complete())
	assert.True(t, UserProfile{WeightKG: 70, HeightCM: 175, Age: 30, Gender: GenderOther}.Complete())
}
