package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteriaEncodeDecode(t *testing.T) {
	input := &CriteriaInput{
		MinYearsExperience:    3,
		RequiredSkills:        []string{"Go", "PostgreSQL"},
		PreferredSkills:       []string{"Kubernetes"},
		EducationRequirements: "Bachelor's degree",
	}

	encoded, err := input.Encode(42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), encoded.JobID)
	assert.JSONEq(t, `["Go","PostgreSQL"]`, encoded.RequiredSkills)

	decoded, err := encoded.Decode()
	require.NoError(t, err)
	assert.Equal(t, input.MinYearsExperience, decoded.MinYearsExperience)
	assert.Equal(t, input.RequiredSkills, decoded.RequiredSkills)
	assert.Equal(t, input.PreferredSkills, decoded.PreferredSkills)
	assert.Equal(t, input.EducationRequirements, decoded.EducationRequirements)
}

func TestCriteriaEncodeNilSlices(t *testing.T) {
	encoded, err := (&CriteriaInput{}).Encode(1)
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded.RequiredSkills)
	assert.Equal(t, "[]", encoded.PreferredSkills)
}

func TestCriteriaDecodeCorruptRow(t *testing.T) {
	row := &EvaluationCriteria{
		ID:             7,
		JobID:          1,
		RequiredSkills: "{not json",
	}

	_, err := row.Decode()
	require.Error(t, err)

	var integrity *DataIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, "evaluation_criteria", integrity.Table)
	assert.Equal(t, uint(7), integrity.RowID)
	assert.Equal(t, "required_skills", integrity.Field)
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 7, PeriodWeek.Days())
	assert.Equal(t, 30, PeriodMonth.Days())
	assert.Equal(t, 90, PeriodQuarter.Days())
	assert.Equal(t, 365, PeriodYear.Days())
	assert.Equal(t, 30, Period("").Days())
	assert.Equal(t, 30, Period("fortnight").Days())
}

func TestUnknownCandidate(t *testing.T) {
	info := UnknownCandidate()
	assert.Equal(t, NotProvided, info.Name)
	assert.Equal(t, NotProvided, info.Email)
	assert.Equal(t, NotProvided, info.Phone)
	assert.Equal(t, NotProvided, info.Location)
	assert.Equal(t, NotProvided, info.LinkedIn)
}
