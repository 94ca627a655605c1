package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMilestones(t *testing.T) {
	input := `category,title,description,expected_age_months,min_age_months,max_age_months
Motor,"Stands alone","Stands without holding on, briefly",11,9,14
social,Plays peekaboo,,9,7,12
hobby,Juggles,,60,48,72
language,Says mama,,x,8,12
motor,Backwards,,10,12,9
`
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	milestones, err := parseMilestones(strings.NewReader(input), logger)

	require.NoError(t, err)
	require.Len(t, milestones, 2)
	assert.Equal(t, "motor", milestones[0].Category)
	assert.Equal(t, "Stands alone", milestones[0].Title)
	assert.Equal(t, "Stands without holding on, briefly", milestones[0].Description)
	assert.Equal(t, 11, milestones[0].ExpectedAgeMonths)
	assert.Equal(t, 14, milestones[0].MaxAgeMonths)
	assert.Equal(t, "Plays peekaboo", milestones[1].Title)
}

func TestParseMilestones_EmptyInput(t *testing.T) {
	_, err := parseMilestones(strings.NewReader(""), slog.Default())

	assert.Error(t, err)
}
