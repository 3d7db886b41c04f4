package logmeal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestMatch_Empty(t *testing.T) {
	assert.Nil(t, BestMatch(nil))
	assert.Nil(t, BestMatch([]SegmentGroup{}))
	assert.Nil(t, BestMatch([]SegmentGroup{{RecognitionResults: []Candidate{}}}))
}

func TestBestMatch_SingleGroup(t *testing.T) {
	groups := []SegmentGroup{{
		RecognitionResults: []Candidate{
			{Name: "salad", ID: "10", Probability: 0.3},
			{Name: "pasta", ID: "11", Probability: 0.7},
			{Name: "soup", ID: "12", Probability: 0.5},
		},
	}}

	best := BestMatch(groups)
	require.NotNil(t, best)
	assert.Equal(t, "pasta", best.Name)
	assert.Equal(t, 0.7, best.Probability)
}

func TestBestMatch_NestedSubclassOutranksParent(t *testing.T) {
	groups := []SegmentGroup{{
		RecognitionResults: []Candidate{
			{
				Name:        "pizza",
				ID:          "1",
				Probability: 0.6,
				Subclasses: []Candidate{
					{Name: "margherita pizza", ID: "2", Probability: 0.9},
				},
			},
		},
	}}

	best := BestMatch(groups)
	require.NotNil(t, best)
	assert.Equal(t, "margherita pizza", best.Name)
	assert.Equal(t, "2", best.ID.String())
	assert.Equal(t, 0.9, best.Probability)
}

func TestBestMatch_DeepNesting(t *testing.T) {
	groups := []SegmentGroup{{
		RecognitionResults: []Candidate{
			{
				Name:        "bread",
				Probability: 0.2,
				Subclasses: []Candidate{
					{
						Name:        "baguette",
						Probability: 0.4,
						Subclasses: []Candidate{
							{Name: "sourdough baguette", Probability: 0.85},
						},
					},
				},
			},
			{Name: "butter", Probability: 0.5},
		},
	}}

	best := BestMatch(groups)
	require.NotNil(t, best)
	assert.Equal(t, "sourdough baguette", best.Name)
}

func TestBestMatch_TieResolvesToFirstInPreOrder(t *testing.T) {
	groups := []SegmentGroup{
		{RecognitionResults: []Candidate{{Name: "first", Probability: 0.5}}},
		{RecognitionResults: []Candidate{{Name: "second", Probability: 0.5}}},
	}

	best := BestMatch(groups)
	require.NotNil(t, best)
	assert.Equal(t, "first", best.Name)
}

func TestBestMatch_ParentTieBeatsChild(t *testing.T) {
	// The parent is visited before its subclasses, so an equal-probability
	// child never replaces it.
	groups := []SegmentGroup{{
		RecognitionResults: []Candidate{
			{
				Name:        "rice",
				Probability: 0.5,
				Subclasses:  []Candidate{{Name: "fried rice", Probability: 0.5}},
			},
		},
	}}

	best := BestMatch(groups)
	require.NotNil(t, best)
	assert.Equal(t, "rice", best.Name)
}

func TestBestMatch_ZeroProbabilityIsValid(t *testing.T) {
	groups := []SegmentGroup{{
		RecognitionResults: []Candidate{{Name: "mystery dish", Probability: 0}},
	}}

	best := BestMatch(groups)
	require.NotNil(t, best)
	assert.Equal(t, "mystery dish", best.Name)
	assert.Zero(t, best.Probability)
}

func TestBestMatch_SpansGroups(t *testing.T) {
	groups := []SegmentGroup{
		{RecognitionResults: []Candidate{{Name: "fries", Probability: 0.4}}},
		{RecognitionResults: []Candidate{
			{Name: "burger", Probability: 0.3, Subclasses: []Candidate{
				{Name: "cheeseburger", Probability: 0.8},
			}},
		}},
	}

	best := BestMatch(groups)
	require.NotNil(t, best)
	assert.Equal(t, "cheeseburger", best.Name)
}
