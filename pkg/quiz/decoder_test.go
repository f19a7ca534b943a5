package quiz

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			Question: fmt.Sprintf("Question %d?", i+1),
			Options:  []string{"A", "B", "C", "D"},
			Answer:   "B",
		}
	}
	return items
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestDecodeWellFormedBatch(t *testing.T) {
	raw := "```json\n" + mustJSON(t, sampleItems(5)) + "\n```"

	res := NewDecoder(5).Decode(raw)

	require.True(t, res.OK(), "unexpected failure: %v", res.Failure)
	assert.Len(t, res.Batch, 5)
	assert.Equal(t, "Question 1?", res.Batch[0].Question)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Batch[4].Options)
}

func TestDecodeIgnoresExtraFields(t *testing.T) {
	raw := `[` +
		`{"question":"q1","options":["a","b","c","d"],"answer":"a","explanation":"x"},` +
		`{"question":"q2","options":["a","b","c","d"],"answer":"b"},` +
		`{"question":"q3","options":["a","b","c","d"],"answer":"c"},` +
		`{"question":"q4","options":["a","b","c","d"],"answer":"d"},` +
		`{"question":"q5","options":["a","b","c","d"],"answer":"a"}` +
		`]`

	res := NewDecoder(5).Decode(raw)
	require.True(t, res.OK())
	assert.Len(t, res.Batch, 5)
}

func TestDecodeFailures(t *testing.T) {
	valid := mustJSON(t, sampleItems(5))

	tooFewOptions := sampleItems(5)
	tooFewOptions[2].Options = []string{"A", "B", "C"}

	strayAnswer := sampleItems(5)
	strayAnswer[0].Answer = "E"

	tests := []struct {
		name   string
		raw    string
		reason FailureReason
	}{
		{"empty", "  ", ReasonEmpty},
		{"fence only", "```json\n```", ReasonEmpty},
		{"not json", "Sorry, I cannot help with that.", ReasonSyntax},
		{"object instead of array", `{"question":"q"}`, ReasonSyntax},
		{"truncated", valid[:len(valid)-10], ReasonSyntax},
		{"trailing prose", valid + "\nLet me know if you need more!", ReasonTrailingData},
		{"second array", valid + valid, ReasonTrailingData},
		{"wrong count", mustJSON(t, sampleItems(4)), ReasonInvalidItems},
		{"null", "null", ReasonInvalidItems},
		{"three options", mustJSON(t, tooFewOptions), ReasonInvalidItems},
		{"answer not an option", mustJSON(t, strayAnswer), ReasonInvalidItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res Result
			assert.NotPanics(t, func() { res = NewDecoder(5).Decode(tt.raw) })

			require.False(t, res.OK())
			assert.Nil(t, res.Batch)
			assert.Equal(t, tt.reason, res.Failure.Reason)
			assert.Equal(t, Normalize(tt.raw), res.Failure.Text)
			assert.NotEmpty(t, res.Failure.Error())
		})
	}
}

func TestDecodeReportsEveryInvalidItem(t *testing.T) {
	items := sampleItems(5)
	items[1].Question = " "
	items[3].Answer = "Z"

	res := NewDecoder(5).Decode(mustJSON(t, items))

	require.False(t, res.OK())
	assert.Equal(t, []string{
		"item 2: question is empty",
		`item 4: answer "Z" is not one of the options`,
	}, res.Failure.Issues)
}

func TestDecoderDefaultsExpectedItems(t *testing.T) {
	res := (&Decoder{}).Decode(mustJSON(t, sampleItems(DefaultBatchSize)))
	assert.True(t, res.OK())
}
