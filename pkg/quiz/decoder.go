package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

type FailureReason string

const (
	ReasonEmpty        FailureReason = "empty"
	ReasonSyntax       FailureReason = "syntax"
	ReasonTrailingData FailureReason = "trailing_data"
	ReasonInvalidItems FailureReason = "invalid_items"
)

// Failure describes why model output could not become a quiz. Text is the
// normalized candidate that was rejected.
type Failure struct {
	Reason FailureReason
	Text   string
	Err    error
	Issues []string
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("quiz decode failed (%s)", f.Reason)
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	if len(f.Issues) > 0 {
		msg += ": " + strings.Join(f.Issues, "; ")
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result holds exactly one of Batch or Failure.
type Result struct {
	Batch   []Item
	Failure *Failure
}

func (r Result) OK() bool {
	return r.Failure == nil
}

// Decoder turns raw model output into a validated quiz batch.
type Decoder struct {
	// ExpectedItems is the required batch length. Zero means DefaultBatchSize.
	ExpectedItems int
}

func NewDecoder(expectedItems int) *Decoder {
	return &Decoder{ExpectedItems: expectedItems}
}

// Decode never panics and never returns a partial batch.
func (d *Decoder) Decode(raw string) Result {
	text := Normalize(raw)
	if text == "" {
		return failed(ReasonEmpty, text, nil, nil)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	var items []Item
	if err := dec.Decode(&items); err != nil {
		return failed(ReasonSyntax, text, err, nil)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return failed(ReasonTrailingData, text, errors.New("unexpected data after JSON array"), nil)
	}

	if issues := d.validate(items); len(issues) > 0 {
		return failed(ReasonInvalidItems, text, nil, issues)
	}

	for i := range items {
		items[i].Question = strings.TrimSpace(items[i].Question)
	}
	return Result{Batch: items}
}

func (d *Decoder) expected() int {
	if d.ExpectedItems <= 0 {
		return DefaultBatchSize
	}
	return d.ExpectedItems
}

func (d *Decoder) validate(items []Item) []string {
	var issues []string
	if len(items) != d.expected() {
		issues = append(issues, fmt.Sprintf("expected %d items, got %d", d.expected(), len(items)))
	}

	for i, item := range items {
		n := i + 1
		if strings.TrimSpace(item.Question) == "" {
			issues = append(issues, fmt.Sprintf("item %d: question is empty", n))
		}
		if len(item.Options) != OptionsPerItem {
			issues = append(issues, fmt.Sprintf("item %d: expected %d options, got %d", n, OptionsPerItem, len(item.Options)))
		}
		if lo.SomeBy(item.Options, func(o string) bool { return strings.TrimSpace(o) == "" }) {
			issues = append(issues, fmt.Sprintf("item %d: option is empty", n))
		}
		if !lo.Contains(item.Options, item.Answer) {
			issues = append(issues, fmt.Sprintf("item %d: answer %q is not one of the options", n, item.Answer))
		}
	}
	return issues
}

func failed(reason FailureReason, text string, err error, issues []string) Result {
	return Result{Failure: &Failure{
		Reason: reason,
		Text:   text,
		Err:    err,
		Issues: issues,
	}}
}
