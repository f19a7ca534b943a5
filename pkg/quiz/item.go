package quiz

// Item is one multiple-choice question. Answer must equal one of Options.
type Item struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

const (
	DefaultBatchSize = 5
	OptionsPerItem   = 4
)
