package constant

// In-band answers for asks that cannot reach the model. They are returned
// with HTTP 200 and are never stored in the message log.
const (
	AskNoContentAnswer = "⚠️ Please upload content first before asking questions."
	AskNoQuestion      = "⚠️ Please enter a question."
	AskNoAnswer        = "⚠️ The model did not return an answer."
)

const DefaultChatSummary = "Untitled"

// Log modules.
const (
	ModuleAuth     = "AUTH"
	ModuleUser     = "USER"
	ModuleContent  = "CONTENT"
	ModuleChat     = "CHAT"
	ModuleQuiz     = "QUIZ"
	ModuleActivity = "ACTIVITY"
	ModuleServer   = "SERVER"
)
