package bridge

// User-facing strings for each way a turn can miss. Voiceflow renders
// whatever lands in the response field, so these have to read like
// assistant output rather than error dumps.
const (
	PROMPT_FOR_INPUT_RESPONSE = "Tell me something to send to the assistant."
	NO_ANSWER_RESPONSE        = "I could not find an answer from the assistant."
	FALLBACK_FAILED_RESPONSE  = "I could not come up with a backup answer."
	INTERNAL_ERROR_RESPONSE   = "Internal error"

	RUN_STATUS_RESPONSE_FORMAT = "Error: run status %s"
)

const FALLBACK_INSTRUCTIONS = `You are a backup assistant answering a single
question with no conversation history available. The main assistant could not
produce a reply, so give the best self-contained answer you can. Keep it
short and do not mention that you are a backup or that anything went wrong.`
