package rag

import "strings"

// refusalSentence is a contract with the generation model: the strict prompt
// asks for exactly this sentence when the context is insufficient, and
// containsRefusal checks for its core phrase. Changing the prompt wording
// requires changing the marker in lockstep.
const (
	refusalSentence = "The context does not contain the answer."
	refusalMarker   = "does not contain the answer"
)

const filePromptTmpl = `Answer the question using ONLY the context below.
If the context does not contain the answer, reply exactly with:
"%s"

Context:
%s

Question:
%s
`

const fallbackPromptTmpl = `The uploaded file does not contain the answer.
Based on general knowledge, answer the question clearly.

Question:
%s
`

// containsRefusal reports whether the model self-reported that the context
// was insufficient. Checked case-insensitively since models do not always
// quote the requested sentence verbatim.
func containsRefusal(answer string) bool {
	return strings.Contains(strings.ToLower(answer), refusalMarker)
}
