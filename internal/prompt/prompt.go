// Package prompt renders the fixed system prompt and the templated user
// prompt sent to the LLM. Rendering is deterministic and performs no I/O.
package prompt

import "strings"

// System instructs the model to return exactly one conventional commit
// message as "title\n\ncontent", matching the style of the recent history.
const System = `You act as an informed senior software developer and you have contributed
to the open-source community for many years. You must speak English as your
primary language.

Write a single Git commit message for the staged changes described by the
user. Follow the Conventional Commits style for the title (for example
"feat: ..." or "fix: ..."), and match the tone and conventions visible in
the recent commit messages provided.

Reply with the commit message only, formatted as the title, one blank line,
then the body. Do not wrap the reply in markdown fences and do not add any
commentary before or after the message.`

// Build renders the user prompt from the recent commit subjects and the
// staged diff lines.
func Build(logs, diffs []string) string {
	var b strings.Builder

	b.WriteString("Here are the latest commit messages from this repository, as a style reference:\n\n")
	b.WriteString(strings.Join(logs, "\n"))
	b.WriteString("\n\nHere is the diff of the currently staged changes:\n\n")
	b.WriteString(strings.Join(diffs, "\n"))
	b.WriteString("\n\nWrite the commit message for these staged changes.\n")

	return b.String()
}
