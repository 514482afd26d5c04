package testutil

// SampleDiffLines is a small staged diff in the line form produced by the
// repository adapter.
var SampleDiffLines = []string{
	"diff --git a/README.md b/README.md",
	"index 1234567..abcdefg 100644",
	"--- a/README.md",
	"+++ b/README.md",
	"@@ -1,1 +1,2 @@",
	"intro",
	"+hello",
}

// SampleSubjects is a short commit history, newest first.
var SampleSubjects = []string{
	"feat: previous feature",
	"fix: earlier bugfix",
}

// SampleResponse is a well-formed assistant reply.
const SampleResponse = "feat: add greeting\n\n- add hello line to README.md"
