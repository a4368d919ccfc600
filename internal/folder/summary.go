package folder

// Outcome is the final state of one file in a run.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
	OutcomeDryRun  Outcome = "dry-run"
)

// FileResult describes what happened to one source image.
type FileResult struct {
	// Name is the source file name.
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`

	// Stage is "write" or "rename" for failed files.
	Stage string `json:"stage,omitempty"`
	Err   error  `json:"-"`

	Title string `json:"title,omitempty"`

	// Image and Text are the resolved file names. For dry runs they are the
	// names that would have been used.
	Image string `json:"image,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Summary collects the per-file results of a run in processing order.
type Summary struct {
	OK      int          `json:"ok"`
	Skipped int          `json:"skipped"`
	Failed  int          `json:"failed"`
	Planned int          `json:"planned"`
	Files   []FileResult `json:"files"`
}

func (s *Summary) add(fr FileResult) {
	switch fr.Outcome {
	case OutcomeOK:
		s.OK++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	case OutcomeDryRun:
		s.Planned++
	}
	s.Files = append(s.Files, fr)
}

// HasFailures reports whether any file failed to be written or renamed.
// Skipped files are not failures.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}
