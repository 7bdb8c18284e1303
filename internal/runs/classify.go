package runs

// StatusKind is the coarse display classification of a run.
type StatusKind int

const (
	KindQueued StatusKind = iota
	KindInProgress
	KindSuccess
	KindFailure
	KindOther
)

// DisplayStatus is the classified display state of a run. For conclusions
// outside success/failure (cancelled, skipped, ...) Kind is KindOther and
// Raw carries the conclusion string so the UI can render it without
// enumerating every value GitHub may return.
type DisplayStatus struct {
	Kind StatusKind
	Raw  string
}

// Classify derives the display status for a run.
func Classify(r RunInfo) DisplayStatus {
	switch r.Status {
	case StatusQueued:
		return DisplayStatus{Kind: KindQueued, Raw: StatusQueued}
	case StatusInProgress:
		return DisplayStatus{Kind: KindInProgress, Raw: StatusInProgress}
	case StatusCompleted:
		switch r.Conclusion {
		case ConclusionSuccess:
			return DisplayStatus{Kind: KindSuccess, Raw: ConclusionSuccess}
		case ConclusionFailure:
			return DisplayStatus{Kind: KindFailure, Raw: ConclusionFailure}
		case "":
			return DisplayStatus{Kind: KindOther, Raw: "unknown"}
		default:
			return DisplayStatus{Kind: KindOther, Raw: r.Conclusion}
		}
	default:
		// Statuses like "waiting" or "requested" render neutrally.
		return DisplayStatus{Kind: KindOther, Raw: r.Status}
	}
}

// ExtractFailures returns the failed steps across all jobs. A step qualifies
// iff its conclusion is failure, timed_out, or action_required. Job order and
// step order within each job are preserved.
func ExtractFailures(jobs []Job) []JobFailure {
	var failures []JobFailure

	for _, job := range jobs {
		for _, step := range job.Steps {
			switch step.Conclusion {
			case ConclusionFailure, ConclusionTimedOut, ConclusionActionRequired:
				failures = append(failures, JobFailure{
					JobName:    job.Name,
					StepName:   step.Name,
					Conclusion: step.Conclusion,
					Number:     step.Number,
				})
			}
		}
	}

	return failures
}
