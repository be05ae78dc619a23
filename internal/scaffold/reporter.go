package scaffold

// Reporter receives progress for each target. Implementations must be safe
// for concurrent use; nested targets report from separate goroutines.
type Reporter interface {
	Begin(t Target)
	Step(t Target, state State, msg string)
	Warn(t Target, msg string)
	Fail(t Target, err error)
	Done(t Target)
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) Begin(Target)               {}
func (NopReporter) Step(Target, State, string) {}
func (NopReporter) Warn(Target, string)        {}
func (NopReporter) Fail(Target, error)         {}
func (NopReporter) Done(Target)                {}
