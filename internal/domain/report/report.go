// Package report aggregates per-bot outcomes of a batch job so callers can
// inspect skips and failures instead of reading logs.
package report

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a per-bot failure.
type Kind string

const (
	// KindNotFound means a registry key was absent; the bot is skipped.
	KindNotFound Kind = "NotFound"
	// KindTransientWrite means a registry or alarm write failed.
	KindTransientWrite Kind = "TransientWrite"
	// KindTransientRead means a registry lookup failed for another reason.
	KindTransientRead Kind = "TransientRead"
	// KindMalformedPath means a registry path did not yield a bot name.
	KindMalformedPath Kind = "MalformedPath"
)

// Result is the outcome for one bot. Kind is empty on success.
type Result struct {
	BotName string `json:"botName" yaml:"botName"`
	OK      bool   `json:"ok" yaml:"ok"`
	Kind    Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Target  string `json:"target,omitempty" yaml:"target,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the aggregated outcome of one job run.
type Report struct {
	Job string `json:"job" yaml:"job"`
	// Written counts registry entries or alarms successfully written
	Written int `json:"written" yaml:"written"`
	// Malformed counts registry paths the key parser rejected
	Malformed int      `json:"malformed" yaml:"malformed"`
	Results   []Result `json:"results" yaml:"results"`
}

// New creates an empty report for job.
func New(job string) *Report {
	return &Report{Job: job, Results: []Result{}}
}

// Wrote records n successful writes.
func (r *Report) Wrote(n int) {
	r.Written += n
}

// Succeed records a successful bot.
func (r *Report) Succeed(botName, target string) {
	r.Results = append(r.Results, Result{BotName: botName, OK: true, Target: target})
}

// Fail records a failed or skipped bot.
func (r *Report) Fail(botName string, kind Kind, target string, err error) {
	res := Result{BotName: botName, Kind: kind, Target: target}
	if err != nil {
		res.Error = err.Error()
	}
	r.Results = append(r.Results, res)
}

// SkipMalformed counts a path the key parser rejected.
func (r *Report) SkipMalformed() {
	r.Malformed++
}

// Succeeded returns the number of successful bots.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK {
			n++
		}
	}
	return n
}

// Failures returns the results that did not succeed, in order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK {
			out = append(out, res)
		}
	}
	return out
}

// Count returns the number of results of kind. KindMalformedPath also
// includes paths counted with SkipMalformed.
func (r *Report) Count(kind Kind) int {
	n := 0
	for _, res := range r.Results {
		if res.Kind == kind {
			n++
		}
	}
	if kind == KindMalformedPath {
		n += r.Malformed
	}
	return n
}

// Summary renders a one-line description such as
// "3 ok, 1 failed (NotFound=1), 6 written".
func (r *Report) Summary() string {
	failures := r.Failures()

	var b strings.Builder
	fmt.Fprintf(&b, "%d ok, %d failed", r.Succeeded(), len(failures))

	if len(failures) > 0 {
		byKind := make(map[Kind]int)
		for _, f := range failures {
			byKind[f.Kind]++
		}
		kinds := make([]string, 0, len(byKind))
		for k, n := range byKind {
			kinds = append(kinds, fmt.Sprintf("%s=%d", k, n))
		}
		sort.Strings(kinds)
		fmt.Fprintf(&b, " (%s)", strings.Join(kinds, ", "))
	}

	fmt.Fprintf(&b, ", %d written", r.Written)
	if r.Malformed > 0 {
		fmt.Fprintf(&b, ", %d malformed", r.Malformed)
	}
	return b.String()
}
