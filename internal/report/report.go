package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/limaJavier/maxwalksat/pkg/sat"
)

// Entry is the outcome of processing one problem file.
type Entry struct {
	File    string
	Formula sat.Formula
	Result  sat.Result
	Err     error // Parse error or internal fault; Result may still hold a best-so-far assignment
}

func (e Entry) parseFailed() bool {
	var parseErr *sat.ParseError
	return errors.As(e.Err, &parseErr)
}

// Reporter prints one block per file as it completes and a summary table at the end.
type Reporter struct {
	out     io.Writer
	entries []Entry
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) Add(entry Entry) {
	r.entries = append(r.entries, entry)

	fmt.Fprintf(r.out, "file: %s\n", entry.File)
	if entry.Err != nil {
		fmt.Fprintf(r.out, "error: %v\n", entry.Err)
	}
	if !entry.parseFailed() {
		formula := entry.Formula
		fmt.Fprintf(r.out, "no_vars: %d no_literals_clause: %d no_clauses: %d\n", formula.NumVars, formula.LiteralsPerClause, formula.NumClauses)
		fmt.Fprintf(r.out, "outcome: %s elapsed: %.3fs retries: %d flips: %d\n", entry.Result.Outcome, entry.Result.ElapsedSeconds(), entry.Result.Retries, entry.Result.Flips)
		if entry.Result.HasAssignment() {
			fmt.Fprintf(r.out, "satisfied: %d/%d\n", entry.Result.SatisfiedCount, formula.NumClauses)
			fmt.Fprintf(r.out, "assignment: %s\n", formatAssignment(entry.Result.Assignment))
		} else {
			fmt.Fprintln(r.out, "assignment: none (no trial completed)")
		}
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 50))
}

func (r *Reporter) Entries() []Entry {
	return r.entries
}

// Summary renders every entry added so far as a table.
func (r *Reporter) Summary() {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"File", "Vars", "Clauses", "Satisfied", "Outcome", "Elapsed (s)"})
	for _, entry := range r.entries {
		table.Append(summaryRow(entry))
	}
	table.Render()
}

func summaryRow(entry Entry) []string {
	if entry.parseFailed() {
		return []string{entry.File, "-", "-", "-", "parse-error", "-"}
	}
	satisfied := "-"
	if entry.Result.HasAssignment() {
		satisfied = strconv.Itoa(entry.Result.SatisfiedCount)
	}
	return []string{
		entry.File,
		strconv.Itoa(entry.Formula.NumVars),
		strconv.Itoa(entry.Formula.NumClauses),
		satisfied,
		entry.Result.Outcome.String(),
		fmt.Sprintf("%.3f", entry.Result.ElapsedSeconds()),
	}
}

func formatAssignment(assignment sat.Assignment) string {
	return strings.Join(lo.Map(assignment.Literals(), func(literal sat.Literal, _ int) string {
		return strconv.Itoa(int(literal))
	}), " ")
}
