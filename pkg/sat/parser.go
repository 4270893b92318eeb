package sat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseError reports a malformed problem file. Line is 0 when the problem is not tied to a line.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormulaFromFile reads a problem file, choosing the DIMACS reader for ".cnf" files and the
// header format (vars, arity, clauses, then one clause per line) otherwise.
func FormulaFromFile(path string) (Formula, error) {
	file, err := os.Open(path)
	if err != nil {
		return Formula{}, &ParseError{File: path, Err: errors.Wrap(err, "cannot open problem file")}
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".cnf") {
		return ParseDIMACS(path, file)
	}
	return ParseProblem(path, file)
}

// ParseProblem reads the header format. Trailing blank lines are ignored; a blank line
// followed by more content is an error.
func ParseProblem(name string, reader io.Reader) (Formula, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var header []int
	var formula Formula
	lineNumber, firstBlank := 0, 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if firstBlank == 0 {
				firstBlank = lineNumber
			}
			continue
		}
		if firstBlank > 0 {
			return Formula{}, &ParseError{File: name, Line: firstBlank, Err: errors.New("blank line before end of file")}
		}

		if len(header) < 3 {
			value, err := strconv.Atoi(line)
			if err != nil {
				return Formula{}, &ParseError{File: name, Line: lineNumber, Err: errors.Wrap(err, "invalid header value")}
			}
			header = append(header, value)
			continue
		}

		clause, err := parseClause(strings.Fields(line))
		if err != nil {
			return Formula{}, &ParseError{File: name, Line: lineNumber, Err: err}
		}
		formula.Clauses = append(formula.Clauses, clause)
	}
	if err := scanner.Err(); err != nil {
		return Formula{}, &ParseError{File: name, Err: errors.Wrap(err, "cannot read problem file")}
	}
	if len(header) < 3 {
		return Formula{}, &ParseError{File: name, Err: errors.New("incomplete header")}
	}

	formula.NumVars, formula.LiteralsPerClause, formula.NumClauses = header[0], header[1], header[2]
	if err := formula.Validate(); err != nil {
		return Formula{}, &ParseError{File: name, Err: err}
	}
	return formula, nil
}

// ParseDIMACS reads a DIMACS CNF problem ("c" comments, "p cnf <vars> <clauses>", 0-terminated clauses).
func ParseDIMACS(name string, reader io.Reader) (Formula, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var formula Formula
	seenProblemLine := false
	pending := Clause{}
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		// Skip comments
		if line == "" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "%") {
			continue
		}
		// Problem line
		if strings.HasPrefix(line, "p") {
			parts := strings.Fields(line)
			if len(parts) != 4 || parts[1] != "cnf" {
				return Formula{}, &ParseError{File: name, Line: lineNumber, Err: errors.Errorf("invalid problem line: %s", line)}
			}
			vars, err := strconv.Atoi(parts[2])
			if err != nil {
				return Formula{}, &ParseError{File: name, Line: lineNumber, Err: errors.Wrap(err, "invalid variable count")}
			}
			clauses, err := strconv.Atoi(parts[3])
			if err != nil {
				return Formula{}, &ParseError{File: name, Line: lineNumber, Err: errors.Wrap(err, "invalid clause count")}
			}
			formula.NumVars, formula.NumClauses = vars, clauses
			seenProblemLine = true
			continue
		}
		if !seenProblemLine {
			return Formula{}, &ParseError{File: name, Line: lineNumber, Err: errors.New("clause before problem line")}
		}
		// Clause line; a clause may span several lines and ends with 0
		for _, field := range strings.Fields(line) {
			literal, err := strconv.Atoi(field)
			if err != nil {
				return Formula{}, &ParseError{File: name, Line: lineNumber, Err: errors.Wrapf(err, "invalid literal %q", field)}
			}
			if literal == 0 {
				formula.Clauses = append(formula.Clauses, pending)
				formula.LiteralsPerClause = max(formula.LiteralsPerClause, len(pending))
				pending = Clause{}
				continue
			}
			pending = append(pending, Literal(literal))
		}
	}
	if err := scanner.Err(); err != nil {
		return Formula{}, &ParseError{File: name, Err: errors.Wrap(err, "cannot read problem file")}
	}
	if !seenProblemLine {
		return Formula{}, &ParseError{File: name, Err: errors.New("missing problem line")}
	}
	if len(pending) > 0 {
		formula.Clauses = append(formula.Clauses, pending)
		formula.LiteralsPerClause = max(formula.LiteralsPerClause, len(pending))
	}
	if err := formula.Validate(); err != nil {
		return Formula{}, &ParseError{File: name, Err: err}
	}
	return formula, nil
}

func parseClause(fields []string) (Clause, error) {
	clause := make(Clause, 0, len(fields))
	for _, field := range fields {
		literal, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid literal %q", field)
		}
		clause = append(clause, Literal(literal))
	}
	return clause, nil
}
