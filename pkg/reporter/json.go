package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// JSONResult is one file in ESLint's JSON result array.
type JSONResult struct {
	FilePath            string        `json:"filePath"`
	Messages            []JSONMessage `json:"messages"`
	ErrorCount          int           `json:"errorCount"`
	WarningCount        int           `json:"warningCount"`
	FixableErrorCount   int           `json:"fixableErrorCount"`
	FixableWarningCount int           `json:"fixableWarningCount"`
	Output              *string       `json:"output,omitempty"`
}

// JSONMessage is one problem. RuleID is null for parse errors.
type JSONMessage struct {
	RuleID    *string  `json:"ruleId"`
	Severity  int      `json:"severity"`
	Message   string   `json:"message"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	EndLine   int      `json:"endLine,omitempty"`
	EndColumn int      `json:"endColumn,omitempty"`
	NodeType  *string  `json:"nodeType,omitempty"`
	MessageID string   `json:"messageId,omitempty"`
	Fatal     bool     `json:"fatal,omitempty"`
	Fix       *JSONFix `json:"fix,omitempty"`
}

// JSONFix is a fix as a [start, end) byte range and replacement text.
type JSONFix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

// JSONReporter writes the ESLint JSON result array.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, total := r.build(result)
	if err := json.NewEncoder(r.bw).Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return total, nil
}

func (r *JSONReporter) build(result *runner.Result) ([]JSONResult, int) {
	out := make([]JSONResult, 0)
	if result == nil {
		return out, 0
	}

	var total int
	for _, file := range result.Files {
		entry := JSONResult{FilePath: file.Path, Messages: make([]JSONMessage, 0)}

		for _, msg := range problems(file, r.opts.Quiet) {
			jm := JSONMessage{
				Severity:  int(msg.Severity),
				Message:   msg.Message,
				Line:      msg.Line,
				Column:    msg.Column,
				EndLine:   msg.EndLine,
				EndColumn: msg.EndColumn,
				MessageID: msg.MessageID,
				Fatal:     msg.Fatal,
			}
			if msg.RuleID != "" {
				jm.RuleID = &msg.RuleID
			}
			if msg.NodeType != "" {
				jm.NodeType = &msg.NodeType
			}
			if msg.Fix != nil {
				jm.Fix = &JSONFix{Range: [2]int{msg.Fix.Start, msg.Fix.End}, Text: msg.Fix.Text}
			}

			isError := msg.Fatal || msg.Severity == config.SeverityError
			switch {
			case isError:
				entry.ErrorCount++
				if msg.Fix != nil {
					entry.FixableErrorCount++
				}
			default:
				entry.WarningCount++
				if msg.Fix != nil {
					entry.FixableWarningCount++
				}
			}
			entry.Messages = append(entry.Messages, jm)
		}

		if file.File != nil && file.File.Result != nil && file.File.Result.Fixed {
			output := file.File.Result.Output
			entry.Output = &output
		}

		total += len(entry.Messages)
		out = append(out, entry)
	}
	return out, total
}
