// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/talent-match/internal/batch"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of a 0-100 score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func pad(s string, n int) string {
	return s + strings.Repeat(" ", max(n-utf8.RuneCountInString(s), 0))
}

// bar renders score (0-100) as a fixed-width bar
func bar(score float64) string {
	filled := int(score/100*barWidth + 0.5)
	filled = min(max(filled, 0), barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintMatchResult outputs the overall score, every category score and the summary.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:    %d/100  (%s)\n", result.OverallScore, result.FitLevel))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n\n", result.Confidence))

	for _, c := range types.Categories {
		score := result.CategoryScores.Score(c)
		sb.WriteString(fmt.Sprintf("%-12s %s %6.2f\n", c, bar(score), score))
	}

	skills := result.CategoryScores.Skills
	if len(skills.Missing) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing skills: %s\n", strings.Join(skills.Missing, ", ")))
	}

	if len(result.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range result.Strengths {
			sb.WriteString(fmt.Sprintf("  + %s\n", s.Description))
		}
	}
	if len(result.Weaknesses) > 0 {
		sb.WriteString("\nWeaknesses:\n")
		for _, w := range result.Weaknesses {
			sb.WriteString(fmt.Sprintf("  - %s\n", w.Description))
		}
	}
	if len(result.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, r := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("  • %s\n", r))
		}
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintShortlist outputs the top ranked candidates of a job.
func (p *Printer) PrintShortlist(title string, ranked []ranking.RankedCandidate) {
	if len(ranked) == 0 {
		p.printBox("SHORTLIST: "+title, "No candidates ranked")
		return
	}

	var sb strings.Builder
	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := ranked[i]
		name := c.Name
		if name == "" {
			name = c.CandidateID.String()
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, name))
		sb.WriteString(fmt.Sprintf("    Score: %d (%s)\n", c.Result.OverallScore, c.Result.FitLevel))
		if c.Notes != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", c.Notes))
		}
	}
	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked)-maxItemsToShow))
	}

	p.printBox("SHORTLIST: "+title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchReport outputs the counts of a batch run and its first failures.
func (p *Printer) PrintBatchReport(report *batch.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed: %d\n", report.Processed))
	sb.WriteString(fmt.Sprintf("Failed:    %d", report.Failed))

	if len(report.Errors) > 0 {
		sb.WriteString("\n\nFailures:\n")
		count := min(len(report.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := report.Errors[i]
			sb.WriteString(fmt.Sprintf("  ✗ job %s / candidate %s\n", short(e.JobPostingID.String()), short(e.CandidateID.String())))
			sb.WriteString(fmt.Sprintf("    %s\n", e.Error))
		}
		if len(report.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Errors)-maxItemsToShow))
		}
	}

	p.printBox("BATCH MATCHING", strings.TrimSuffix(sb.String(), "\n"))
}

// short keeps the first block of a UUID
func short(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// PrintWeightProfile outputs the category weights of a profile.
func (p *Printer) PrintWeightProfile(profile matching.WeightProfile) {
	var sb strings.Builder
	var total float64
	for _, c := range types.Categories {
		w := profile.Weight(c)
		total += w
		sb.WriteString(fmt.Sprintf("%-12s %.2f\n", c, w))
	}
	sb.WriteString(fmt.Sprintf("%-12s %.2f (reserved)\n", "availability", profile.Availability))
	sb.WriteString(fmt.Sprintf("\nScored total: %.2f", total))

	p.printBox("WEIGHTS: "+profile.Name, sb.String())
}
