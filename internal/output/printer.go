// Package output renders CLI output with lipgloss.
//
// All terminal output goes through a [Printer] so commands can be tested by
// capturing what they print (see [NewPrinterWithWriter]). Colour is only
// emitted when the writer is a terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"placementwiz/internal/flow"
	"placementwiz/internal/posting"
	"placementwiz/internal/wizard"
)

// defaultTruncateLength bounds table cells when none is configured.
const defaultTruncateLength = 60

// Printer writes styled output.
type Printer struct {
	w        io.Writer
	s        styles
	truncate int
}

// NewPrinter creates a [Printer] writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a [Printer] writing to w.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{
		w:        w,
		s:        newStyles(lipgloss.NewRenderer(w)),
		truncate: defaultTruncateLength,
	}
}

// SetTruncateLength sets the maximum width of table cells. Values <= 0 keep
// the default.
func (p *Printer) SetTruncateLength(n int) {
	if n > 0 {
		p.truncate = n
	}
}

func (p *Printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Success prints a success banner.
func (p *Printer) Success(msg string) {
	p.println(p.s.success.Render("✓ " + msg))
}

// Error prints an error banner.
func (p *Printer) Error(msg string) {
	p.println(p.s.err.Render("✗ " + msg))
}

// Warning prints a warning line.
func (p *Printer) Warning(msg string) {
	p.println(p.s.warning.Render("! " + msg))
}

// Info prints a plain informational line.
func (p *Printer) Info(msg string) {
	p.println(p.s.value.Render(msg))
}

// Muted prints a de-emphasised line.
func (p *Printer) Muted(msg string) {
	p.println(p.s.muted.Render(msg))
}

// ProgressLine renders the wizard steps on one line, marking each step as
// completed, active or unvisited.
func (p *Printer) ProgressLine(steps []wizard.Step) string {
	parts := make([]string, len(steps))
	for i, step := range steps {
		label := step.Label
		if label == "" {
			label = step.Name
		}
		switch step.Status {
		case wizard.StatusCompleted:
			parts[i] = p.s.completed.Render(markCompleted + " " + label)
		case wizard.StatusActive:
			parts[i] = p.s.active.Render(markActive + " " + label)
		default:
			parts[i] = p.s.unvisited.Render(markUnvisited + " " + label)
		}
	}
	return strings.Join(parts, p.s.muted.Render(" › "))
}

// Progress prints [Printer.ProgressLine].
func (p *Printer) Progress(steps []wizard.Step) {
	p.println(p.ProgressLine(steps))
}

// Kinds prints the available posting kinds.
func (p *Printer) Kinds(kinds []posting.Kind) {
	for _, k := range kinds {
		p.printf("%s  %s\n", p.s.title.Render(string(k)), p.s.label.Render(k.Label()))
	}
}

// Sections prints a flow preview: every section with its fields and rules.
func (p *Printer) Sections(kind posting.Kind, sections []flow.Section) {
	p.println(p.s.title.Render(fmt.Sprintf("%s posting: %d steps", kind.Label(), len(sections))))
	for i, sec := range sections {
		p.println()
		p.printf("%s %s\n", p.s.header.Render(fmt.Sprintf("%d.", i+1)), p.s.title.Render(strings.TrimSpace(sec.Icon+" "+sec.Label)))
		for _, f := range sec.Fields {
			rules := make([]string, len(f.Rules))
			for j, r := range f.Rules {
				rules[j] = string(r)
			}
			line := "   " + p.s.value.Render(f.Label) + " " + p.s.muted.Render("("+f.Key+")")
			if len(rules) > 0 {
				line += " " + p.s.label.Render(strings.Join(rules, ", "))
			}
			p.println(line)
		}
	}
}

// SectionValues prints one section with the values entered so far.
func (p *Printer) SectionValues(sec flow.Section, values map[string]string) {
	p.println(p.s.title.Render(strings.TrimSpace(sec.Icon + " " + sec.Label)))
	for _, f := range sec.Fields {
		v := values[f.Key]
		if v == "" {
			v = p.s.muted.Render("-")
		} else {
			v = p.s.value.Render(v)
		}
		p.printf("  %s %s\n", p.s.label.Render(f.Label+":"), v)
	}
}

// FieldErrors prints validation errors, using the field labels from fields
// where known. Errors are listed in field order, then by key.
func (p *Printer) FieldErrors(errs posting.FieldErrors, fields []posting.Field) {
	seen := make(map[string]bool, len(errs))
	for _, f := range fields {
		if msg, ok := errs[f.Key]; ok {
			p.println(p.s.err.Render("  ✗ " + f.Label + " " + msg))
			seen[f.Key] = true
		}
	}
	for _, key := range errs.Keys() {
		if !seen[key] {
			p.println(p.s.err.Render("  ✗ " + key + " " + errs[key]))
		}
	}
}

// PostingTable prints postings as an aligned table.
func (p *Printer) PostingTable(ps []*posting.Posting) {
	if len(ps) == 0 {
		p.Muted("No postings found")
		return
	}

	header := []string{"ID", "KIND", "STATUS", "CREATED", "TITLE"}
	rows := make([][]string, len(ps))
	for i, post := range ps {
		rows[i] = []string{
			shortID(post.ID),
			string(post.Kind),
			string(post.Approval),
			post.CreatedAt.Format("2006-01-02"),
			truncate(post.Title, p.truncate),
		}
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	pad := func(cells []string) string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		}
		return strings.TrimRight(strings.Join(out, "  "), " ")
	}

	p.println(p.s.header.Render(pad(header)))
	for _, row := range rows {
		p.println(p.approvalStyle(posting.Approval(row[2])).Render(pad(row)))
	}
}

func (p *Printer) approvalStyle(a posting.Approval) lipgloss.Style {
	switch a {
	case posting.ApprovalApproved:
		return p.s.completed
	case posting.ApprovalRejected:
		return p.s.err
	default:
		return p.s.value
	}
}

// PostingDetail prints every field of one posting in a box.
func (p *Printer) PostingDetail(post *posting.Posting) {
	var b strings.Builder
	b.WriteString(p.s.title.Render(post.Title) + "\n")
	fmt.Fprintf(&b, "%s %s\n", p.s.label.Render("ID:"), post.ID)
	fmt.Fprintf(&b, "%s %s\n", p.s.label.Render("Kind:"), post.Kind.Label())
	fmt.Fprintf(&b, "%s %s\n", p.s.label.Render("Status:"), p.approvalStyle(post.Approval).Render(string(post.Approval)))
	fmt.Fprintf(&b, "%s %s\n", p.s.label.Render("Slug:"), post.Slug)
	if post.Author != "" {
		fmt.Fprintf(&b, "%s %s\n", p.s.label.Render("Author:"), post.Author)
	}
	fmt.Fprintf(&b, "%s %s", p.s.label.Render("Created:"), post.CreatedAt.Format("2006-01-02 15:04 MST"))

	keys := make([]string, 0, len(post.Fields))
	for k := range post.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		b.WriteString("\n")
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "\n%s %s", p.s.label.Render(k+":"), p.s.value.Render(post.Fields[k]))
	}

	p.println(p.s.box.Render(b.String()))
}

// shortID keeps table rows narrow; full IDs are shown by the show command
// and accepted everywhere an ID is.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to maxLen runes, ending in "...".
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
