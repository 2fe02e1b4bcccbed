package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trkStyle    = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	undefStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	gherkinStyle = lipgloss.NewStyle().Faint(true)

	statusStyles = map[string]lipgloss.Style{
		"passing":     passStyle,
		"implemented": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"pending":     undefStyle,
		"failing":     failStyle,
	}
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func ErrLine(w io.Writer, path string) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+path)
}

func SummaryLine(w io.Writer, files, scenarios int) {
	fmt.Fprintf(w, "synced %d files, %d scenarios\n", files, scenarios)
}

func renderStatus(status string) string {
	if style, ok := statusStyles[status]; ok {
		return style.Render(status)
	}
	return trkStyle.Render(status)
}

func ListRow(w io.Writer, id int64, fileName, name, status string, idWidth, fileWidth, nameWidth int) {
	tag := fmt.Sprintf("#%d", id)
	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n", idWidth, tag, fileWidth, fileName, nameWidth, name, renderStatus(status))
}

func ShowHeader(w io.Writer, id int64, fileName string) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("#%d", id))+"  "+fileName)
}

func ShowStatus(w io.Writer, status string) {
	fmt.Fprintln(w, "status: "+renderStatus(status))
}

func ShowGherkin(w io.Writer, content string) {
	fmt.Fprintln(w, gherkinStyle.Render(content))
}

func HistoryLine(w io.Writer, status, changedAt string) {
	fmt.Fprintf(w, "  %s  %s\n", trkStyle.Render(changedAt), renderStatus(status))
}

func StatusConfirm(w io.Writer, id int64, prev, status string) {
	if prev == "" {
		fmt.Fprintf(w, "#%d -> %s\n", id, renderStatus(status))
		return
	}
	fmt.Fprintf(w, "#%d %s -> %s\n", id, renderStatus(prev), renderStatus(status))
}

func CheckedLine(w io.Writer, path string, scenarios int) {
	fmt.Fprintln(w, passStyle.Render("ok ")+"  "+path+fmt.Sprintf("  (%d scenarios)", scenarios))
}

func ProblemLine(w io.Writer, path string, line int, msg string) {
	if line > 0 {
		fmt.Fprintf(w, "%s  %s:%d: %s\n", errStyle.Render("err"), path, line, msg)
		return
	}
	fmt.Fprintf(w, "%s  %s: %s\n", errStyle.Render("err"), path, msg)
}

func RunHeader(w io.Writer, feature string) {
	fmt.Fprintln(w, headerStyle.Render(feature))
}

func RunPass(w io.Writer, scenario string) {
	fmt.Fprintln(w, "  "+passStyle.Render("pass")+"  "+scenario)
}

func RunFail(w io.Writer, scenario string, err error) {
	if err != nil {
		fmt.Fprintln(w, "  "+failStyle.Render("fail")+"  "+scenario+": "+err.Error())
		return
	}
	fmt.Fprintln(w, "  "+failStyle.Render("fail")+"  "+scenario)
}

func RunUndefined(w io.Writer, scenario string) {
	fmt.Fprintln(w, "  "+undefStyle.Render("none")+"  "+scenario)
}

func RunSummary(w io.Writer, passed, failed, undefined int) {
	fmt.Fprintf(w, "%d passed, %d failed, %d undefined\n", passed, failed, undefined)
}

func LangRow(w io.Writer, code, name, keywords string) {
	fmt.Fprintf(w, "%s  %-12s %s\n", headerStyle.Render(fmt.Sprintf("%-3s", code)), name, trkStyle.Render(keywords))
}
