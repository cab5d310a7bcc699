package utils

import (
    "fmt"

    "github.com/fatih/color"
    "github.com/charmbracelet/lipgloss"
)

func Failure(message string) string {
    red := color.New(color.FgRed).SprintFunc()
    return fmt.Sprintf("%v %v", message, red("failed"))
}

func Success(message string) string {
    green := color.New(color.FgGreen).SprintFunc()
    return fmt.Sprintf("%v %v", message, green("passed"))
}

type Result struct {
    Name string
    Passed bool
    Detail string
}

var (
    titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6))
    nameStyle = lipgloss.NewStyle().Width(24)
    passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)).Width(6)
    failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)).Width(6)
    detailStyle = lipgloss.NewStyle().Faint(true)
    boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

/* a boxed table with one line per result and a passed count at the bottom */
func Summary(title string, results []Result) string {
    lines := []string{titleStyle.Render(title)}

    passed := 0
    for _, result := range results {
        status := failStyle.Render("FAIL")
        if result.Passed {
            status = passStyle.Render("ok")
            passed += 1
        }
        row := lipgloss.JoinHorizontal(lipgloss.Top, nameStyle.Render(result.Name), status, detailStyle.Render(result.Detail))
        lines = append(lines, row)
    }

    lines = append(lines, fmt.Sprintf("%v/%v passed", passed, len(results)))

    return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func AllPassed(results []Result) bool {
    for _, result := range results {
        if !result.Passed {
            return false
        }
    }
    return true
}
