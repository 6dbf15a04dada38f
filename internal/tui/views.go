package tui

import (
	"fmt"
	"strings"
	"time"

	"cyclet/internal/ledger"
	"cyclet/internal/model"
	"cyclet/internal/predict"
)

func renderCycles(l *ledger.Ledger) string {
	cycles := l.Chronological()
	if len(cycles) == 0 {
		return dimStyle.Render("No cycles recorded yet.")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-12s %9s %9s", "START", "END", "DURATION", "SPACING")) + "\n")
	for _, c := range cycles {
		spacing := "-"
		if c.SpacingDays > 0 {
			spacing = fmt.Sprintf("%dd", c.SpacingDays)
		}
		b.WriteString(fmt.Sprintf("%-12s %-12s %8dd %9s\n", c.StartDate, c.EndDate, c.DurationDays, spacing))
	}
	return b.String()
}

func renderLogs(logs []model.DailyLog) string {
	if len(logs) == 0 {
		return dimStyle.Render("No daily logs yet.")
	}
	var b strings.Builder
	for _, lg := range logs {
		b.WriteString(headerStyle.Render(lg.Date))
		if lg.Symptoms != "" {
			b.WriteString("  " + lg.Symptoms)
		}
		if lg.Mood != "" {
			b.WriteString("  " + dimStyle.Render("("+lg.Mood+")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderReminders(rs []model.Reminder) string {
	if len(rs) == 0 {
		return dimStyle.Render("No upcoming reminders.")
	}
	var b strings.Builder
	for _, r := range rs {
		tag := " "
		if r.Derived {
			tag = "*"
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n", tag, r.When.Format("2006-01-02"), r.Message))
	}
	b.WriteString("\n" + dimStyle.Render("* derived from the recorded cycles"))
	return b.String()
}

func renderStats(st ledger.Stats) string {
	if st.Count == 0 {
		return dimStyle.Render("No cycles recorded yet.")
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("Cycles:"), st.Count))
	b.WriteString(fmt.Sprintf("%s avg %.1fd, min %dd, max %dd\n",
		labelStyle.Render("Duration:"), st.DurationAvg, st.DurationMin, st.DurationMax))
	if st.SpacingSamples > 0 {
		b.WriteString(fmt.Sprintf("%s avg %.1fd, min %dd, max %dd (%d samples)\n",
			labelStyle.Render("Spacing:"), st.SpacingAvg, st.SpacingMin, st.SpacingMax, st.SpacingSamples))
	} else {
		b.WriteString(labelStyle.Render("Spacing:") + " " + dimStyle.Render("not enough data") + "\n")
	}
	return b.String()
}

func renderPrediction(l *ledger.Ledger) string {
	next, ok := predict.NextStart(l)
	if !ok {
		return dimStyle.Render("No cycles recorded yet; nothing to predict.")
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Next expected start:"), next))
	b.WriteString(fmt.Sprintf("%s %d days\n", labelStyle.Render("Average spacing:"), l.AverageSpacing()))
	if days, err := predict.DaysUntil(next, time.Now().UTC()); err == nil {
		switch {
		case days > 0:
			b.WriteString(fmt.Sprintf("%s in %d days\n", labelStyle.Render("Due:"), days))
		case days == 0:
			b.WriteString(labelStyle.Render("Due:") + " today\n")
		default:
			b.WriteString(fmt.Sprintf("%s %d days overdue\n", labelStyle.Render("Due:"), -days))
		}
	}
	return b.String()
}
