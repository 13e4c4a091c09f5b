package report

import (
	"fmt"
	"strings"

	"github.com/autocare/autocare/internal/llm"
	"github.com/autocare/autocare/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

// LLMEvents renders recorded LLM calls, newest first.
func (r *Renderer) LLMEvents(events []store.LLMRequestEventRecord) string {
	if len(events) == 0 {
		return "No LLM events found.\n"
	}

	var b strings.Builder
	header := fmt.Sprintf("%-5s  %-19s  %-14s  %-10s  %-26s  %6s  %6s  %6s  %s",
		"ID", "Timestamp", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
	b.WriteString(r.style(headerStyle).Render(header) + "\n")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(&b, "%-5d  %-19s  %-14s  %-10s  %-26s  %6d  %6d  %6d  %s\n",
			e.ID,
			e.Timestamp.Local().Format(timeLayout),
			truncate(e.Purpose, 14),
			e.Provider,
			truncate(e.Model, 26),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok)
	}
	return b.String()
}

// LLMEvent renders one call with its full request and response.
func (r *Renderer) LLMEvent(e *store.LLMRequestEventRecord) string {
	var b strings.Builder
	r.title(&b, fmt.Sprintf("LLM Event %d", e.ID))
	r.field(&b, "Time", e.Timestamp.Local().Format(timeLayout))
	r.field(&b, "Provider", e.Provider)
	r.field(&b, "Model", e.Model)
	r.field(&b, "Purpose", e.Purpose)
	if e.FeedbackID != "" {
		r.field(&b, "Diagnosis", e.FeedbackID)
	}
	r.field(&b, "Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	if usd, ok := llm.EstimateCost(e.Model, e.InputTokens, e.OutputTokens); ok {
		r.field(&b, "Cost", usdCost(usd))
	}
	r.field(&b, "Latency", fmt.Sprintf("%dms", e.LatencyMs))
	if e.Success {
		r.field(&b, "Result", "ok")
	} else {
		r.field(&b, "Result", "failed: "+e.ErrorMessage)
	}

	r.body(&b, "Request", e.RequestBody)
	r.body(&b, "Response", e.ResponseBody)
	return b.String()
}

func (r *Renderer) body(b *strings.Builder, title, text string) {
	r.section(b, title)
	if text == "" {
		r.hint(b, "(not captured)")
		return
	}
	b.WriteString(strings.TrimRight(text, "\n") + "\n")
}

// LLMUsage renders token totals per purpose and an estimated bill per model.
func (r *Renderer) LLMUsage(byPurpose []store.PurposeUsage, byModel []store.ModelUsage) string {
	if len(byPurpose) == 0 {
		return "No LLM usage recorded yet.\n"
	}

	var b strings.Builder
	r.title(&b, "LLM Usage")

	r.section(&b, "By Purpose")
	fmt.Fprintf(&b, "  %-18s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms")
	var calls, in, out int
	for _, u := range byPurpose {
		fmt.Fprintf(&b, "  %-18s  %6d  %10d  %10d  %8d\n",
			truncate(u.Purpose, 18), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Fprintf(&b, "  %-18s  %6d  %10d  %10d\n", "total", calls, in, out)

	if len(byModel) == 0 {
		return b.String()
	}
	r.section(&b, "Estimated Cost")
	var total float64
	var unpriced []string
	for _, u := range byModel {
		cost := "?"
		if usd, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
			total += usd
			cost = usdCost(usd)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(&b, "  %-32s  %6d  %10s\n", truncate(u.Model, 32), u.Calls, cost)
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	fmt.Fprintf(&b, "  %-32s  %6s  %10s\n", label, "", usdCost(total))
	if len(unpriced) > 0 {
		r.hint(&b, "No pricing for: "+strings.Join(unpriced, ", "))
	}
	return b.String()
}

func usdCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
