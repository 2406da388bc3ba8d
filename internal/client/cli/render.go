package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/adminconsole/internal/client/resource"
	"github.com/dmitrijs2005/adminconsole/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	keyStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

const timeLayout = "2006-01-02 15:04"

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

type field struct {
	key, value string
}

func renderFields(w io.Writer, title string, fields []field) {
	if title != "" {
		fmt.Fprintln(w, titleStyle.Render(title))
	}
	width := 0
	for _, f := range fields {
		width = max(width, len(f.key))
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-*s", width, f.key)), f.value)
	}
}

// renderState prints one page of a list. Failed loads print nothing; the
// error is reported by the caller.
func renderState[T, F any](w io.Writer, title string, s resource.State[T, F], headers []string, row func(T) []string) {
	if s.Err != nil {
		return
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(s.Items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Nothing found."))
		return
	}
	rows := make([][]string, 0, len(s.Items))
	for _, it := range s.Items {
		rows = append(rows, row(it))
	}
	fmt.Fprintln(w, renderTable(headers, rows))
	fmt.Fprintln(w, mutedStyle.Render(pageFooter(s.Query.Page, s.TotalPages, s.TotalElements)))
}

func pageFooter(page, pages int, total int64) string {
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("page %d of %d, %d total", page+1, pages, total)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

// formatMoney renders an amount in minor units, e.g. 1999 USD as "19.99 USD".
func formatMoney(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, strings.ToUpper(currency))
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

var (
	userHeaders         = []string{"ID", "EMAIL", "NAME", "ROLE", "STATUS", "CREATED"}
	postHeaders         = []string{"ID", "TITLE", "AUTHOR", "STATUS", "LIKES", "COMMENTS", "CREATED"}
	auditHeaders        = []string{"ID", "TIME", "ACTOR", "ACTION", "RESOURCE"}
	emailHeaders        = []string{"ID", "FROM", "SUBJECT", "READ", "STAR", "RECEIVED"}
	conversationHeaders = []string{"ID", "USER", "TITLE", "STATUS", "MESSAGES", "LAST MESSAGE"}
	paymentHeaders      = []string{"ID", "USER", "AMOUNT", "STATUS", "PLAN", "CREATED"}
)

func userRow(u models.User) []string {
	return []string{u.ID, u.Email, u.Name, string(u.Role), string(u.Status), formatTime(u.CreatedAt)}
}

func postRow(p models.Post) []string {
	return []string{p.ID, truncate(p.Title, 40), p.AuthorName, string(p.Status),
		strconv.Itoa(p.Likes), strconv.Itoa(p.Comments), formatTime(p.CreatedAt)}
}

func auditRow(l models.AuditLog) []string {
	return []string{l.ID, formatTime(l.CreatedAt), l.ActorEmail, l.Action, l.ResourceType + "/" + l.ResourceID}
}

func emailRow(e models.Email) []string {
	read := "new"
	if e.Read {
		read = ""
	}
	star := ""
	if e.Starred {
		star = "*"
	}
	return []string{e.ID, e.From, truncate(e.Subject, 40), read, star, formatTime(e.ReceivedAt)}
}

func conversationRow(c models.Conversation) []string {
	return []string{c.ID, c.UserEmail, truncate(c.Title, 40), string(c.Status),
		strconv.Itoa(c.MessageCount), formatTimePtr(c.LastMessageAt)}
}

func paymentRow(p models.Payment) []string {
	return []string{p.ID, p.UserEmail, formatMoney(p.Amount, p.Currency), string(p.Status), p.Plan, formatTime(p.CreatedAt)}
}

func renderUser(w io.Writer, u models.User) {
	renderFields(w, u.Name, []field{
		{"id", u.ID},
		{"email", u.Email},
		{"role", string(u.Role)},
		{"status", string(u.Status)},
		{"provider", u.Provider},
		{"created", formatTime(u.CreatedAt)},
		{"last login", formatTimePtr(u.LastLoginAt)},
	})
}

func renderPost(w io.Writer, p models.Post) {
	renderFields(w, p.Title, []field{
		{"id", p.ID},
		{"author", fmt.Sprintf("%s (%s)", p.AuthorName, p.AuthorID)},
		{"status", string(p.Status)},
		{"likes", strconv.Itoa(p.Likes)},
		{"comments", strconv.Itoa(p.Comments)},
		{"created", formatTime(p.CreatedAt)},
		{"updated", formatTime(p.UpdatedAt)},
	})
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Content)
}

func renderAuditLog(w io.Writer, l models.AuditLog) {
	renderFields(w, l.Action, []field{
		{"id", l.ID},
		{"time", formatTime(l.CreatedAt)},
		{"actor", fmt.Sprintf("%s (%s)", l.ActorEmail, l.ActorID)},
		{"resource", l.ResourceType + "/" + l.ResourceID},
		{"ip", l.IPAddress},
		{"user agent", l.UserAgent},
		{"details", l.Details},
	})
}

func renderEmail(w io.Writer, e models.Email) {
	renderFields(w, e.Subject, []field{
		{"from", e.From},
		{"to", e.To},
		{"folder", string(e.Folder)},
		{"starred", yesNo(e.Starred)},
		{"received", formatTime(e.ReceivedAt)},
	})
	fmt.Fprintln(w)
	fmt.Fprintln(w, e.Body)
}

func renderMessages(w io.Writer, msgs []models.ChatMessage) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No messages."))
		return
	}
	for _, m := range msgs {
		fmt.Fprintf(w, "%s %s\n%s\n\n", mutedStyle.Render(formatTime(m.CreatedAt)), keyStyle.Render(string(m.Role)), m.Content)
	}
}

func renderAnalysis(w io.Writer, a models.ConversationAnalysis) {
	renderFields(w, "Conversation "+a.ConversationID, []field{
		{"messages", strconv.Itoa(a.MessageCount)},
		{"from user", strconv.Itoa(a.UserMessages)},
		{"from assistant", strconv.Itoa(a.AssistantMessages)},
		{"from agent", strconv.Itoa(a.AgentMessages)},
		{"avg response", fmt.Sprintf("%.1fs", a.AvgResponseSeconds)},
		{"human takeover", yesNo(a.HumanTakeover)},
		{"first message", formatTimePtr(a.FirstMessageAt)},
		{"last message", formatTimePtr(a.LastMessageAt)},
	})
}

func renderSummary(w io.Writer, s models.PaymentSummary) {
	renderFields(w, "Revenue", []field{
		{"total", formatMoney(s.TotalRevenue, s.Currency)},
		{"succeeded", strconv.Itoa(s.SuccessfulCount)},
		{"failed", strconv.Itoa(s.FailedCount)},
		{"refunded", strconv.Itoa(s.RefundedCount)},
	})
	if len(s.ByPlan) == 0 {
		return
	}
	rows := make([][]string, 0, len(s.ByPlan))
	for _, p := range s.ByPlan {
		rows = append(rows, []string{p.Plan, formatMoney(p.Revenue, s.Currency), strconv.Itoa(p.Count)})
	}
	fmt.Fprintln(w, renderTable([]string{"PLAN", "REVENUE", "PAYMENTS"}, rows))
}

func renderUsage(w io.Writer, u models.UsageStats) {
	fmt.Fprintln(w, titleStyle.Render("Usage by "+string(u.Granularity)))
	if len(u.Points) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No data."))
		return
	}
	rows := make([][]string, 0, len(u.Points))
	for _, p := range u.Points {
		rows = append(rows, []string{p.Bucket.Format(time.DateOnly), strconv.Itoa(p.ActiveUsers),
			strconv.FormatInt(p.Requests, 10), strconv.FormatInt(p.Tokens, 10)})
	}
	fmt.Fprintln(w, renderTable([]string{"PERIOD", "ACTIVE USERS", "REQUESTS", "TOKENS"}, rows))
}
