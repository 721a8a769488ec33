package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/edgefinder/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// compactTop es el número de edges que muestra el modo compacto.
const compactTop = 4

// Console implementa ports.Notifier.
type Console struct {
	out     io.Writer
	compact bool
	now     func() time.Time
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(compact bool) *Console {
	return &Console{out: os.Stdout, compact: compact, now: time.Now}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, compact bool) *Console {
	return &Console{out: w, compact: compact, now: time.Now}
}

// Notify imprime la vista del scan en el modo configurado.
func (c *Console) Notify(_ context.Context, result domain.ScanResult, view domain.View) error {
	if c.compact {
		c.printCompact(result, view)
		return nil
	}

	c.printBanner(result)
	c.printSummary(view)
	if len(view.Records) == 0 {
		fmt.Fprintf(c.out, "\n  No edges above %s%%. Try lowering the threshold.\n\n", formatNum(view.Params.MinEdge))
		return nil
	}
	c.printTable(view.Records)
	fmt.Fprintln(c.out, "  Edge = model probability − exchange ask price")
	fmt.Fprintln(c.out)
	return nil
}

// printCompact imprime una línea con los contadores y los mejores edges.
func (c *Console) printCompact(result domain.ScanResult, view domain.View) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s → %d edges ≥%s%% (YES:%d NO:%d avg:%.1f%%)",
		c.now().Format("15:04:05"), result.EventName, view.Summary.Count,
		formatNum(view.Params.MinEdge), view.Summary.YesCount, view.Summary.NoCount, view.Summary.AvgEdge)

	for i, r := range view.Records {
		if i >= compactTop {
			break
		}
		fmt.Fprintf(&sb, " | %s %s %s +%.1f%% @%d¢", r.Side, r.Player, r.Outcome.Label(), r.Edge, r.Cost)
	}
	fmt.Fprintln(c.out, sb.String())
}

// printBanner imprime el evento del modelo, el evento resuelto y los contadores de matching.
func (c *Console) printBanner(result domain.ScanResult) {
	fmt.Fprintf(c.out, "\n[%s] EDGEFINDER — %s (%s)\n",
		result.ScannedAt.Format("15:04:05"), result.EventName, scopeLabel(result.Scope))

	if ev := result.Event; ev != nil {
		fmt.Fprintf(c.out, "  Market event: %s [%s] via %s, %d contracts\n",
			ev.Label, ev.Code, ev.Method, ev.Contracts)
	}
	fmt.Fprintf(c.out, "  Field: %d players | Matched: %d contracts (%d fuzzy) | Skipped: %d | Other events: %d\n",
		result.FieldSize, result.Matched, result.FuzzyMatches, result.Skipped, result.OutOfEvent)

	for _, o := range domain.Outcomes() {
		if msg, ok := result.SeriesErrors[o]; ok {
			fmt.Fprintf(c.out, "  ! %s markets unavailable: %s\n", o.Label(), msg)
		}
	}
}

func (c *Console) printSummary(view domain.View) {
	s := view.Summary
	fmt.Fprintf(c.out, "  Edges: %d | Buy YES: %d | Buy NO: %d | Avg edge: %.1f%%\n",
		s.Count, s.YesCount, s.NoCount, s.AvgEdge)
}

// printTable imprime una fila por EdgeRecord, en el orden de la vista.
func (c *Console) printTable(records []domain.EdgeRecord) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Side", "Player", "Market", "Event", "Model", "Cost", "Edge", "Risk→Reward", "R/R")

	for _, r := range records {
		table.Append(
			string(r.Side),
			r.Player,
			r.Outcome.Label(),
			r.Event,
			modelCell(r),
			fmt.Sprintf("%d¢", r.Cost),
			fmt.Sprintf("%+.1f%%%s", r.Edge, tierMark(domain.EdgeTier(r.Edge))),
			fmt.Sprintf("%d¢ → %d¢", r.Cost, r.Profit),
			fmt.Sprintf("%.1fx%s", r.RewardRatio, tierMark(domain.RewardTier(r.RewardRatio))),
		)
	}
	table.Render()
}

// --- helpers ---

// modelCell muestra la probabilidad YES del modelo; en NO muestra también su complemento.
func modelCell(r domain.EdgeRecord) string {
	if r.Side == domain.SideNo {
		return fmt.Sprintf("%.1f%% YES → %.1f%% NO", r.ModelYes, r.ModelNo)
	}
	return fmt.Sprintf("%.1f%%", r.ModelProb)
}

func tierMark(t domain.Tier) string {
	switch t {
	case domain.TierHot:
		return " ●●"
	case domain.TierWarm:
		return " ●"
	}
	return ""
}

func scopeLabel(s domain.Scope) string {
	if s == domain.ScopeLive {
		return "live"
	}
	return "pre-tournament"
}

// formatNum imprime 5 como "5" y 2.5 como "2.5".
func formatNum(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
