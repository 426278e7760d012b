package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/analysis"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

const recentTrades = 5

// Style definitions.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true)
	HelpStyle  = lipgloss.NewStyle().Faint(true)
	MutedStyle = lipgloss.NewStyle().Faint(true)
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	BuyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	SellStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	HoldStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	LabelStyle = lipgloss.NewStyle().Width(18)
	BoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// SignalBadge renders a signal type in its colour.
func SignalBadge(signal types.SignalType) string {
	switch signal {
	case types.SignalTypeBuy:
		return BuyStyle.Render(string(signal))
	case types.SignalTypeSell:
		return SellStyle.Render(string(signal))
	default:
		return HoldStyle.Render(string(types.SignalTypeHold))
	}
}

// FormatOptional formats a possibly undefined value with the given precision.
func FormatOptional(value optional.Option[float64], precision int) string {
	v, err := value.Take()
	if err != nil {
		return "n/a"
	}

	return fmt.Sprintf("%.*f", precision, v)
}

func line(label, value string) string {
	return LabelStyle.Render(label) + value
}

// RenderReport renders one analysis report.
func RenderReport(report analysis.Report) string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render(fmt.Sprintf("%s · %s", strings.ToUpper(report.Asset), report.Timeframe)))
	s.WriteString(MutedStyle.Render(fmt.Sprintf("  via %s, %d candles", report.Provider, report.Series.Len())))
	s.WriteString("\n\n")

	if row, ok := report.Enriched.Last(); ok {
		s.WriteString(line("Close", fmt.Sprintf("%.4f", row.Close)) + "\n")
		s.WriteString(line("Change", FormatPercent(row.PriceChange)) + "\n")
		s.WriteString(line("MA50", FormatOptional(row.MA50, 4)) + "\n")
		s.WriteString(line("RSI14", FormatOptional(row.RSI14, 2)) + "\n")
		s.WriteString(line("MACD / signal", FormatOptional(row.MACD, 4)+" / "+FormatOptional(row.MACDSignal, 4)) + "\n")
	}

	if latest, ok := report.LatestSignal(); ok {
		votes := fmt.Sprintf("ma %+d  rsi %+d  macd %+d", latest.MAVote, latest.RSIVote, latest.MACDVote)
		if latest.Abstained {
			votes = "abstained (indicators undefined)"
		}

		s.WriteString(line("Signal", fmt.Sprintf("%s  %.0f%% confidence", SignalBadge(latest.Final), latest.Confidence)) + "\n")
		s.WriteString(line("Votes", votes) + "\n")
	}

	s.WriteString(line("Entries / exits", fmt.Sprintf("%d / %d", len(report.Signals.EntryPoints), len(report.Signals.ExitPoints))) + "\n")

	if p, err := report.Prediction.Take(); err == nil {
		s.WriteString(line("Prediction", fmt.Sprintf("%+.2f%% (%.0f%% confidence)", p.PredictedChangePct, p.ConfidencePct)) + "\n")
	}

	s.WriteString("\n")
	s.WriteString(RenderBacktest(report.Backtest))

	return BoxStyle.Render(s.String())
}

// FormatPercent formats a fractional change as a percentage.
func FormatPercent(value optional.Option[float64]) string {
	v, err := value.Take()
	if err != nil {
		return "n/a"
	}

	return fmt.Sprintf("%+.2f%%", v*100)
}

// RenderBacktest renders the backtest metrics and the most recent trades.
func RenderBacktest(report types.BacktestReport) string {
	var s strings.Builder

	result := report.Result

	s.WriteString(TitleStyle.Render("Backtest") + MutedStyle.Render(fmt.Sprintf("  capital %.2f", report.InitialCapital)) + "\n")
	s.WriteString(line("Total return", fmt.Sprintf("%+.2f%%", result.TotalReturnPct)) + "\n")
	s.WriteString(line("Win rate", fmt.Sprintf("%.1f%%", result.WinRate*100)) + "\n")
	s.WriteString(line("Max drawdown", fmt.Sprintf("%.2f%%", result.MaxDrawdownPct)) + "\n")
	s.WriteString(line("Trades", fmt.Sprintf("%d", result.TradeCount)))

	if len(report.Trades) == 0 {
		return s.String()
	}

	trades := report.Trades
	if len(trades) > recentTrades {
		trades = trades[len(trades)-recentTrades:]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Time", "Type", "Price", "Capital", "PnL")

	for _, trade := range trades {
		t.Row(
			trade.Time.UTC().Format("2006-01-02 15:04"),
			string(trade.Type),
			fmt.Sprintf("%.4f", trade.Price),
			fmt.Sprintf("%.2f", trade.Capital),
			fmt.Sprintf("%+.2f", trade.PnL),
		)
	}

	s.WriteString("\n")
	s.WriteString(t.Render())

	return s.String()
}

// RenderError renders a failed analysis. Exhausted providers are reported as retryable.
func RenderError(asset string, timeframe types.Timeframe, err error) string {
	header := TitleStyle.Render(fmt.Sprintf("%s · %s", strings.ToUpper(asset), timeframe))

	if errors.HasCode(err, errors.ErrCodeAllProvidersExhausted) {
		return BoxStyle.Render(header + "\n" + HoldStyle.Render("All providers are rate limited or unavailable, retry later"))
	}

	return BoxStyle.Render(header + "\n" + ErrorStyle.Render(err.Error()))
}

// RenderTimeframes renders the effective timeframe list.
func RenderTimeframes(timeframes []types.Timeframe) string {
	if len(timeframes) == 0 {
		return MutedStyle.Render("no timeframe is supported by every provider")
	}

	tokens := make([]string, len(timeframes))
	for i, tf := range timeframes {
		tokens[i] = tf.String()
	}

	return strings.Join(tokens, ", ")
}

// RenderFatal renders an error that ends the command.
func RenderFatal(err error) string {
	return ErrorStyle.Render("error: ") + err.Error()
}
