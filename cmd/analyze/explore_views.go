package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

// listItem implements list.Item for the timeframe list.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

// NewTimeframeList creates the timeframe picker from the effective timeframes.
func NewTimeframeList(timeframes []types.Timeframe) list.Model {
	items := make([]list.Item, 0, len(timeframes))
	for _, tf := range timeframes {
		items = append(items, listItem{name: tf.String(), description: fmt.Sprintf("%s candles", tf.Duration())})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Timeframe"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewAssetInput creates the text input for asset entry.
func NewAssetInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "btc,eth,sol"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50
	ti.Prompt = "> "

	return ti
}

// ParseAssets parses comma-separated asset ids into a lowercase slice.
func ParseAssets(input string) []string {
	return normalizeAssets([]string{input})
}

// NewResultTable creates the table that lists one row per asset.
func NewResultTable() table.Model {
	columns := []table.Column{
		{Title: "Asset", Width: 8},
		{Title: "Provider", Width: 10},
		{Title: "Close", Width: 14},
		{Title: "RSI14", Width: 8},
		{Title: "Signal", Width: 8},
		{Title: "Conf", Width: 6},
		{Title: "Return", Width: 10},
		{Title: "Win", Width: 7},
		{Title: "Trades", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateResultRows rebuilds the table rows in asset order.
func UpdateResultRows(t table.Model, assets []string, results map[string]AnalysisMsg) table.Model {
	rows := make([]table.Row, 0, len(assets))

	for _, asset := range assets {
		result, ok := results[asset]
		if !ok {
			rows = append(rows, table.Row{strings.ToUpper(asset), "…", "", "", "", "", "", "", ""})

			continue
		}

		if result.Err != nil {
			status := "error"
			if errors.HasCode(result.Err, errors.ErrCodeAllProvidersExhausted) {
				status = "retry later"
			}

			rows = append(rows, table.Row{strings.ToUpper(asset), status, "", "", "", "", "", "", ""})

			continue
		}

		report := result.Report
		row := table.Row{strings.ToUpper(asset), report.Provider, "", "", string(types.SignalTypeHold), "0%", "", "", ""}

		if last, ok := report.Enriched.Last(); ok {
			row[2] = fmt.Sprintf("%.4f", last.Close)
			row[3] = FormatOptional(last.RSI14, 1)
		}

		if latest, ok := report.LatestSignal(); ok {
			row[4] = string(latest.Final)
			row[5] = fmt.Sprintf("%.0f%%", latest.Confidence)
		}

		backtest := report.Backtest.Result
		row[6] = fmt.Sprintf("%+.2f%%", backtest.TotalReturnPct)
		row[7] = fmt.Sprintf("%.0f%%", backtest.WinRate*100)
		row[8] = fmt.Sprintf("%d", backtest.TradeCount)

		rows = append(rows, row)
	}

	t.SetRows(rows)

	return t
}
