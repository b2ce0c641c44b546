package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/andresuchdata/ledquote/internal/domain"
	"github.com/andresuchdata/ledquote/internal/quote"
	"github.com/andresuchdata/ledquote/internal/service"
)

func writeSummary(w io.Writer, result domain.ProjectResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if result.Client != "" || result.Project != "" {
		fmt.Fprintf(tw, "Client:\t%s\nProject:\t%s\n\n", result.Client, result.Project)
	}

	fmt.Fprintln(tw, "#\tSCREEN\tGRID\tSIZE (m)\tQTY\tCOST\tSELL\tMARGIN")
	for i, res := range result.Screens {
		name := res.Name
		if name == "" {
			name = res.ScreenID
		}
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%.2f x %.2f\t%s\t%s\t%s\t%s\n",
			i+1, name,
			res.Grid.Cols, res.Grid.Rows,
			res.Grid.WidthM, res.Grid.HeightM,
			formatQty(res.ScreenQty.Float()),
			quote.FormatINR(res.Cost.Total, 0),
			quote.FormatINR(res.Sell.Total, 0),
			quote.FormatINR(res.Margin, 0),
		)
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Screens:\t%s\n", formatQty(result.ScreenQty))
	fmt.Fprintf(tw, "Total cost:\t%s\n", quote.FormatINR(result.TotalCost, 2))
	fmt.Fprintf(tw, "Panel sell:\t%s\n", quote.FormatINR(result.PanelSell, 2))
	fmt.Fprintf(tw, "Services sell:\t%s\n", quote.FormatINR(result.ServicesSell, 2))
	fmt.Fprintf(tw, "Total sell:\t%s\n", quote.FormatINR(result.TotalSell, 2))
	fmt.Fprintf(tw, "Margin:\t%s\n", quote.FormatINR(result.TotalMargin, 2))
	if result.TaxRate > 0 {
		fmt.Fprintf(tw, "GST (%s%%):\t%s\n", formatQty(result.TaxRate), quote.FormatINR(result.Tax, 2))
	}
	fmt.Fprintf(tw, "Grand total:\t%s\n", quote.FormatINR(result.GrandTotal, 2))
	for _, p := range result.Payments {
		fmt.Fprintf(tw, "  %s (%s%%):\t%s\n", p.Name, formatQty(p.Percent), quote.FormatINR(p.Amount, 2))
	}

	if len(result.Consolidated) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "COMPONENT\tSPEC\tREQUIRED\tSTOCK\tBALANCE")
		for _, line := range result.Consolidated {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				line.Name, line.Spec, formatQty(line.Required), optional(line.Stock), optional(line.Balance))
		}
	}

	return tw.Flush()
}

func writeStock(w io.Writer, levels []service.StockLevel) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tTYPE\tLABEL\tQTY")
	for _, l := range levels {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ItemID, l.Kind, l.Label, formatQty(l.Qty))
	}
	return tw.Flush()
}

func formatQty(v float64) string {
	return strconv.FormatFloat(quote.RoundTo(v, 2), 'f', -1, 64)
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatQty(*v)
}
