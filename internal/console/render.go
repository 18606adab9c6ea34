package console

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"factoria/internal/domain"
)

// Rendering is pure formatting over store snapshots; nothing here touches
// the network or mutates state.

func FormatProducts(items []domain.Product) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tMATERIALS")
	for _, p := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock, len(p.RawMaterials))
	}
	w.Flush()
	return b.String()
}

func FormatProductDetail(p domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product #%d  %s  price=%s  stock=%d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	if len(p.RawMaterials) == 0 {
		b.WriteString("  no raw materials linked\n")
		return b.String()
	}
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  MATERIAL ID\tNAME\tREQUIRED\tIN STOCK")
	for _, link := range p.RawMaterials {
		fmt.Fprintf(w, "  %d\t%s\t%d\t%d\n",
			link.RawMaterial.ID, link.RawMaterial.Name, link.QuantityRequired, link.RawMaterial.StockQuantity)
	}
	w.Flush()
	return b.String()
}

func FormatRawMaterials(items []domain.RawMaterial, threshold int) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTOCK\t")
	for _, m := range items {
		flag := ""
		if m.IsLowStock(threshold) {
			flag = "LOW"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", m.ID, m.Name, m.StockQuantity, flag)
	}
	w.Flush()
	return b.String()
}

func FormatPlan(plan domain.ProductionPlan) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tQUANTITY\tUNIT VALUE\tTOTAL")
	for _, item := range plan.Items {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			item.ProductName, item.Quantity, item.UnitValue.StringFixed(2), item.TotalValue.StringFixed(2))
	}
	w.Flush()
	fmt.Fprintf(&b, "plan total: %s\n", plan.TotalValue.StringFixed(2))
	return b.String()
}
