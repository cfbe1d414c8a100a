package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"catalog/internal/models"
	"catalog/pkg/catalogclient"
)

const recentProducts = 5

func renderList(w io.Writer, list *catalogclient.ProductList) error {
	if len(list.Products) == 0 {
		_, err := fmt.Fprintln(w, "No products found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range list.Products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, catalogclient.FormatPrice(p.Price), p.Stock)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Page %d of %d (%d products)\n", list.Page, list.Pages, list.Total)
	return err
}

func renderProduct(w io.Writer, p *models.Product) error {
	status := "active"
	if !p.Active {
		status = "inactive"
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	fmt.Fprintf(tw, "Category:\t%s\n", p.Category)
	fmt.Fprintf(tw, "Price:\t%s\n", catalogclient.FormatPrice(p.Price))
	fmt.Fprintf(tw, "Stock:\t%d\n", p.Stock)
	fmt.Fprintf(tw, "Stock value:\t%s\n", catalogclient.FormatPrice(p.Price*float64(p.Stock)))
	if p.Image != "" {
		fmt.Fprintf(tw, "Image:\t%s\n", p.Image)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", status)
	fmt.Fprintf(tw, "Created:\t%s\n", catalogclient.FormatDate(p.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s\n", catalogclient.FormatDate(p.UpdatedAt))
	return tw.Flush()
}

func renderSummary(w io.Writer, s catalogclient.Summary, products []models.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Products:\t%d\n", s.Products)
	fmt.Fprintf(tw, "Inventory value:\t%s\n", catalogclient.FormatPrice(s.TotalValue))
	fmt.Fprintf(tw, "Categories:\t%d\n", s.Categories)
	fmt.Fprintf(tw, "Low stock:\t%d\n", s.LowStock)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}
	if len(products) > recentProducts {
		products = products[:recentProducts]
	}
	fmt.Fprintln(w, "\nRecent products:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, catalogclient.FormatPrice(p.Price), catalogclient.FormatDate(p.CreatedAt))
	}
	return tw.Flush()
}
