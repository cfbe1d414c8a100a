package main

import (
	"context"
	"fmt"
	"time"

	"catalog/internal/models"
	"catalog/internal/services"
	"catalog/pkg/catalogclient"

	"github.com/spf13/pflag"
)

type command func(a *app, args []string) int

var commands = map[string]command{
	"list":       listCmd,
	"get":        getCmd,
	"create":     createCmd,
	"edit":       editCmd,
	"delete":     deleteCmd,
	"categories": categoriesCmd,
	"stats":      statsCmd,
	"token":      tokenCmd,
}

func (a *app) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.GetDuration("timeout")+time.Second)
}

// notify reports a failure to the user.
func (a *app) notify(err error) {
	fmt.Fprintf(a.stderr, "error: %v\n", err)
	for field, msg := range catalogclient.FieldErrors(err) {
		fmt.Fprintf(a.stderr, "  %s: %s\n", field, msg)
	}
}

func listCmd(a *app, args []string) int {
	fs := a.flags("list")
	category := fs.String("category", "", "filter by category")
	name := fs.String("name", "", "filter by name substring")
	minPrice := fs.Float64("min-price", 0, "minimum price")
	maxPrice := fs.Float64("max-price", 0, "maximum price")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "products per page")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := catalogclient.ListOptions{Category: *category, Name: *name, Page: *page, Limit: *limit}
	if fs.Changed("min-price") {
		opts.MinPrice = minPrice
	}
	if fs.Changed("max-price") {
		opts.MaxPrice = maxPrice
	}
	if err := a.showList(opts); err != nil {
		a.notify(err)
		return 1
	}
	return 0
}

func (a *app) showList(opts catalogclient.ListOptions) error {
	ctx, cancel := a.ctx()
	defer cancel()
	list, err := a.client.ListProducts(ctx, opts)
	if err != nil {
		return err
	}
	return renderList(a.stdout, list)
}

// fallbackToList renders the first page after a detail view could not load.
func (a *app) fallbackToList(err error) int {
	a.notify(err)
	if listErr := a.showList(catalogclient.ListOptions{}); listErr != nil {
		a.notify(listErr)
	}
	return 1
}

func getCmd(a *app, args []string) int {
	fs := a.flags("get")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: catalogctl get <id>")
		return 2
	}

	ctx, cancel := a.ctx()
	defer cancel()
	product, err := a.client.GetProduct(ctx, fs.Arg(0))
	if err != nil {
		return a.fallbackToList(err)
	}
	if err := renderProduct(a.stdout, product); err != nil {
		a.notify(err)
		return 1
	}
	return 0
}

// productFlags registers the editable product fields on fs.
type productFlags struct {
	fs          *pflag.FlagSet
	name        *string
	description *string
	price       *float64
	category    *string
	stock       *int
	image       *string
}

func newProductFlags(fs *pflag.FlagSet) *productFlags {
	return &productFlags{
		fs:          fs,
		name:        fs.String("name", "", "product name"),
		description: fs.String("description", "", "product description"),
		price:       fs.Float64("price", 0, "price"),
		category:    fs.String("category", "", "category"),
		stock:       fs.Int("stock", 0, "units in stock"),
		image:       fs.String("image", "", "image URL"),
	}
}

func (f *productFlags) createRequest() models.CreateProductRequest {
	var req models.CreateProductRequest
	if f.fs.Changed("name") {
		req.Name = f.name
	}
	if f.fs.Changed("description") {
		req.Description = f.description
	}
	if f.fs.Changed("price") {
		req.Price = f.price
	}
	if f.fs.Changed("category") {
		req.Category = f.category
	}
	if f.fs.Changed("stock") {
		req.Stock = f.stock
	}
	if f.fs.Changed("image") {
		req.Image = f.image
	}
	return req
}

func (f *productFlags) updateRequest() models.UpdateProductRequest {
	c := f.createRequest()
	return models.UpdateProductRequest{
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Category:    c.Category,
		Stock:       c.Stock,
		Image:       c.Image,
	}
}

func createCmd(a *app, args []string) int {
	fs := a.flags("create")
	pf := newProductFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, cancel := a.ctx()
	defer cancel()
	product, err := a.client.CreateProduct(ctx, pf.createRequest())
	if err != nil {
		a.notify(err)
		return 1
	}
	fmt.Fprintln(a.stdout, "Product created successfully")
	if err := renderProduct(a.stdout, product); err != nil {
		a.notify(err)
		return 1
	}
	return 0
}

func editCmd(a *app, args []string) int {
	fs := a.flags("edit")
	pf := newProductFlags(fs)
	active := fs.Bool("active", true, "set the active flag")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: catalogctl edit <id> [flags]")
		return 2
	}
	id := fs.Arg(0)

	ctx, cancel := a.ctx()
	defer cancel()
	// the edit view starts from the current record
	if _, err := a.client.GetProduct(ctx, id); err != nil {
		return a.fallbackToList(err)
	}

	req := pf.updateRequest()
	if fs.Changed("active") {
		req.Active = active
	}
	product, err := a.client.UpdateProduct(ctx, id, req)
	if err != nil {
		a.notify(err)
		return 1
	}
	fmt.Fprintln(a.stdout, "Product updated successfully")
	if err := renderProduct(a.stdout, product); err != nil {
		a.notify(err)
		return 1
	}
	return 0
}

func deleteCmd(a *app, args []string) int {
	fs := a.flags("delete")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: catalogctl delete <id>")
		return 2
	}

	ctx, cancel := a.ctx()
	defer cancel()
	product, err := a.client.DeleteProduct(ctx, fs.Arg(0))
	if err != nil {
		a.notify(err)
		return 1
	}
	fmt.Fprintf(a.stdout, "Product deleted successfully: %s (%s)\n", product.Name, product.ID)
	return 0
}

func categoriesCmd(a *app, _ []string) int {
	for _, c := range catalogclient.Categories() {
		fmt.Fprintln(a.stdout, c)
	}
	return 0
}

func statsCmd(a *app, args []string) int {
	fs := a.flags("stats")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, cancel := a.ctx()
	defer cancel()
	list, err := a.client.ListProducts(ctx, catalogclient.ListOptions{Limit: 100})
	if err != nil {
		a.notify(err)
		return 1
	}
	if err := renderSummary(a.stdout, catalogclient.Summarize(list.Products), list.Products); err != nil {
		a.notify(err)
		return 1
	}
	return 0
}

func tokenCmd(a *app, args []string) int {
	fs := a.flags("token")
	subject := fs.String("subject", "catalogctl", "token subject")
	fs.String("secret", "", "signing secret (CATALOG_JWT_SECRET)")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	_ = a.cfg.BindPFlag("jwt_secret", fs.Lookup("secret"))

	key := a.cfg.GetString("jwt_secret")
	if key == "" {
		fmt.Fprintln(a.stderr, "a signing secret is required (--secret or CATALOG_JWT_SECRET)")
		return 2
	}
	token, err := services.NewTokenService(key, *ttl).IssueToken(*subject)
	if err != nil {
		a.notify(err)
		return 1
	}
	fmt.Fprintln(a.stdout, token)
	return 0
}
