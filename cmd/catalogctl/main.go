// Command catalogctl is a terminal front end for the product catalog API.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"catalog/pkg/catalogclient"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const usage = `Usage: catalogctl [global flags] <command> [flags]

Commands:
  list         list active products
  get <id>     show one product
  create       create a product
  edit <id>    update fields of a product
  delete <id>  soft-delete a product
  categories   list valid categories
  stats        summarize the catalog
  token        issue a bearer token for write routes

Global flags:
`

// app carries what every command needs.
type app struct {
	cfg    *viper.Viper
	client *catalogclient.Client
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("catalogctl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.String("api-url", "http://localhost:3000", "catalog API base URL (CATALOG_API_URL)")
	fs.String("token", "", "bearer token for write routes (CATALOG_TOKEN)")
	fs.Duration("timeout", 10*time.Second, "request timeout (CATALOG_TIMEOUT)")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	v := viper.New()
	v.SetEnvPrefix("catalog")
	v.AutomaticEnv()
	_ = v.BindPFlag("api_url", fs.Lookup("api-url"))
	_ = v.BindPFlag("token", fs.Lookup("token"))
	_ = v.BindPFlag("timeout", fs.Lookup("timeout"))

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	a := &app{
		cfg: v,
		client: catalogclient.New(v.GetString("api_url"),
			catalogclient.WithToken(v.GetString("token")),
			catalogclient.WithTimeout(v.GetDuration("timeout")),
		),
		stdout: stdout,
		stderr: stderr,
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		fs.Usage()
		return 2
	}
	return cmd(a, rest[1:])
}
