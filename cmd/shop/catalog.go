package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/MrAlob/project-exam-1/pkg/format"
)

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "list products from the catalog",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 12, Usage: "maximum number of products"},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}

			products, err := e.catalog.ListProducts(c.Context, c.Int("limit"))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tTAGS")
			for _, product := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					product.ID,
					product.Title,
					format.Price(product.CurrentPrice(), e.cfg.Currency),
					format.Tags(product.Tags),
				)
			}
			return w.Flush()
		},
	}
}

func productCommand() *cli.Command {
	return &cli.Command{
		Name:      "product",
		Usage:     "show one product",
		ArgsUsage: "<product-id>",
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}

			product, err := e.catalog.GetProduct(c.Context, c.Args().First())
			if err != nil {
				return err
			}

			fmt.Println(product.Title)
			if product.Description != "" {
				fmt.Println(product.Description)
			}
			fmt.Printf("Price: %s", format.Price(product.CurrentPrice(), e.cfg.Currency))
			if product.OnSale() {
				fmt.Printf(" (was %s)", format.Price(product.Price, e.cfg.Currency))
			}
			fmt.Println()
			fmt.Println("Tags:", format.Tags(product.Tags))
			if url := product.ImageSource(); url != "" {
				fmt.Println("Image:", url)
			}
			return nil
		},
	}
}
