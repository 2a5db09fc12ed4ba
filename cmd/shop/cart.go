package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/MrAlob/project-exam-1/pkg/domain/model"
	"github.com/MrAlob/project-exam-1/pkg/format"
)

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "inspect and change the shopping cart",
		Subcommands: []*cli.Command{
			cartShowCommand(),
			cartAddCommand(),
			cartSetCommand(),
			cartRemoveCommand(),
			cartClearCommand(),
		},
	}
}

func cartShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "print the cart contents and totals",
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			printCart(e)
			return nil
		},
	}
}

func cartAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "add a catalog product to the cart",
		ArgsUsage: "<product-id>",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "quantity", Aliases: []string{"q"}, Value: 1},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}

			product, err := e.catalog.GetProduct(c.Context, c.Args().First())
			if err != nil {
				return err
			}

			// Snapshot the current price and image so the cart keeps
			// showing what the customer agreed to pay.
			update, err := e.cart.AddItem(model.LineItem{
				ID:    product.ID,
				Title: product.Title,
				Price: product.CurrentPrice(),
				Image: product.ImageSource(),
				Alt:   product.ImageAlt(),
			}, c.Float64("quantity"))
			if err != nil {
				return err
			}

			if update.IsNew {
				fmt.Printf("Added %s to the cart.\n", update.Item.Title)
			} else {
				fmt.Printf("Updated %s, quantity is now %g.\n", update.Item.Title, update.Item.Quantity)
			}
			return nil
		},
	}
}

func cartSetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "set the quantity of a cart line (0 removes it)",
		ArgsUsage: "<product-id>",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "quantity", Aliases: []string{"q"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}

			update, err := e.cart.SetItemQuantity(c.Args().First(), c.Float64("quantity"))
			if err != nil {
				return err
			}

			if update.Item == nil {
				fmt.Println("That product is no longer in the cart.")
			} else {
				fmt.Printf("%s quantity is now %g.\n", update.Item.Title, update.Item.Quantity)
			}
			return nil
		},
	}
}

func cartRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "remove a line from the cart",
		ArgsUsage: "<product-id>",
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			if _, err := e.cart.RemoveItem(c.Args().First()); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}

func cartClearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "empty the cart",
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			e.cart.Clear()
			fmt.Println("Cart cleared.")
			return nil
		},
	}
}

func printCart(e *env) {
	items := e.cart.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tQTY\tPRICE\tLINE TOTAL")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%s\n",
			item.ID,
			item.Title,
			item.Quantity,
			format.Price(item.Price, e.cfg.Currency),
			format.Price(item.Subtotal(), e.cfg.Currency),
		)
	}
	w.Flush()

	subtotal := e.cart.Subtotal()
	fmt.Printf("Subtotal: %s\n", format.Price(subtotal, e.cfg.Currency))
	fmt.Printf("Total:    %s\n", format.Price(subtotal, e.cfg.Currency))
}
