package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/MrAlob/project-exam-1/pkg/domain/model"
	"github.com/MrAlob/project-exam-1/pkg/format"
)

// The shop ships for free.
const shippingCost = 0

var (
	errEmptyCart         = errors.New("the cart is empty, there is nothing to check out")
	errNoPaymentMethod   = errors.New("select how you want to pay")
	checkoutEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonPhoneChars        = regexp.MustCompile(`[^\d+]`)
)

func checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "turn the cart into an order snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "payment", Value: "card", Usage: "payment method"},
			&cli.StringFlag{Name: "first-name"},
			&cli.StringFlag{Name: "last-name"},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "phone"},
			&cli.StringFlag{Name: "address"},
			&cli.StringFlag{Name: "city"},
			&cli.StringFlag{Name: "postal"},
			&cli.StringFlag{Name: "country"},
			&cli.StringFlag{Name: "notes"},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv()
			if err != nil {
				return err
			}

			items := e.cart.Items()
			if len(items) == 0 {
				return errEmptyCart
			}

			if err := validateCheckout(c); err != nil {
				return err
			}

			subtotal := e.cart.Subtotal()
			order := &model.Order{
				CreatedAt:     time.Now().UTC().Format(time.RFC3339),
				PaymentMethod: c.String("payment"),
				Items:         items,
				Totals: model.Totals{
					Subtotal: subtotal,
					Shipping: shippingCost,
					Total:    subtotal + shippingCost,
				},
				Customer: model.Customer{
					FirstName: strings.TrimSpace(c.String("first-name")),
					LastName:  strings.TrimSpace(c.String("last-name")),
					Email:     strings.TrimSpace(c.String("email")),
					Phone:     strings.TrimSpace(c.String("phone")),
				},
				Delivery: model.Delivery{
					Address: strings.TrimSpace(c.String("address")),
					City:    strings.TrimSpace(c.String("city")),
					Postal:  strings.TrimSpace(c.String("postal")),
					Country: strings.TrimSpace(c.String("country")),
				},
				Notes: strings.TrimSpace(c.String("notes")),
			}

			saved, err := e.orders.Save(order)
			if err != nil {
				return errors.Wrap(err, "we could not store your order confirmation, please try again")
			}
			e.cart.Clear()

			fmt.Printf("Order confirmed! Your order number is %s.\n", saved.OrderNumber)
			fmt.Printf("Total charged: %s\n", format.Price(saved.Totals.Total, e.cfg.Currency))
			return nil
		},
	}
}

// validateCheckout checks only the fields the customer filled in, the same
// lenient rules the checkout form applies.
func validateCheckout(c *cli.Context) error {
	if strings.TrimSpace(c.String("payment")) == "" {
		return errNoPaymentMethod
	}

	if email := strings.TrimSpace(c.String("email")); email != "" {
		if !checkoutEmailPattern.MatchString(email) {
			return errors.New("email must be in a valid format")
		}
	}
	if phone := strings.TrimSpace(c.String("phone")); phone != "" {
		digits := nonPhoneChars.ReplaceAllString(phone, "")
		if len(digits) < 7 {
			return errors.New("phone number must include at least 7 digits")
		}
	}
	if postal := strings.TrimSpace(c.String("postal")); postal != "" && len(postal) < 3 {
		return errors.New("postal code must be at least 3 characters long")
	}
	return nil
}

func orderCommand() *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "inspect the last completed order",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the last order confirmation",
				Action: func(c *cli.Context) error {
					e, err := newEnv()
					if err != nil {
						return err
					}

					order := e.orders.Last()
					if order == nil {
						fmt.Println("No completed order found.")
						return nil
					}

					fmt.Printf("Order %s (%s)\n", order.OrderNumber, order.CreatedAt)
					fmt.Printf("Payment: %s\n", order.PaymentMethod)
					for _, item := range order.Items {
						fmt.Printf("  %g x %s = %s\n", item.Quantity, item.Title,
							format.Price(item.Subtotal(), e.cfg.Currency))
					}
					fmt.Printf("Subtotal: %s\n", format.Price(order.Totals.Subtotal, e.cfg.Currency))
					fmt.Printf("Shipping: %s\n", format.Price(order.Totals.Shipping, e.cfg.Currency))
					fmt.Printf("Total:    %s\n", format.Price(order.Totals.Total, e.cfg.Currency))
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "forget the last order",
				Action: func(c *cli.Context) error {
					e, err := newEnv()
					if err != nil {
						return err
					}
					e.orders.Clear()
					fmt.Println("Order history cleared.")
					return nil
				},
			},
		},
	}
}
