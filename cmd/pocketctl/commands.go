package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/pocket-planner/internal/client"
	"github.com/carson-networks/pocket-planner/internal/domain"
	"github.com/carson-networks/pocket-planner/internal/securestore"
)

func (s *session) login(c *cli.Context) error {
	token := c.String("token")
	if err := s.store.LoginWithToken(c.Context, token); err != nil {
		return err
	}
	if err := s.secure.Set(securestore.SessionKey, securestore.Session{Token: token}); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Signed in as %s\n", s.store.Snapshot().User.Email)
	return nil
}

// logout always forgets the stored token, even when the server is unreachable.
func (s *session) logout(c *cli.Context) error {
	serverErr := s.store.Logout(c.Context)
	if err := s.secure.Delete(securestore.SessionKey); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Signed out")
	return serverErr
}

func (s *session) summary(c *cli.Context) error {
	if err := s.store.Bootstrap(c.Context); err != nil {
		return err
	}
	state := s.store.Snapshot()

	total := decimal.Zero
	for _, card := range state.Cards {
		total = total.Add(card.CurrentBalance)
	}
	fmt.Fprintf(s.out, "%s <%s>\n", state.User.Name, state.User.Email)
	fmt.Fprintf(s.out, "cards: %d  categories: %d  transactions loaded: %d\n",
		len(state.Cards), len(state.Categories), len(state.Transactions))
	fmt.Fprintf(s.out, "total balance: %s\n", total.StringFixed(2))
	return nil
}

func (s *session) listCards(c *cli.Context) error {
	if err := s.store.Bootstrap(c.Context); err != nil {
		return err
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE\tLIMIT")
	for _, card := range s.store.Snapshot().Cards {
		limit := "-"
		if card.CreditLimit != nil {
			limit = card.CreditLimit.StringFixed(2)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", card.ID, card.Name, card.Type, card.CurrentBalance.StringFixed(2), limit)
	}
	return w.Flush()
}

func (s *session) addCard(c *cli.Context) error {
	cardType := domain.CardType(c.String("type"))
	if !cardType.Valid() {
		return cli.Exit(fmt.Sprintf("unknown card type %q", cardType), 2)
	}

	input := client.NewCard{Name: c.String("name"), Type: cardType}
	if raw := c.String("limit"); raw != "" {
		limit, err := decimal.NewFromString(raw)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid limit %q", raw), 2)
		}
		input.CreditLimit = &limit
	}

	card, err := s.store.AddCard(c.Context, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Created card %s\n", card.ID)
	return nil
}

func (s *session) deleteCard(c *cli.Context) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err = s.store.DeleteCard(c.Context, id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted card %s\n", id)
	return nil
}

func (s *session) listCategories(c *cli.Context) error {
	if err := s.store.Bootstrap(c.Context); err != nil {
		return err
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR")
	for _, category := range s.store.Snapshot().Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n", category.ID, category.Name, category.Color)
	}
	return w.Flush()
}

func (s *session) addCategory(c *cli.Context) error {
	category, err := s.store.AddCategory(c.Context, client.NewCategory{Name: c.String("name"), Color: c.String("color")})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Created category %s\n", category.ID)
	return nil
}

func (s *session) deleteCategory(c *cli.Context) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err = s.store.DeleteCategory(c.Context, id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted category %s\n", id)
	return nil
}

func (s *session) listTransactions(c *cli.Context) error {
	transactions, err := s.api.FetchTransactionsPage(c.Context, c.Int("limit"), c.Int("offset"))
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCARD\tCATEGORY\tTYPE\tAMOUNT\tDESCRIPTION")
	for _, tx := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format("2006-01-02"), tx.CardID, tx.CategoryID, tx.Type, tx.Amount.StringFixed(2), tx.Description)
	}
	return w.Flush()
}

func (s *session) addTransaction(c *cli.Context) error {
	txType := domain.TransactionType(c.String("type"))
	if !txType.Valid() {
		return cli.Exit(fmt.Sprintf("unknown transaction type %q", txType), 2)
	}
	amount, err := decimal.NewFromString(c.String("amount"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid amount %q", c.String("amount")), 2)
	}

	input := client.NewTransaction{
		CardID:      c.String("card"),
		CategoryID:  c.String("category"),
		Amount:      amount,
		Description: c.String("description"),
		Type:        txType,
	}
	if date := c.Timestamp("date"); date != nil {
		input.Date = *date
	}

	tx, err := s.store.AddTransaction(c.Context, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Created transaction %s\n", tx.ID)
	return nil
}

func (s *session) deleteTransaction(c *cli.Context) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	if err = s.store.DeleteTransaction(c.Context, id); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Deleted transaction %s\n", id)
	return nil
}
