package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/pocket-planner/internal/client"
	"github.com/carson-networks/pocket-planner/internal/config"
	"github.com/carson-networks/pocket-planner/internal/securestore"
	"github.com/carson-networks/pocket-planner/internal/store"
)

// session is what every command works with once the flags are read.
type session struct {
	out    io.Writer
	debug  bool
	secure *securestore.Store
	api    *client.Client
	store  *store.Store
}

func newApp(env *config.Config, out io.Writer) *cli.App {
	s := &session{out: out}

	return &cli.App{
		Name:   "pocketctl",
		Usage:  "manage Pocket Planner cards, categories and transactions",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Value: env.APIBaseURL, Usage: "API base URL including /api"},
			&cli.StringFlag{Name: "store-dir", Value: env.TokenStoreDir, Usage: "directory of the encrypted token store"},
			&cli.StringFlag{Name: "store-key", Value: env.TokenStoreKey, Usage: "secret protecting the token store"},
			&cli.IntFlag{Name: "page-size", Value: store.DefaultPageSize, Usage: "transactions loaded per page"},
			&cli.BoolFlag{Name: "debug", Usage: "dump the local state after each command"},
		},
		Before: s.open,
		After:  s.dump,
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "exchange a Google id_token for a session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Required: true},
				},
				Action: s.login,
			},
			{Name: "logout", Usage: "end the session", Action: s.logout},
			{Name: "summary", Usage: "show the signed-in user and totals", Action: s.summary},
			{Name: "cards", Usage: "list cards", Action: s.listCards},
			{
				Name:  "card",
				Usage: "add or delete a card",
				Subcommands: []*cli.Command{
					{
						Name: "add",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Required: true},
							&cli.StringFlag{Name: "type", Value: "debit", Usage: "credit or debit"},
							&cli.StringFlag{Name: "limit", Usage: "credit limit, e.g. 1500.00"},
						},
						Action: s.addCard,
					},
					{Name: "delete", ArgsUsage: "ID", Action: s.deleteCard},
				},
			},
			{Name: "categories", Usage: "list categories", Action: s.listCategories},
			{
				Name:  "category",
				Usage: "add or delete a category",
				Subcommands: []*cli.Command{
					{
						Name: "add",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Required: true},
							&cli.StringFlag{Name: "color"},
						},
						Action: s.addCategory,
					},
					{Name: "delete", ArgsUsage: "ID", Action: s.deleteCategory},
				},
			},
			{
				Name:  "transactions",
				Usage: "list one page of transactions",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: store.DefaultPageSize},
					&cli.IntFlag{Name: "offset"},
				},
				Action: s.listTransactions,
			},
			{
				Name:  "transaction",
				Usage: "add or delete a transaction",
				Subcommands: []*cli.Command{
					{
						Name: "add",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "card", Required: true},
							&cli.StringFlag{Name: "category", Required: true},
							&cli.StringFlag{Name: "amount", Required: true},
							&cli.StringFlag{Name: "description"},
							&cli.StringFlag{Name: "type", Value: "expense", Usage: "expense, income or payment"},
							&cli.TimestampFlag{Name: "date", Layout: time.RFC3339},
						},
						Action: s.addTransaction,
					},
					{Name: "delete", ArgsUsage: "ID", Action: s.deleteTransaction},
				},
			},
		},
	}
}

func (s *session) open(c *cli.Context) error {
	if c.String("store-key") == "" {
		return errors.New("a token store secret is required (--store-key or TOKEN_STORE_KEY)")
	}

	secure, err := securestore.Open(c.String("store-dir"), c.String("store-key"))
	if err != nil {
		return err
	}
	s.secure = secure
	s.debug = c.Bool("debug")
	s.api = client.New(c.String("api"), &http.Client{Timeout: 30 * time.Second})
	s.store = store.New(s.api, c.Int("page-size"))

	var saved securestore.Session
	if _, err = secure.Get(securestore.SessionKey, &saved); err != nil {
		return fmt.Errorf("read stored session: %w", err)
	}
	s.api.SetToken(saved.Token)
	return nil
}

func (s *session) dump(*cli.Context) error {
	if s.debug && s.store != nil {
		spew.Fdump(s.out, s.store.Snapshot())
	}
	return nil
}

func requireID(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("expected exactly one ID argument", 2)
	}
	return c.Args().First(), nil
}
