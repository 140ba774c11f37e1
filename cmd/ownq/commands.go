package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mickamy/ownq/internal/dberr"
	"github.com/mickamy/ownq/model"
	"github.com/mickamy/ownq/orm"
	"github.com/mickamy/ownq/ownership"
	"github.com/mickamy/ownq/query"
	"github.com/mickamy/ownq/schema"
	"github.com/mickamy/ownq/scope"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the collections and items tables",
		Long:  `Create the collections and items tables and their indexes. Safe to run repeatedly.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := schema.Initialize(cmd.Context(), a.db); err != nil {
				return err
			}
			a.logger.Info("schema initialized")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed NAME:OWNER_A,OWNER_B,OWNER_C...",
		Short: "Create items, each with three new collections",
		Long: `Create one item per argument together with three new collections owned by
OWNER_A, OWNER_B and OWNER_C. All arguments are written in one transaction.`,
		Example: "  ownq seed data1:user1,user1,user1 data2:user1,user1,user2",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := make([]ownership.SeedItem, 0, len(args))
			for _, arg := range args {
				spec, err := parseSeedItem(arg)
				if err != nil {
					return err
				}
				specs = append(specs, spec)
			}
			items, err := ownership.Seed(cmd.Context(), a.db, specs)
			if err != nil {
				return err
			}
			a.logger.Info("seeded", slog.Int("items", len(items)))
			return printItems(cmd.OutOrStdout(), items)
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	var (
		limit  int
		offset int
		names  []string
		desc   bool
		count  bool
	)
	cmd := &cobra.Command{
		Use:   "find OWNER",
		Short: "List the items whose three collections all belong to OWNER",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner := args[0]
			var filters scope.Scopes
			if len(names) > 0 {
				filters = filters.Append(scope.In(query.ItemsTable()+".name", names))
			}
			if count {
				n, err := ownership.CountItemsOwnedBy(cmd.Context(), a.db, owner, filters...)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
				return err
			}

			scopes := filters.Append(scope.Paginate(limit, offset)...)
			if desc {
				scopes = scopes.Append(scope.OrderBy(query.ItemsTable() + ".id DESC"))
			}
			items, err := ownership.FindItemsOwnedBy(cmd.Context(), a.db, owner, scopes...)
			if err != nil {
				return err
			}
			a.logger.Info("found", slog.String("owner", owner), slog.Int("items", len(items)))
			return printItems(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of items (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of matching items to skip")
	cmd.Flags().StringSliceVar(&names, "names", nil, "restrict to these item names")
	cmd.Flags().BoolVar(&desc, "desc", false, "newest items first")
	cmd.Flags().BoolVar(&count, "count", false, "print the number of matching items instead of the items")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print one item with whichever slots it references",
		Long:  `Print the item called NAME. Unset slots are shown as nil.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := ownership.ItemByName(cmd.Context(), a.db, args[0])
			if err != nil {
				return err
			}
			return printItems(cmd.OutOrStdout(), []model.Item{item})
		},
	}
}

var demoItems = []ownership.SeedItem{
	{Name: "data1", OwnerA: "user1", OwnerB: "user1", OwnerC: "user1"},
	{Name: "data2", OwnerA: "user1", OwnerB: "user1", OwnerC: "user2"},
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed data1 and data2, then show that only data1 belongs to user1",
		Long: `Initialize the store, seed data1 (user1, user1, user1) and data2
(user1, user1, user2), and list the items owned by user1. Only data1 matches
because data2's third collection belongs to user2.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := schema.Initialize(ctx, a.db); err != nil {
				return err
			}
			if _, err := ownership.Seed(ctx, a.db, demoItems); err != nil {
				if !orm.IsIntegrityError(err) || dberr.Classify(err) != dberr.Unique {
					return err
				}
				a.logger.Info("demo items already present")
			}

			names := make([]string, len(demoItems))
			for i, it := range demoItems {
				names[i] = it.Name
			}
			items, err := ownership.FindItemsOwnedBy(ctx, a.db, "user1", scope.In(query.ItemsTable()+".name", names))
			if err != nil {
				return err
			}
			if err := printItems(cmd.OutOrStdout(), items); err != nil {
				return err
			}

			got := make([]string, len(items))
			for i, it := range items {
				got[i] = it.Name
			}
			if !slices.Equal(got, []string{"data1"}) {
				return fmt.Errorf("demo: user1 owns %v, want [data1]", got)
			}
			return nil
		},
	}
}

func printItems(w io.Writer, items []model.Item) error {
	for _, it := range items {
		if _, err := fmt.Fprintln(w, it.String()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
