package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the vocabulary catalog",
	}

	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogValidateCmd())
	return cmd
}

func catalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog terms",
		RunE: func(_ *cobra.Command, _ []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tDATATYPE\tCATEGORY\tUNITS")
			for _, term := range cat.Terms {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", term.Label, term.Datatype, term.Category, term.Units)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to write table: %w", err)
			}

			fmt.Printf("\n%d terms (catalog version %s)\n", len(cat.Terms), cat.Version)
			return nil
		},
	}
}

func catalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog file",
		RunE: func(_ *cobra.Command, _ []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			fmt.Printf("catalog OK: version %s, %d terms\n", cat.Version, len(cat.Terms))
			return nil
		},
	}
}
