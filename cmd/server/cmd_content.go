package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"gala/internal/database"
	"gala/internal/repository"
	"gala/internal/service"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data",
}

var seedSectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "Seed the sample sector hierarchy (Oil & Gas / Completion)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()
		if err := database.AutoMigrate(a.db); err != nil {
			return err
		}
		n, err := database.SeedSectors(cmd.Context(), a.db)
		if errors.Is(err, database.ErrAlreadySeeded) {
			fmt.Fprintln(cmd.OutOrStdout(), "sector items already present, nothing to do")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d sector records\n", n)
		return nil
	},
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Inspect stored content sections",
}

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections with their versions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()
		list, err := repository.NewSectionRepository(a.db).List(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSECTION\tVERSION\tUPDATED")
		for _, s := range list {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", s.ID, s.Section, s.Version, s.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var sectionsExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print a section's data as indented JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()
		svc := service.NewSectionService(repository.NewSectionRepository(a.db), nil, nil, service.SectionOptions{}, a.log)
		sec, err := svc.GetByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, sec.Data, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

func init() {
	seedCmd.AddCommand(seedSectorsCmd)
	sectionsCmd.AddCommand(sectionsListCmd, sectionsExportCmd)
}
