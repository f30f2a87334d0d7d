package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/LexConnect/internal/domain/legal"
)

type taxonomyView []legal.TaxonomyEntry

func (v taxonomyView) TableHeaders() []string {
	return []string{"CATEGORY", "ROSTER", "SUBS", "SUB-SPECIALTIES"}
}

func (v taxonomyView) TableRows() [][]string {
	rows := make([][]string, 0, len(v))
	for _, e := range v {
		rows = append(rows, []string{
			e.Name,
			e.RosterSpecialization,
			strconv.Itoa(len(e.SubSpecialties)),
			strings.Join(e.SubSpecialties, ", "),
		})
	}
	return rows
}

// KBValidation summarises a knowledge base that loaded cleanly.
type KBValidation struct {
	Source         string `json:"source"`
	Version        string `json:"version"`
	Categories     int    `json:"categories"`
	SubSpecialties int    `json:"sub_specialties"`
	Niches         int    `json:"niches"`
	Priorities     int    `json:"priority_patterns"`
}

func (v KBValidation) String() string {
	return fmt.Sprintf("%s: ok (version %s, %d categories, %d sub-specialties, %d niches, %d priority patterns)",
		v.Source, v.Version, v.Categories, v.SubSpecialties, v.Niches, v.Priorities)
}

// NewKBCmd groups knowledge base inspection commands.
func NewKBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect the legal knowledge base",
	}
	cmd.AddCommand(newKBListCmd(), newKBValidateCmd())
	return cmd
}

func newKBListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories and sub-specialties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			kb, err := cliCtx.KnowledgeBase()
			if err != nil {
				return err
			}
			return PrintResult(cmd, taxonomyView(kb.Taxonomy()))
		},
	}
}

func newKBValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a knowledge base file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			source := file
			if source == "" {
				source = cliCtx.Config.KnowledgeBase.Path
			}
			kb, err := legal.Resolve(source)
			if err != nil {
				return err
			}
			if source == "" {
				source = "embedded"
			}
			return PrintResult(cmd, KBValidation{
				Source:         source,
				Version:        kb.Version,
				Categories:     len(kb.Categories),
				SubSpecialties: kb.SubSpecialtyCount(),
				Niches:         len(kb.Niches),
				Priorities:     len(kb.PriorityPatterns),
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "knowledge base YAML (default: configured or embedded)")
	return cmd
}

//Personal.AI order the ending
