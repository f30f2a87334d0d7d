package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/internal/infrastructure/storage/jsonfile"
	"github.com/turtacn/LexConnect/internal/intelligence/classifier"
	"github.com/turtacn/LexConnect/internal/intelligence/matcher"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// classify
// ─────────────────────────────────────────────────────────────────────────────

type classificationView struct {
	legal.ClassificationResult
}

func (v classificationView) TableHeaders() []string { return []string{"FIELD", "VALUE"} }

func (v classificationView) TableRows() [][]string {
	return [][]string{
		{"specialization", v.Specialization},
		{"sub_specialty", v.SubSpecialty},
		{"confidence", fmt.Sprintf("%d (%s)", v.Confidence, v.ConfidenceLevel)},
		{"match_type", string(v.MatchType)},
		{"severity", string(v.Severity)},
		{"urgency", string(v.Urgency)},
		{"keywords", strings.Join(v.MatchedKeywords, ", ")},
		{"laws", strings.Join(v.RelevantLaws, "; ")},
	}
}

// NewClassifyCmd classifies a problem description with the rule engine.
func NewClassifyCmd() *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:   "classify <description...>",
		Short: "Classify a legal problem description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			engine, err := newEngine(cliCtx)
			if err != nil {
				return err
			}
			res := engine.Classify(strings.Join(args, " "), city)
			cliCtx.Logger.Debug("classified",
				logging.String("specialization", res.Specialization),
				logging.Int("confidence", res.Confidence))
			return PrintResult(cmd, classificationView{res})
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "city the client is in")
	return cmd
}

func newEngine(cliCtx *CLIContext) (*classifier.Engine, error) {
	kb, err := cliCtx.KnowledgeBase()
	if err != nil {
		return nil, err
	}
	return classifier.New(kb), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// match
// ─────────────────────────────────────────────────────────────────────────────

type matchView struct {
	Classification legal.ClassificationResult `json:"classification"`
	Specialization string                     `json:"specialization"`
	Lawyers        matcher.Result             `json:"lawyers"`
}

func (v matchView) TableHeaders() []string {
	return []string{"SCORE", "NAME", "SUB-SPECIALTY", "LOCATION", "FEE", "REASON"}
}

func (v matchView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Lawyers.All))
	for _, l := range v.Lawyers.All {
		rows = append(rows, []string{
			strconv.Itoa(l.MatchScore),
			l.Name,
			l.SubSpecialty,
			l.Location,
			strconv.FormatFloat(l.Fee, 'f', 0, 64),
			l.MatchReason,
		})
	}
	return rows
}

// NewMatchCmd classifies a description and ranks a roster against it.
func NewMatchCmd() *cobra.Command {
	var (
		city   string
		roster string
	)

	cmd := &cobra.Command{
		Use:   "match <description...>",
		Short: "Classify a problem and rank matching lawyers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if strings.TrimSpace(city) == "" {
				return errors.InvalidParam("--city is required")
			}
			engine, err := newEngine(cliCtx)
			if err != nil {
				return err
			}
			lawyers, err := loadRoster(roster)
			if err != nil {
				return err
			}

			res := engine.Classify(strings.Join(args, " "), city)
			target := res
			target.Specialization = engine.KnowledgeBase().RosterSpecialization(res.Specialization)
			matches := matcher.Match(lawyers, target, city)

			cliCtx.Logger.Debug("matched",
				logging.String("specialization", target.Specialization),
				logging.Int("roster", len(lawyers)),
				logging.Int("matches", len(matches.All)))

			if cliCtx.OutputFormat == OutputText {
				fmt.Fprintf(cmd.OutOrStdout(), "%s / %s (confidence %d)\n\n",
					res.Specialization, res.SubSpecialty, res.Confidence)
			}
			return PrintResult(cmd, matchView{Classification: res, Specialization: target.Specialization, Lawyers: matches})
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "city the client is in (required)")
	cmd.Flags().StringVar(&roster, "roster", "", "JSON file holding an array of lawyers (default: built-in roster)")
	return cmd
}

func loadRoster(path string) ([]lawyer.Lawyer, error) {
	if path == "" {
		seed := jsonfile.SeedLawyers()
		out := make([]lawyer.Lawyer, 0, len(seed))
		for _, l := range seed {
			out = append(out, *l)
		}
		return out, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "read roster")
	}
	var out []lawyer.Lawyer
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "decode roster").WithDetail(path)
	}
	return out, nil
}

//Personal.AI order the ending
