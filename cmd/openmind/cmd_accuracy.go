package main

import (
	"fmt"
	"io"

	"github.com/Harshitk-cp/openmind/internal/epistemic"
	"github.com/Harshitk-cp/openmind/internal/service"
	"github.com/spf13/cobra"
)

func newInformationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "information",
		Short: "Accuracy of testimony after source and content evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			var q service.InformationQuery
			q.SourceEvaluativeCapacity, _ = cmd.Flags().GetFloat64("source")
			q.CompetenceAssociate, _ = cmd.Flags().GetFloat64("associate")
			q.CompetenceOpposer, _ = cmd.Flags().GetFloat64("opposer")
			if cmd.Flags().Changed("content-right") {
				v, _ := cmd.Flags().GetFloat64("content-right")
				q.ContentEvaluationRight = &v
			}
			if cmd.Flags().Changed("content-wrong") {
				v, _ := cmd.Flags().GetFloat64("content-wrong")
				q.ContentEvaluationWrong = &v
			}

			res, err := service.NewAccuracyService(newLogger(cmd)).Information(q)
			if err != nil {
				return err
			}
			return render(cmd, res, func(w io.Writer) error {
				fmt.Fprintf(w, "information accuracy:     %.6f\n", res.InformationAccuracy)
				fmt.Fprintf(w, "without content filter:   %.6f\n", res.CompanionAccuracyWithoutContent)
				_, err := fmt.Fprintf(w, "added by content filter:  %+.6f\n", res.AddedContentValue)
				return err
			})
		},
	}

	cmd.Flags().Float64("source", epistemic.DefaultSourceEvaluativeCapacity, "Source evaluative capacity")
	cmd.Flags().Float64("associate", epistemic.DefaultCompetenceAssociate, "Competence of associates")
	cmd.Flags().Float64("opposer", epistemic.DefaultCompetenceOpposer, "Competence of opposers")
	cmd.Flags().Float64("content-right", epistemic.NeutralContent, "Probability right content is accepted")
	cmd.Flags().Float64("content-wrong", epistemic.NeutralContent, "Probability wrong content is rejected")
	return cmd
}

func addParameterFlags(cmd *cobra.Command) {
	d := epistemic.DefaultParameters()
	cmd.Flags().IntP("degree", "n", d.DegreeOpenMindedness, "Degree of open-mindedness (peers consulted)")
	cmd.Flags().Float64("associate", d.CompetenceAssociate, "Competence of the agent and its associates")
	cmd.Flags().Float64("opposer", d.CompetenceOpposer, "Competence of opposers")
	cmd.Flags().Float64("source", d.SourceEvaluativeCapacity, "Source evaluative capacity")
	cmd.Flags().Float64("content", d.ContentEvaluativeCapacity, "Content evaluative capacity")
}

func parameterFlags(cmd *cobra.Command) epistemic.AgentParameters {
	var p epistemic.AgentParameters
	p.DegreeOpenMindedness, _ = cmd.Flags().GetInt("degree")
	p.CompetenceAssociate, _ = cmd.Flags().GetFloat64("associate")
	p.CompetenceOpposer, _ = cmd.Flags().GetFloat64("opposer")
	p.SourceEvaluativeCapacity, _ = cmd.Flags().GetFloat64("source")
	p.ContentEvaluativeCapacity, _ = cmd.Flags().GetFloat64("content")
	return p
}

func newAccuracyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accuracy",
		Short: "Expected accuracy of an open-minded agent",
		Long: `Computes the probability that the agent holds the right belief after a
majority vote between itself and the peers it consulted. Passing
--companion fixes the accuracy of accepted testimony instead of deriving
it from the evaluative capacities.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parameterFlags(cmd)
			companion := epistemic.Derived
			if cmd.Flags().Changed("companion") {
				v, _ := cmd.Flags().GetFloat64("companion")
				companion = epistemic.Injected(v)
			}

			res, err := service.NewAccuracyService(newLogger(cmd)).Expected(p, companion)
			if err != nil {
				return err
			}
			return render(cmd, res, func(w io.Writer) error {
				fmt.Fprintf(w, "expected accuracy:  %.6f\n", res.ExpectedAccuracy)
				fmt.Fprintf(w, "benefit:            %+.6f\n", res.BenefitOpenMind)
				if res.CompanionAccuracy != nil {
					fmt.Fprintf(w, "companion accuracy: %.6f\n", *res.CompanionAccuracy)
				}
				_, err := fmt.Fprintf(w, "tie probability:    %.6f\n", res.TieProbability)
				return err
			})
		},
	}

	addParameterFlags(cmd)
	cmd.Flags().Float64("companion", 0, "Accuracy of accepted testimony (derived when unset)")
	return cmd
}

func newTippingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tipping",
		Short: "Content evaluative capacity at which open-mindedness pays off",
		RunE: func(cmd *cobra.Command, args []string) error {
			assoc, _ := cmd.Flags().GetFloat64("associate")
			opp := assoc
			if cmd.Flags().Changed("opposer") {
				opp, _ = cmd.Flags().GetFloat64("opposer")
			}
			source, _ := cmd.Flags().GetFloat64("source")
			degree, _ := cmd.Flags().GetInt("degree")

			res, err := service.NewAccuracyService(newLogger(cmd)).TippingContent(assoc, opp, source, degree)
			if err != nil {
				return err
			}
			return render(cmd, res, func(w io.Writer) error {
				fmt.Fprintf(w, "tipping content capacity: %.2f\n", res.TippingContentCapacity)
				_, err := fmt.Fprintf(w, "accuracy at tipping:      %.6f (competence %.2f)\n",
					res.ExpectedAccuracyAtTipping, res.CompetenceAssociate)
				return err
			})
		},
	}

	cmd.Flags().Float64("associate", epistemic.DefaultCompetenceAssociate, "Competence of the agent and its associates")
	cmd.Flags().Float64("opposer", 0, "Competence of opposers (defaults to --associate)")
	cmd.Flags().Float64("source", epistemic.DefaultSourceEvaluativeCapacity, "Source evaluative capacity")
	cmd.Flags().IntP("degree", "n", epistemic.DefaultTippingDegree, "Degree of open-mindedness (peers consulted)")
	return cmd
}

func newTippingSourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tipping-source",
		Short: "Source evaluative capacity at which filtered testimony is mostly right",
		RunE: func(cmd *cobra.Command, args []string) error {
			assoc, _ := cmd.Flags().GetFloat64("associate")
			opp, _ := cmd.Flags().GetFloat64("opposer")

			res, err := service.NewAccuracyService(newLogger(cmd)).TippingSource(assoc, opp)
			if err != nil {
				return err
			}
			return render(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "tipping source capacity: %.6f\n", res.TippingSourceCapacity)
				return err
			})
		},
	}

	cmd.Flags().Float64("associate", epistemic.DefaultCompetenceAssociate, "Competence of associates")
	cmd.Flags().Float64("opposer", epistemic.DefaultCompetenceOpposer, "Competence of opposers")
	return cmd
}
