package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-ats-score/config"
	"github.com/gcbaptista/go-ats-score/internal/extraction"
	"github.com/gcbaptista/go-ats-score/internal/logger"
	"github.com/gcbaptista/go-ats-score/internal/scoring"
	"github.com/gcbaptista/go-ats-score/services"
)

// scoreInput names where the two documents come from. A file wins over
// inline text when both are given. ResumeTextSet marks --resume-text as
// given, so an explicitly empty resume is scored instead of rejected.
type scoreInput struct {
	ResumeFile    string
	ResumeText    string
	ResumeTextSet bool
	JobFile       string
	JobText       string
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description and print the result",
	Example: `  ats-score score --resume cv.pdf --job posting.txt
  ats-score score --resume-text "python developer" --job-text "looking for python developer" -o json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		log, err := logger.New(settings.Log.JSON, settings.Log.Debug)
		if err != nil {
			return fmt.Errorf("creating a logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		scorer, err := newScorer(settings, log)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		input := scoreInput{}
		input.ResumeFile, _ = flags.GetString("resume")
		input.ResumeText, _ = flags.GetString("resume-text")
		input.ResumeTextSet = flags.Changed("resume-text")
		input.JobFile, _ = flags.GetString("job")
		input.JobText, _ = flags.GetString("job-text")
		output, _ := flags.GetString("output")

		result, err := runScore(input, scorer, extraction.NewPDFExtractor(log))
		if err != nil {
			return err
		}

		log.Debug("score breakdown",
			zap.Int("match_score", result.MatchScore),
			zap.Float64("cosine_similarity", result.CosineSimilarity),
			zap.Int("common_keywords", result.CommonKeywords),
		)

		return printResult(cmd.OutOrStdout(), result, output)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "resume file (.pdf, or any plain text file)")
	scoreCmd.Flags().String("resume-text", "", "resume as inline text")
	scoreCmd.Flags().String("job", "", "job description file")
	scoreCmd.Flags().String("job-text", "", "job description as inline text")
	scoreCmd.Flags().StringP("output", "o", "text", "output format: text or json")
}

func runScore(input scoreInput, scorer services.Scorer, extractor services.TextExtractor) (*scoring.Result, error) {
	resume, err := readResume(input, extractor)
	if err != nil {
		return nil, err
	}

	job := input.JobText
	if input.JobFile != "" {
		data, err := os.ReadFile(input.JobFile)
		if err != nil {
			return nil, fmt.Errorf("reading job description: %w", err)
		}
		job = string(data)
	}
	if strings.TrimSpace(job) == "" {
		return nil, fmt.Errorf("a job description is required (--job or --job-text)")
	}

	return scorer.Score(resume, job)
}

func readResume(input scoreInput, extractor services.TextExtractor) (string, error) {
	if input.ResumeFile == "" {
		if !input.ResumeTextSet && strings.TrimSpace(input.ResumeText) == "" {
			return "", fmt.Errorf("a resume is required (--resume or --resume-text)")
		}
		return input.ResumeText, nil
	}

	f, err := os.Open(input.ResumeFile)
	if err != nil {
		return "", fmt.Errorf("opening resume: %w", err)
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(input.ResumeFile), ".pdf") {
		data, err := io.ReadAll(f)
		if err != nil {
			return "", fmt.Errorf("reading resume: %w", err)
		}
		return string(data), nil
	}

	text, err := extractor.Extract(filepath.Base(input.ResumeFile), f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", text, err)
	}
	if extraction.IsNoText(text) {
		return "", fmt.Errorf("%s", text)
	}
	return text, nil
}

func printResult(w io.Writer, result *scoring.Result, format string) error {
	switch format {
	case "json":
		pretty, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(pretty))
		return err
	case "text", "":
		fmt.Fprintf(w, "ATS score: %.2f%%\n", result.Score)
		fmt.Fprintf(w, "Matched keywords: %d, missing keywords: %d\n", result.Summary.Matched, result.Summary.Missing)
		if len(result.MissingKeywords) > 0 {
			fmt.Fprintf(w, "Missing: %s\n", strings.Join(result.MissingKeywords, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (must be 'text' or 'json')", format)
	}
}
