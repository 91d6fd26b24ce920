package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-resume-matcher/internal/logger"
	"github.com/gcbaptista/go-resume-matcher/internal/matcher"
	"github.com/gcbaptista/go-resume-matcher/model"
)

func newMatchCmd(opts *rootOptions) *cobra.Command {
	var resumeFile, jobFile string

	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Compare a resume file with a job description file",
		Long: "Compare a resume with a job description. Both files may be plain text, PDF or DOCX.\n" +
			"With --json the full analysis is printed as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return match(cmd.Context(), opts, resumeFile, jobFile, cmd.OutOrStdout())
		},
	}

	matchCmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "resume file (.txt, .pdf, .docx)")
	matchCmd.Flags().StringVarP(&jobFile, "job", "J", "", "job description file (.txt, .pdf, .docx)")
	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("job")
	return matchCmd
}

func match(ctx context.Context, opts *rootOptions, resumeFile, jobFile string, out io.Writer) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// stdout carries the result
	log, err := logger.New(cfg.LogJSON, cfg.Debug, "stderr")
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	svc, err := matcher.NewService(cfg.Matcher, nil, log)
	if err != nil {
		return err
	}

	resume, err := readUpload(resumeFile, model.DocumentKindResume)
	if err != nil {
		return err
	}
	job, err := readUpload(jobFile, model.DocumentKindJob)
	if err != nil {
		return err
	}

	result, err := svc.AnalyzeUploads(ctx, "", "", resume, job)
	if err != nil {
		return fmt.Errorf("analyzing: %w", err)
	}

	if cfg.LogJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printResult(out, result)
}

func readUpload(path string, kind model.DocumentKind) (*model.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s file: %w", kind, err)
	}
	return &model.Upload{Kind: kind, Filename: filepath.Base(path), Data: data}, nil
}

func printResult(out io.Writer, result *model.MatchResult) error {
	list := func(items []string) string {
		if len(items) == 0 {
			return "-"
		}
		return strings.Join(items, ", ")
	}

	_, err := fmt.Fprintf(out,
		"Match score:     %.2f%%\nFeedback:        %s\nMatching skills: %s\nMissing skills:  %s\n",
		result.Score,
		result.Feedback,
		list(result.MatchingSkills),
		list(result.MissingSkills),
	)
	if err == nil && result.Degraded {
		_, err = fmt.Fprintln(out, "Note: the similarity could not be computed; the score is reported as 0")
	}
	return err
}
