// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/jobmatch"
	"github.com/poiesic/jobmatch/ai"
	"github.com/poiesic/jobmatch/core"
	"github.com/poiesic/jobmatch/extract"
	"github.com/poiesic/jobmatch/match"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "jobmatch",
		Usage: "Resume to job posting matching engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "match",
				Usage:  "Score a resume against the stored job postings",
				Action: matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "resume",
						Aliases: []string{"r"},
						Usage:   "Path to resume file (plain text formats)",
					},
					&cli.StringFlag{
						Name:    "text",
						Aliases: []string{"t"},
						Usage:   "Resume text passed directly on the command line",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.BoolFlag{
						Name:  "no-embeddings",
						Usage: "Run lexical-only, without an embedding service",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Number of ranked postings to report",
						Value: 10,
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Load a set of sample job postings for demos",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:   "jobs",
				Usage:  "List stored job postings",
				Action: jobsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Only list postings from one job board (indeed, naukri, linkedin)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	resumeText, err := resolveResumeText(ctx, c)
	if err != nil {
		return err
	}

	opts := []jobmatch.DatabaseOption{
		jobmatch.WithAIConfig(ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)),
	}
	if c.Bool("no-embeddings") {
		opts = append(opts, jobmatch.WithoutEmbeddings())
	}

	db, err := jobmatch.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	matcher, err := db.NewMatcher(matchOptions(c)...)
	if err != nil {
		return fmt.Errorf("failed to create matcher: %w", err)
	}

	report, err := matcher.Match(ctx, resumeText)
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := jobmatch.NewDatabase(c.String("db"), jobmatch.WithoutEmbeddings())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	report, err := pipeline.IngestJobPostings(ctx, samplePostings()...)
	if err != nil {
		return fmt.Errorf("failed to seed postings: %w", err)
	}

	fmt.Printf("Seeded %d postings (%d duplicates skipped)\n", len(report.Added), report.Skipped)
	return nil
}

func jobsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := jobmatch.NewDatabase(c.String("db"), jobmatch.WithoutEmbeddings())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var postings []*core.JobPosting
	if sourceName := c.String("source"); sourceName != "" {
		source, err := core.ParseSource(sourceName)
		if err != nil {
			return err
		}
		postings, err = db.JobRepository().GetJobPostingsBySource(ctx, source)
		if err != nil {
			return err
		}
	} else {
		postings, err = db.JobRepository().ListJobPostings(ctx)
		if err != nil {
			return err
		}
	}

	fmt.Printf("%d postings\n", len(postings))
	for _, posting := range postings {
		fmt.Printf("%d: %s at %s (%s, %s)\n",
			posting.Id, posting.Title, posting.Company, posting.Location, posting.Source)
	}
	return nil
}

// resolveResumeText reads the resume from --resume or --text.
func resolveResumeText(ctx context.Context, c *cli.Context) (string, error) {
	path := c.String("resume")
	text := c.String("text")

	switch {
	case path != "" && text != "":
		return "", fmt.Errorf("use either --resume or --text, not both")
	case path != "":
		registry := extract.NewRegistry()
		extracted, err := registry.ExtractFile(ctx, path)
		if err != nil {
			return "", fmt.Errorf("failed to extract resume text: %w", err)
		}
		return extracted, nil
	case text != "":
		return text, nil
	default:
		return "", fmt.Errorf("a resume is required: pass --resume or --text")
	}
}

func matchOptions(c *cli.Context) []match.Option {
	var opts []match.Option
	if c.IsSet("max-results") {
		opts = append(opts, match.WithMaxResults(c.Int("max-results")))
	}
	return opts
}

func printReport(report *core.MatchReport) {
	if report.Suggestion.Role != "" {
		fmt.Printf("Suggested role: %s (confidence %.3f, %s scale)\n\n",
			report.Suggestion.Role, report.Suggestion.Confidence, report.Suggestion.Scale)
	}

	fmt.Printf("Top %d matches:\n", len(report.Results))
	for i, result := range report.Results {
		posting := result.Posting
		fmt.Printf("%2d. [%6.2f] %s at %s (%s, %s)\n",
			i+1, result.Score, posting.Title, posting.Company, posting.Location, posting.Source)
		if posting.Url != "" {
			fmt.Printf("     %s\n", posting.Url)
		}
		if snippet := result.Snippet; snippet != "" {
			fmt.Printf("     %s\n", snippet)
		}
	}
}

// samplePostings mirrors the demo corpus the scraper would collect.
func samplePostings() []*core.JobPosting {
	return []*core.JobPosting{
		{
			Source:      core.SourceIndeed,
			Title:       "Machine Learning Engineer",
			Company:     "ABC Corp",
			Location:    "Bengaluru",
			Description: "Develop machine learning models, Python, scikit-learn, PyTorch, model deployment",
			Url:         "https://in.indeed.com/viewjob?jk=abc1",
		},
		{
			Source:      core.SourceNaukri,
			Title:       "Data Scientist",
			Company:     "XYZ Analytics",
			Location:    "Hyderabad",
			Description: "Data analysis, statistics, Python, SQL, ML pipelines and dashboards",
			Url:         "https://www.naukri.com/example1",
		},
		{
			Source:      core.SourceLinkedIn,
			Title:       "Software Engineer - ML",
			Company:     "InnovateAI",
			Location:    "Remote",
			Description: "Build ML infrastructure, model deployment, Docker, AWS, TensorFlow",
			Url:         "https://www.linkedin.com/jobs/view/example1",
		},
		{
			Source:      core.SourceIndeed,
			Title:       "NLP Engineer",
			Company:     "LangTech",
			Location:    "Bengaluru",
			Description: "NLP, transformers, huggingface, Python, tokenization",
			Url:         "https://in.indeed.com/viewjob?jk=abc2",
		},
		{
			Source:      core.SourceNaukri,
			Title:       "Business Analyst",
			Company:     "MarketPulse",
			Location:    "Chennai",
			Description: "Business analysis, SQL, Excel, data visualization, stakeholder communication",
			Url:         "https://www.naukri.com/example2",
		},
		{
			Source:      core.SourceLinkedIn,
			Title:       "DevOps Engineer",
			Company:     "CloudWorks",
			Location:    "Pune",
			Description: "CI/CD, Docker, Kubernetes, monitoring, AWS",
			Url:         "https://www.linkedin.com/jobs/view/example2",
		},
		{
			Source:      core.SourceIndeed,
			Title:       "AI Researcher",
			Company:     "DeepThink",
			Location:    "Remote",
			Description: "Research on ML algorithms, Python, PyTorch, publications",
			Url:         "https://in.indeed.com/viewjob?jk=abc3",
		},
		{
			Source:      core.SourceNaukri,
			Title:       "Software Developer",
			Company:     "NextGen Software",
			Location:    "Bengaluru",
			Description: "Backend development, Java, Spring, REST APIs",
			Url:         "https://www.naukri.com/example3",
		},
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
