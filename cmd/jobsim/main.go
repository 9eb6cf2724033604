package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/jobsim"
	"github.com/viant/jobsim/model"
	"github.com/viant/jobsim/service/meta"
	"github.com/viant/jobsim/service/report"
	"github.com/viant/jobsim/service/workload"
	"github.com/viant/jobsim/tracing"
)

type options struct {
	config   string
	workers  int
	input    string
	output   string
	expect   string
	sort     bool
	parallel bool
	trace    string
	logLevel string
}

func main() {
	opts := &options{}
	flag.StringVar(&opts.config, "config", "", "config URL (yaml or json)")
	flag.IntVar(&opts.workers, "workers", 0, "worker count, overrides config")
	flag.StringVar(&opts.input, "input", "-", "workload URL, '-' reads stdin")
	flag.StringVar(&opts.output, "output", "", "report URL (.txt, .json, .yaml); stdout when empty")
	flag.StringVar(&opts.expect, "expect", "", "expected completions URL; exits with 1 on mismatch")
	flag.BoolVar(&opts.sort, "sort", false, "sort jobs by arrival before assignment")
	flag.BoolVar(&opts.parallel, "parallel", false, "simulate workers concurrently")
	flag.StringVar(&opts.trace, "trace", "", "write OpenTelemetry spans to file")
	flag.StringVar(&opts.logLevel, "log", "", "log level, overrides config")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if err := run(context.Background(), opts, logger, os.Stdin, os.Stdout); err != nil {
		logger.WithError(err).Error("jobsim failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, logger *logrus.Logger, stdin io.Reader, stdout io.Writer) error {
	fs := afs.New()
	metaService := meta.New(fs, "")

	config := jobsim.DefaultConfig()
	if opts.config != "" {
		var err error
		if config, err = jobsim.LoadConfig(ctx, metaService, opts.config); err != nil {
			return err
		}
	}
	if opts.workers > 0 {
		config.Workers = opts.workers
	}
	if opts.parallel {
		config.Simulator.Parallel = true
	}
	if opts.logLevel != "" {
		config.Log.Level = opts.logLevel
	}
	if opts.trace != "" {
		config.Tracing.Enabled = true
		config.Tracing.OutputFile = opts.trace
	}
	level, err := logrus.ParseLevel(config.Log.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	jobs, err := readJobs(ctx, metaService, opts.input, stdin)
	if err != nil {
		return err
	}
	if opts.sort {
		workload.Sort(jobs)
	}

	srv, err := jobsim.NewFromConfig(config, jobsim.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() { _ = tracing.Shutdown(ctx) }()

	aReport, err := srv.Run(ctx, jobs)
	if err != nil {
		return err
	}
	if opts.output == "" {
		if _, err = stdout.Write(aReport.Text()); err != nil {
			return err
		}
	} else if err = aReport.Save(ctx, fs, opts.output); err != nil {
		return err
	}
	if opts.expect == "" {
		return nil
	}
	expected, err := metaService.Download(ctx, opts.expect)
	if err != nil {
		return err
	}
	mismatch, err := report.Compare(expected, aReport.Text())
	if err != nil {
		return err
	}
	if mismatch != nil {
		logger.Warn(mismatch.Patch)
		return mismatch
	}
	logger.WithField("jobs", len(aReport.Completions)).Info("completions match expectation")
	return nil
}

func readJobs(ctx context.Context, metaService *meta.Service, input string, stdin io.Reader) ([]*model.Job, error) {
	if input != "-" {
		return workload.Load(ctx, metaService, input)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return workload.Decode(data, workload.Detect(data))
}
