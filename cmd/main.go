package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"financial-intel/handler"
	"financial-intel/internal/config"
	"financial-intel/internal/integrations/paramstore"
	"financial-intel/internal/logger"
	"financial-intel/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on environment variables")
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dryRun bool

	root := &cobra.Command{
		Use:           "financial-intel",
		Short:         "Publish the daily financial intelligence page to Notion",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if runningInLambda() {
				return serveLambda(cmd.Context())
			}
			return runOnce(cmd.Context(), dryRun)
		},
	}
	root.Flags().BoolVar(&dryRun, "dry-run", false, "compose the report and print it without publishing")

	root.AddCommand(&cobra.Command{
		Use:   "lambda",
		Short: "Serve scheduled events as an AWS Lambda function",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveLambda(cmd.Context())
		},
	})

	return root
}

func runOnce(ctx context.Context, dryRun bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New("financial-intel")
	runner, err := newRunner(ctx, log)
	if err != nil {
		log.Error("failed to create runner", "err", err)
		return err
	}

	out, err := runner.Run(ctx, usecase.RunInput{DryRun: dryRun})
	if err != nil {
		log.Error("daily update failed", "run_id", out.RunID, "err", err)
		return err
	}
	if dryRun {
		fmt.Fprintln(os.Stdout, out.Document)
	}
	return nil
}

func serveLambda(ctx context.Context) error {
	log := logger.New("financial-intel")
	runner, err := newRunner(ctx, log)
	if err != nil {
		log.Error("failed to create runner", "err", err)
		return err
	}
	h, err := handler.NewHandler(runner, log)
	if err != nil {
		log.Error("failed to create handler", "err", err)
		return err
	}
	lambda.Start(h.Handle)
	return nil
}

func newRunner(ctx context.Context, log *slog.Logger) (*usecase.Runner, error) {
	var params config.ParamGetter
	if os.Getenv(config.EnvParamPrefix) != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		client, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			return nil, err
		}
		params = client
	}
	return usecase.NewRunner(config.NewLoader(nil, params), usecase.NewClients, log)
}

func runningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_RUNTIME_API") != ""
}
