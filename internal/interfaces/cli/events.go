package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/LexConnect/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// NewEventsCmd groups the domain event commands.
func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect and provision domain event topics",
	}
	cmd.AddCommand(newEventsTailCmd(), newEventsTopicsCmd())
	return cmd
}

func newEventsTailCmd() *cobra.Command {
	var (
		topics []string
		limit  int
		latest bool
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print domain events as they are published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if len(cliCtx.Config.Kafka.Brokers) == 0 {
				return errors.InvalidParam("kafka.brokers is not configured")
			}
			if len(topics) == 0 {
				topics = kafka.AllTopics
			}

			ccfg := kafka.ConsumerConfigFrom(cliCtx.Config.Kafka, topics)
			ccfg.FromLatest = latest
			consumer, err := kafka.NewConsumer(ccfg, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			handler := eventPrinter(cmd.OutOrStdout(), cliCtx.OutputFormat == OutputJSON, limit, cancel)
			for _, t := range topics {
				consumer.Subscribe(t, handler)
			}
			if err := consumer.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			consumer.Wait()

			_, processed, failed := consumer.Counts()
			cliCtx.Logger.Info("event tail stopped",
				logging.Int64("processed", processed),
				logging.Int64("failed", failed))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&topics, "topic", nil, "topics to follow (default: all)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many events (0 = until interrupted)")
	cmd.Flags().BoolVar(&latest, "latest", true, "start from the newest offset")
	return cmd
}

// eventPrinter writes one line per event.  After limit events it calls done.
func eventPrinter(out io.Writer, asJSON bool, limit int, done func()) kafka.MessageHandler {
	var seen atomic.Int64
	return func(_ context.Context, msg *kafka.ConsumedMessage) error {
		if asJSON {
			fmt.Fprintln(out, string(msg.Value))
		} else {
			env, err := kafka.DecodeEnvelope(msg.Value)
			if err != nil {
				fmt.Fprintf(out, "%s\t%s\t<undecodable: %v>\n", msg.Timestamp.UTC().Format(time.RFC3339), msg.Topic, err)
			} else {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
					env.Timestamp.UTC().Format(time.RFC3339), msg.Topic, string(msg.Key), string(env.Payload))
			}
		}
		if limit > 0 && seen.Add(1) >= int64(limit) && done != nil {
			done()
		}
		return nil
	}
}

func newEventsTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-topics",
		Short: "Create the domain event topics if they are missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			mgr, err := kafka.NewTopicManager(cliCtx.Config.Kafka.Brokers, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer mgr.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := mgr.EnsureDefaultTopics(ctx); err != nil {
				return err
			}
			names := make([]string, 0, len(kafka.DefaultTopics()))
			for _, t := range kafka.DefaultTopics() {
				names = append(names, t.Name)
			}
			return PrintResult(cmd, names)
		},
	}
}

//Personal.AI order the ending
