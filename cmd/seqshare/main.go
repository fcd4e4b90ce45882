// Command seqshare drains one shared sequence with several concurrent
// consumers and reports what each of them saw.
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/seqshare/bootstrap"
	"github.com/kbukum/seqshare/component"
	"github.com/kbukum/seqshare/config"
	"github.com/kbukum/seqshare/multicast"
	"github.com/kbukum/seqshare/observability"
	"github.com/kbukum/seqshare/pipeline"
	"github.com/kbukum/seqshare/version"
)

const serviceName = "seqshare"

func main() {
	if err := execute(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "seqshare:", err)
		os.Exit(1)
	}
}

func execute(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	configFile := fs.String("config", "", "path to config.yml")
	policy := fs.String("policy", "", "sharing policy: share, publish or memoize")
	readers := fs.Int("readers", 0, "reader cap for the memoize policy (0 = unbounded)")
	consumers := fs.Int("consumers", 0, "number of concurrent consumers")
	count := fs.Int("count", 0, "number of values the producer emits")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(out, serviceName, version.Get().String())
		return nil
	}

	var loadOpts []config.LoaderOption
	loadOpts = append(loadOpts, config.WithEnvPrefix("SEQSHARE"))
	if *configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*configFile))
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, loadOpts...); err != nil {
		return err
	}
	if fs.Changed("policy") {
		cfg.Sharing.Policy = *policy
	}
	if fs.Changed("readers") {
		cfg.Sharing.Readers = *readers
	}
	if fs.Changed("consumers") {
		cfg.Sharing.Consumers = *consumers
	}
	if fs.Changed("count") {
		cfg.Sharing.Count = *count
	}
	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	return run(context.Background(), app, out)
}

// report is what one consumer saw.
type report struct {
	Consumer int    `json:"consumer"`
	Values   []int  `json:"values"`
	Error    string `json:"error,omitempty"`
}

type summary struct {
	Policy    string          `json:"policy"`
	Consumers []report        `json:"consumers"`
	Stats     multicast.Stats `json:"stats"`
}

func run(ctx context.Context, app *bootstrap.App[*Config], out io.Writer) error {
	cfg := app.Cfg
	policy, err := cfg.policy()
	if err != nil {
		return err
	}

	opts := []multicast.Option{multicast.WithName(cfg.Name), multicast.WithLogger(app.Logger.WithComponent("multicast"))}
	if cfg.Telemetry.Enabled {
		shutdown, mopts, err := initTelemetry(ctx, cfg)
		if err != nil {
			return err
		}
		app.OnStop(shutdown)
		opts = append(opts, mopts...)
	}

	lazy := component.NewLazy(cfg.Name, func(ctx context.Context) (*multicast.Sequence[int], error) {
		return multicast.New(pipeline.Range(0, cfg.Sharing.Count).Iter(ctx), policy, opts...)
	})
	if err := app.RegisterComponent(lazy); err != nil {
		return err
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		seq, ok := lazy.Get()
		if !ok {
			return fmt.Errorf("sequence %s was not built", cfg.Name)
		}

		// Cursors are opened up front so publish consumers all join at the start.
		cursors := make([]*multicast.Cursor[int], cfg.Sharing.Consumers)
		for i := range cursors {
			cur, err := seq.Enumerate()
			if err != nil {
				return err
			}
			cursors[i] = cur
		}

		reports := make([]report, len(cursors))
		g, gctx := errgroup.WithContext(ctx)
		for i, cur := range cursors {
			g.Go(func() error {
				defer cur.Close()
				reports[i] = consume(gctx, i, cur)
				return gctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary{
			Policy:    policy.String(),
			Consumers: reports,
			Stats:     seq.Stats(),
		})
	})
}

// consume drains cur. Errors such as CAPACITY_EXCEEDED belong in the
// report rather than failing the run.
func consume(ctx context.Context, id int, cur *multicast.Cursor[int]) report {
	r := report{Consumer: id, Values: []int{}}
	for {
		v, ok, err := cur.Next(ctx)
		if err != nil {
			r.Error = err.Error()
			return r
		}
		if !ok {
			return r
		}
		r.Values = append(r.Values, v)
	}
}

func initTelemetry(ctx context.Context, cfg *Config) (bootstrap.Hook, []multicast.Option, error) {
	mcfg := observability.DefaultMeterConfig(cfg.Name)
	mcfg.ServiceVersion = version.Get().Short()
	mcfg.Environment = cfg.Environment
	mcfg.Endpoint = cfg.Telemetry.Endpoint
	mcfg.Insecure = cfg.Telemetry.Insecure
	mp, err := observability.InitMeter(ctx, &mcfg)
	if err != nil {
		return nil, nil, err
	}

	tcfg := observability.DefaultTracerConfig(cfg.Name)
	tcfg.ServiceVersion = mcfg.ServiceVersion
	tcfg.Environment = cfg.Environment
	tcfg.Endpoint = cfg.Telemetry.Endpoint
	tcfg.Insecure = cfg.Telemetry.Insecure
	tp, err := observability.InitTracer(ctx, tcfg)
	if err != nil {
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}

	metrics, err := observability.NewMulticastMetrics(observability.Meter(serviceName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}

	shutdown := func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	return shutdown, []multicast.Option{multicast.WithMetrics(metrics), multicast.WithTracing(true)}, nil
}
