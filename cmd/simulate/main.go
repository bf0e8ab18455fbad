// Command simulate bootstraps a Protocol from a declarative config file and
// issues a demonstration deposit and policy against it, printing the
// resulting Prometheus metrics to stdout. It exists to exercise the
// accounting core end to end; it is not a long-running service (spec
// section 1 scopes the surrounding simulation harness to external
// collaborators, so this binary does no serving, persistence, or API work).
package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/ensuro-labs/covercore/clock"
	"github.com/ensuro-labs/covercore/config"
	"github.com/ensuro-labs/covercore/fixedpoint"
	"github.com/ensuro-labs/covercore/logging"
	"github.com/ensuro-labs/covercore/protocol"
)

var errNoSeedData = errors.New("bootstrap config declares no pool or risk module")

func main() {
	configPath := flag.String("config", "./bootstrap.toml", "Path to the protocol bootstrap file (.toml, .yaml, or .yml)")
	writeDefault := flag.Bool("write-default-config", false, "Write a starter bootstrap file to -config and exit")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("COVERCORE_ENV"))
	log := logging.Setup("simulate", env)

	if *writeDefault {
		if err := config.WriteDefault(*configPath); err != nil {
			log.Error("write default config", "error", err)
			os.Exit(1)
		}
		log.Info("wrote default config", "path", *configPath)
		return
	}

	bootstrap, err := config.Load(*configPath)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	clk := clock.SystemClock{}
	p := protocol.New(clk, log)
	if err := config.Apply(*bootstrap, p, clk); err != nil {
		log.Error("apply config", "error", err)
		os.Exit(1)
	}
	log.Info("protocol bootstrapped", "risk_modules", len(p.ListRiskModules()), "pools", len(p.ListPools()))

	if err := runDemo(p); err != nil {
		log.Warn("demo run skipped", "error", err)
	}

	if err := dumpMetrics(os.Stdout); err != nil {
		log.Error("dump metrics", "error", err)
		os.Exit(1)
	}
}

// runDemo deposits into the first configured pool and issues one policy
// under the first configured risk module, so the metrics dump has
// something to show. It is a no-op (returning an explanatory error) when
// the bootstrap file declares no pool or risk module.
func runDemo(p *protocol.Protocol) error {
	pools := p.ListPools()
	riskModules := p.ListRiskModules()
	if len(pools) == 0 || len(riskModules) == 0 {
		return errNoSeedData
	}

	poolName := pools[0].Name()
	if _, err := p.Deposit(poolName, "demo-provider", fixedpoint.WadFromInt64(10_000)); err != nil {
		return err
	}

	lossProb, err := fixedpoint.RayFromPercent(1)
	if err != nil {
		return err
	}
	const day = 24 * 3600
	_, err = p.NewPolicy(riskModules[0].Name(), fixedpoint.WadFromInt64(1000), fixedpoint.WadFromInt64(100), lossProb, p.Now()+30*day, nil)
	return err
}

// dumpMetrics writes every metric registered against the default
// Prometheus registerer (i.e. everything metrics.Registry() exposes) to w
// in the standard text exposition format, for a one-shot snapshot rather
// than a scrape endpoint.
func dumpMetrics(w *os.File) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	encoder := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
