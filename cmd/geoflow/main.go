package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rahul/geoflow/internal/backend"
	"github.com/rahul/geoflow/internal/executor"
	"github.com/rahul/geoflow/internal/governance"
	"github.com/rahul/geoflow/internal/observability"
	"github.com/rahul/geoflow/internal/registry"
	"github.com/rahul/geoflow/internal/store"
	"github.com/rahul/geoflow/internal/translator"
	"github.com/rahul/geoflow/internal/workflow"
	"github.com/rahul/geoflow/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the config file")
	execute := flag.Bool("execute", false, "run the generated workflow (dry-run engine)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: geoflow [flags] \"natural language query\"")
		os.Exit(2)
	}

	observability.PrintBanner()

	cfg := config.LoadConfig(*configPath)

	// Operation registry: builtin catalog plus optional YAML extensions.
	reg := registry.New()
	if cfg.Registry.Catalog != "" {
		if err := reg.LoadCatalog(cfg.Registry.Catalog); err != nil {
			log.Fatal(err)
		}
	}

	logger := observability.NewLogger()

	// Model backend: optional. Without an enabled provider the translator
	// runs in pure rule mode.
	var be backend.Backend
	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		log.Println("No enabled provider found; translating in rule-only mode")
	} else {
		llm, err := backend.New(pName, pCfg, backend.Options{
			MaxTokens:   cfg.Translator.MaxTokens,
			Temperature: cfg.Translator.Temperature,
			Timeout:     time.Duration(cfg.Translator.BackendTimeoutSeconds) * time.Second,
		})
		if err != nil {
			log.Fatal(err)
		}
		be = llm
	}

	prompts := translator.NewPromptManager(cfg.Translator.Prompts)
	trans := translator.New(reg, be, prompts, logger)

	st, err := store.New(cfg.Store.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q := workflow.NewQuery(strings.Join(flag.Args(), " "))
	if err := st.SaveQuery(q); err != nil {
		log.Printf("Warning: failed to persist query: %v", err)
	}

	wf, err := trans.Translate(ctx, q)
	if err != nil {
		log.Fatalf("translation failed: %v", err)
	}

	if err := st.SaveWorkflow(wf); err != nil {
		log.Printf("Warning: failed to persist workflow: %v", err)
	}

	out, _ := json.MarshalIndent(wf, "", "  ")
	fmt.Println(string(out))

	if !*execute {
		return
	}

	// Dataset catalog: builtin OSM mappings, overridden from config.
	catalog := executor.DefaultCatalog()
	for name, uri := range cfg.Datasets {
		catalog[name] = uri
	}

	gov := governance.NewDefaultPolicyEngine()
	for _, op := range cfg.Policy.DeniedOperations {
		gov.DenyOperation(op)
	}
	for _, pattern := range cfg.Policy.DeniedDatasetPatterns {
		if err := gov.DenyDatasets(pattern); err != nil {
			log.Fatalf("invalid policy pattern %q: %v", pattern, err)
		}
	}

	exec := &executor.Executor{
		Resolver: executor.NewStaticResolver(catalog),
		Runner:   executor.DryRunner{},
		Policy:   gov,
		Logger:   logger,
	}
	manager := executor.NewManager(exec, st)

	execID, err := manager.Submit(ctx, wf)
	if err != nil {
		log.Fatalf("failed to submit execution: %v", err)
	}
	log.Printf("Execution %s submitted (%d steps)", execID, len(wf.Steps))

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			manager.Wait()
			return
		case <-ticker.C:
			rec, err := manager.Status(execID)
			if err != nil {
				log.Printf("Error reading execution status: %v", err)
				continue
			}
			if rec.Status == workflow.StatusSucceeded || rec.Status == workflow.StatusFailed {
				result, _ := json.MarshalIndent(rec.Result, "", "  ")
				fmt.Println(string(result))
				manager.Wait()
				return
			}
			log.Printf("Execution %s: %s (%d/%d steps)", execID, rec.Status, rec.StepsDone, rec.StepsTotal)
		}
	}
}
