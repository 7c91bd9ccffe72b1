package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kchia/paperflow-ai/agent/agents"
	"github.com/kchia/paperflow-ai/agent/agents/orchestrator"
	contractx "github.com/kchia/paperflow-ai/agent/contract"
	llmx "github.com/kchia/paperflow-ai/agent/llm"
	configx "github.com/kchia/paperflow-ai/pkg/config"
	_ "github.com/kchia/paperflow-ai/pkg/logger/autoload"
	openaix "github.com/kchia/paperflow-ai/pkg/openai"
	storex "github.com/kchia/paperflow-ai/store"
)

type AppConfig struct {
	DatabasePath string `envconfig:"DATABASE_PATH" split_words:"true" default:"paperflow.db"`
	RequestsPath string `envconfig:"REQUESTS_PATH" split_words:"true" default:"data/sample_requests.csv"`
}

type customerRequest struct {
	Date time.Time
	Text string
}

func main() {
	ctx := context.Background()
	appCfg := configx.MustNew[AppConfig]("")

	db, err := storex.Open(appCfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", appCfg.DatabasePath).Msg("open database")
	}
	defer db.Close()

	if err := storex.InitSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}
	if err := storex.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed database")
	}

	inv := storex.NewInventory(db)
	ledger := storex.NewLedger(db)
	history := storex.NewQuoteHistory(db)
	audit := storex.NewAuditLog(db)

	registry, err := agents.NewRegistry(inv, ledger, history)
	if err != nil {
		log.Fatal().Err(err).Msg("build handler registry")
	}

	o, err := orchestrator.New(registry, audit, buildResponder(ctx))
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	requests, err := loadRequests(appCfg.RequestsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", appCfg.RequestsPath).Msg("load requests")
	}
	log.Info().Int("count", len(requests)).Msg("processing customer requests")

	for _, req := range requests {
		out, err := o.HandleRequest(ctx, req.Text, req.Date)
		if err != nil {
			log.Error().Err(err).
				Str("date", req.Date.Format("2006-01-02")).
				Str("request", req.Text).
				Msg("request failed")
			continue
		}
		log.Info().
			Str("request_id", out.RequestID).
			Str("intent", string(out.Intent)).
			Str("date", req.Date.Format("2006-01-02")).
			Msg("request processed")
		fmt.Printf("[%s] %s\n%s\n\n", req.Date.Format("2006-01-02"), req.Text, out.Reply)
	}

	balance, err := ledger.CashBalance(ctx, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("final cash balance")
	}
	log.Info().Str("cash_balance", balance.StringFixed(2)).Msg("run complete")
}

// buildResponder returns nil when no API key is configured; the
// pipeline then answers general requests from the template.
func buildResponder(ctx context.Context) contractx.Responder {
	cfg := configx.MustNew[openaix.Config]("OPENAI")
	if !cfg.Enabled() {
		log.Info().Msg("no OpenAI key configured, using template replies for general requests")
		return nil
	}
	if err := cfg.CheckModel(ctx); err != nil {
		log.Warn().Err(err).Str("model", cfg.Model).Msg("model check failed, using template replies")
		return nil
	}

	chatModel, err := cfg.New(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("chat model init failed, using template replies")
		return nil
	}
	responder, err := llmx.NewResponder(ctx, chatModel)
	if err != nil {
		log.Warn().Err(err).Msg("responder init failed, using template replies")
		return nil
	}
	return responder
}

// loadRequests reads the request feed and returns it sorted by business
// date so ledger mutations replay in order.
func loadRequests(path string) ([]customerRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var requests []customerRequest
	for i, row := range rows {
		if i == 0 && row[0] == "request_date" {
			continue
		}
		date, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse date %q: %w", i+1, row[0], err)
		}
		requests = append(requests, customerRequest{Date: date, Text: row[1]})
	}

	sort.SliceStable(requests, func(a, b int) bool {
		return requests[a].Date.Before(requests[b].Date)
	})
	return requests, nil
}
