// README: Demo; sends the sample Busan request through the configured provider and prints the itinerary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"planai/internal/ai"
	"planai/internal/config"
	"planai/internal/infra"
	"planai/internal/modules/itinerary"
)

const sampleRequest = `{
  "destination": "Busan",
  "duration_days": 2,
  "party_size": 2,
  "budget_krw": 500000,
  "accommodation": {"address_name": "부산 해운대구 해운대해변로 264", "latitude": 35.1595, "longitude": 129.1603},
  "transportation": {"main_mode": "public_transport", "preferences": ["subway"]},
  "style": {"pace": "relaxed", "atmosphere": "quiet", "walking": "like", "interests": ["food", "sea"], "food_restrictions": []}
}`

func main() {
	reqPath := flag.String("request", "", "path to a TripRequest JSON file (default: sample Busan request)")
	showPrompt := flag.Bool("prompt", false, "print the prompt and exit without calling the model")
	flag.Parse()

	body := []byte(sampleRequest)
	if *reqPath != "" {
		b, err := os.ReadFile(*reqPath)
		if err != nil {
			log.Fatalf("read request: %v", err)
		}
		body = b
	}

	req, err := itinerary.ValidateRequest(body)
	if err != nil {
		log.Fatalf("invalid request: %v", err)
	}
	if *showPrompt {
		fmt.Println(itinerary.BuildPrompt(req))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := infra.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AI.Timeout)
	defer cancel()

	provider, err := ai.NewProvider(ctx, ai.Settings{
		Name:        cfg.AI.Provider,
		APIKey:      cfg.AI.APIKey(),
		Model:       cfg.AI.Model,
		BaseURL:     cfg.AI.BaseURL,
		Temperature: cfg.AI.Temperature,
	})
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	svc := itinerary.NewService(
		ai.WithRetry(provider, cfg.AI.Provider, cfg.AI.MaxRetries, logger),
		itinerary.Options{Provider: cfg.AI.Provider, Strict: cfg.AI.Strict, Logger: logger},
	)

	fmt.Printf("Planning %d day(s) in %s with %s...\n", req.DurationDays, req.Destination, cfg.AI.Provider)
	resp, err := svc.Plan(ctx, req)
	if err != nil {
		if raw, ok := itinerary.RawOutput(err); ok {
			fmt.Fprintf(os.Stderr, "raw model output:\n%s\n", raw)
		}
		log.Fatalf("plan failed (%s): %v", itinerary.Kind(err), err)
	}

	out, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(out))
}
