package itinerary

import (
	"context"
	"sync"
)

const busanRequestJSON = `{
  "destination": "Busan",
  "duration_days": 2,
  "party_size": 2,
  "budget_krw": 500000,
  "accommodation": {"address_name": "X", "latitude": 35.1, "longitude": 129.1},
  "transportation": {"main_mode": "public_transport", "preferences": []},
  "style": {"pace": "relaxed", "atmosphere": "quiet", "walking": "like", "interests": ["food"], "food_restrictions": []}
}`

const twoDayResponseJSON = `{
  "trip_title": "부산 미식 여행",
  "overall_summary": "해운대와 남포동을 천천히 걷는 2일",
  "plan": [
    {
      "day": 1,
      "theme": "해운대",
      "schedule": [
        {
          "time": "10:00",
          "type": "sightseeing",
          "title": "해운대 해수욕장",
          "description": "바닷가 산책",
          "location": {"name": "해운대", "address": "부산 해운대구", "latitude": 35.1587, "longitude": 129.1604},
          "cost_krw": 0
        },
        {
          "time": "12:30",
          "type": "food",
          "title": "돼지국밥",
          "description": "점심",
          "location": {"name": "국밥집", "address": "부산 해운대구 중동", "latitude": 35.163, "longitude": 129.163}
        }
      ]
    },
    {
      "day": 2,
      "theme": "남포동",
      "schedule": [
        {
          "time": "11:00",
          "type": "shopping",
          "title": "국제시장",
          "description": "시장 구경",
          "location": {"name": "국제시장", "address": "부산 중구 신창동", "latitude": 35.1012, "longitude": 129.0286},
          "cost_krw": 30000
        }
      ]
    }
  ]
}`

func sampleResponse() TripResponse {
	return TripResponse{
		TripTitle:      "T",
		OverallSummary: "S",
		Plan: []DailyPlan{
			{
				Day:   1,
				Theme: "sea",
				Schedule: []ScheduleItem{
					{
						Time:        "09:00",
						Type:        ItemCafe,
						Title:       "coffee",
						Description: "by the beach",
						Location:    Location{Name: "Cafe", Address: "Haeundae", Latitude: 35.15, Longitude: 129.16},
						CostKRW:     12000,
					},
				},
			},
		},
	}
}

// stubGenerator counts calls and remembers prompts.
type stubGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	reply   string
	err     error
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func (g *stubGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
