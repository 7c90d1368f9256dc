package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

var (
	baseURL      = flag.String("url", "http://localhost:8000", "base URL of a running instance")
	targetRPS    = flag.Int("rps", 5, "requests per second")
	testDuration = flag.Duration("duration", 2*time.Minute, "attack duration")
)

var rng *rand.Rand

type TeamMemberRequest struct {
	Id    int64   `json:"id"`
	Name  string  `json:"name"`
	Role  string  `json:"role"`
	Photo *string `json:"photo,omitempty"`
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: loadtest [-url URL] [-rps N] [-duration D] <scenario>")
		fmt.Println("Scenarios: health, crud, all")
		os.Exit(1)
	}

	scenario := flag.Arg(0)
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))

	var metrics vegeta.Metrics

	switch scenario {
	case "health":
		metrics = runAttack(healthTargeter(), "Health Check")
	case "crud":
		metrics = runAttack(crudTargeter(), "Team Member CRUD")
	case "all":
		metrics = runAttack(allTargeter(), "All Endpoints")
	default:
		fmt.Printf("Unknown scenario: %s\n", scenario)
		os.Exit(1)
	}

	printMetrics(metrics)
}

func healthTargeter() vegeta.Targeter {
	return vegeta.NewStaticTargeter(vegeta.Target{
		Method: http.MethodGet,
		URL:    *baseURL + "/health",
	})
}

// crudTargeter создаёт записи с новым id на каждый запрос и читает список.
// Get и Update требуют _id из ответа, поэтому идут через несуществующий ObjectID
func crudTargeter() vegeta.Targeter {
	missing := "000000000000000000000000"
	create := createTeamMemberTargeter()

	static := []vegeta.Target{
		{Method: http.MethodGet, URL: *baseURL + "/teammembers/"},
		{Method: http.MethodGet, URL: *baseURL + "/teammember/" + missing},
		{
			Method: http.MethodPut,
			URL:    *baseURL + "/teammembers/" + missing,
			Body:   createTeamMemberBody(rng.Int63n(1_000_000)),
			Header: jsonHeader(),
		},
	}

	// Таргетер вызывается из нескольких воркеров vegeta
	var counter atomic.Int64
	return func(tgt *vegeta.Target) error {
		i := int(counter.Add(1)-1) % (len(static) + 1)
		if i == 0 {
			return create(tgt)
		}
		*tgt = static[i-1]
		return nil
	}
}

func allTargeter() vegeta.Targeter {
	crud := crudTargeter()
	health := healthTargeter()

	var counter atomic.Int64
	return func(tgt *vegeta.Target) error {
		i := counter.Add(1) - 1
		switch i % 3 {
		case 0:
			return health(tgt)
		case 1:
			*tgt = vegeta.Target{Method: http.MethodGet, URL: fmt.Sprintf("%s/items/%d", *baseURL, i)}
			return nil
		default:
			return crud(tgt)
		}
	}
}

func createTeamMemberTargeter() vegeta.Targeter {
	var next atomic.Int64
	next.Store(rng.Int63n(1_000_000_000))
	return func(tgt *vegeta.Target) error {
		*tgt = vegeta.Target{
			Method: http.MethodPost,
			URL:    *baseURL + "/teammember/",
			Body:   createTeamMemberBody(next.Add(1)),
			Header: jsonHeader(),
		}
		return nil
	}
}

func jsonHeader() http.Header {
	return http.Header{
		"Content-Type": []string{"application/json"},
	}
}

func createTeamMemberBody(id int64) []byte {
	req := TeamMemberRequest{
		Id:   id,
		Name: fmt.Sprintf("load_member_%d", id),
		Role: "load",
	}
	body, _ := json.Marshal(req)
	return body
}

func runAttack(targeter vegeta.Targeter, name string) vegeta.Metrics {
	rate := vegeta.Rate{Freq: *targetRPS, Per: time.Second}
	attacker := vegeta.NewAttacker()

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, rate, *testDuration, name) {
		metrics.Add(res)
	}
	metrics.Close()

	return metrics
}

func printMetrics(metrics vegeta.Metrics) {
	fmt.Printf("\n=== Load Test Results ===\n\n")
	fmt.Printf("Requests Total:     %d\n", metrics.Requests)
	fmt.Printf("Success Rate:       %.2f%%\n", metrics.Success*100)
	fmt.Printf("Duration:           %v\n", metrics.Duration)

	if metrics.Requests > 0 {
		fmt.Printf("\nLatency:\n")
		fmt.Printf("  Mean:             %v\n", metrics.Latencies.Mean)
		fmt.Printf("  P50:              %v\n", metrics.Latencies.P50)
		fmt.Printf("  P95:              %v\n", metrics.Latencies.P95)
		fmt.Printf("  P99:              %v\n", metrics.Latencies.P99)
		fmt.Printf("  Max:              %v\n", metrics.Latencies.Max)

		fmt.Printf("\nThroughput:\n")
		fmt.Printf("  Requests/sec:     %.2f\n", metrics.Rate)

		fmt.Printf("\nStatus Codes:\n")
		for code, count := range metrics.StatusCodes {
			fmt.Printf("  %s: %d\n", code, count)
		}

		fmt.Printf("\nErrors:\n")
		if len(metrics.Errors) > 0 {
			for _, err := range metrics.Errors {
				fmt.Printf("  %s\n", err)
			}
		} else {
			fmt.Printf("  None\n")
		}
	}
	fmt.Printf("\n")
}
