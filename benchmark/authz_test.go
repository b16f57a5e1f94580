package benchmark

import (
	"net/http"
	"os"
	"strings"
	"testing"
)

// Live-server benchmarks. Point FIELDGATE_BENCH_URL at a running server
// and FIELDGATE_BENCH_TOKEN at a valid access token, e.g.:
//
//	FIELDGATE_BENCH_URL=http://localhost:8080 \
//	FIELDGATE_BENCH_TOKEN=$TOKEN \
//	go test -bench . ./benchmark

func benchTarget(b *testing.B) (string, string) {
	url := os.Getenv("FIELDGATE_BENCH_URL")
	token := os.Getenv("FIELDGATE_BENCH_TOKEN")
	if url == "" || token == "" {
		b.Skip("Set FIELDGATE_BENCH_URL and FIELDGATE_BENCH_TOKEN to run live-server benchmarks")
	}
	return url, token
}

func BenchmarkPermissionCheck(b *testing.B) {
	url, token := benchTarget(b)

	b.Run("POST /authz/check (cached set)", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r, _ := http.NewRequest("POST", url+"/authz/check",
				strings.NewReader(`{"resource":"DEVICES","action":"READ"}`))
			r.Header.Add("Authorization", "Bearer "+token)
			r.Header.Add("Content-Type", "application/json")
			_, _ = http.DefaultClient.Do(r)
		}
	})

	b.Run("GET /authz/permissions", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r, _ := http.NewRequest("GET", url+"/authz/permissions", nil)
			r.Header.Add("Authorization", "Bearer "+token)
			_, _ = http.DefaultClient.Do(r)
		}
	})
}

func BenchmarkBoundaryEnforce(b *testing.B) {
	url, token := benchTarget(b)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r, _ := http.NewRequest("POST", url+"/boundary/enforce",
			strings.NewReader(`{"target_team_id":"team-1","resource":"DEVICES","action":"READ"}`))
		r.Header.Add("Authorization", "Bearer "+token)
		r.Header.Add("Content-Type", "application/json")
		_, _ = http.DefaultClient.Do(r)
	}
}
