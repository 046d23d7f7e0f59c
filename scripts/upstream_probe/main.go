// Command upstream_probe checks the desk service endpoints the portal
// depends on. It signs in with the given credentials, hits each probe
// target with the bearer token, and reports status and latency. A
// failing critical target makes the probe exit non-zero, so it can gate
// a deploy.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type target struct {
	Method   string
	Path     string
	Critical bool
}

var targets = []target{
	{Method: http.MethodGet, Path: "/desks/?page=1&size=1", Critical: true},
	{Method: http.MethodGet, Path: "/assignments/?page=1&size=1", Critical: true},
	{Method: http.MethodGet, Path: "/employees/", Critical: true},
	{Method: http.MethodGet, Path: "/admin-config/floors", Critical: false},
	{Method: http.MethodGet, Path: "/settings/auto-assignment", Critical: false},
	{Method: http.MethodGet, Path: "/desk-requests/", Critical: false},
}

type result struct {
	Target   target
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		base     string
		email    string
		password string
		role     string
		timeout  time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8000", "Desk service base URL")
	flag.StringVar(&email, "email", "", "Account email used to sign in")
	flag.StringVar(&password, "password", "", "Account password")
	flag.StringVar(&role, "role", "ADMIN", "Account role sent with the login")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	if email == "" || password == "" {
		log.Fatal("both -email and -password are required")
	}

	client := &http.Client{Timeout: timeout}
	base = strings.TrimRight(base, "/")

	token, err := login(client, base, email, password, role)
	if err != nil {
		log.Fatalf("login against %s failed: %v", base, err)
	}

	var results []result
	failed := 0
	for _, t := range targets {
		res := probe(client, base, token, t)
		if res.Err != nil || res.Status >= http.StatusBadRequest {
			if t.Critical {
				failed++
			}
		}
		results = append(results, res)
	}

	printReport(base, results)
	if failed > 0 {
		fmt.Printf("%d critical endpoint(s) failing\n", failed)
		os.Exit(1)
	}
}

func login(client *http.Client, base, email, password, role string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	})
	if err != nil {
		return "", err
	}

	resp, err := client.Post(base+"/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login response carried no access token")
	}
	return out.AccessToken, nil
}

func probe(client *http.Client, base, token string, tgt target) result {
	res := result{Target: tgt}

	req, err := http.NewRequest(tgt.Method, base+tgt.Path, nil)
	if err != nil {
		res.Err = err
		return res
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	res.Status = resp.StatusCode
	return res
}

func printReport(base string, results []result) {
	fmt.Printf("Desk service probe: %s\n", base)
	fmt.Println("========================================")
	for _, res := range results {
		state := "OK"
		if res.Err != nil {
			state = "ERROR"
		} else if res.Status >= http.StatusBadRequest {
			state = "FAIL"
		}
		fmt.Printf("[%s] %s %s\n", state, res.Target.Method, res.Target.Path)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  Status: %d (%s) | Critical: %t\n", res.Status, res.Duration, res.Target.Critical)
	}
}
