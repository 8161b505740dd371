package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"streamflixtv/config"
	"streamflixtv/services/gateway"
)

// signreq prints the signing headers for a backend request so it can be
// replayed with curl.
func main() {
	var (
		configPath = flag.String("config", "", "Path to settings.json")
		method     = flag.String("method", http.MethodGet, "HTTP method")
		timestamp  = flag.Int64("ts", 0, "unix timestamp to sign (default now)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: signreq [-config path] [-method GET] [-ts unix] <path or url>")
	}

	mgr := config.NewManager(config.ResolvePath(*configPath))
	settings, err := mgr.Load()
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}
	if settings.API.SecretKey == "" {
		log.Fatalf("no secret key configured (set %s)", config.EnvSecretKey)
	}

	target, err := url.Parse(flag.Arg(0))
	if err != nil {
		log.Fatalf("parse target: %v", err)
	}

	ts := *timestamp
	if ts == 0 {
		ts = time.Now().Unix()
	}
	tsStr := strconv.FormatInt(ts, 10)

	fmt.Printf("X-Timestamp: %s\n", tsStr)
	fmt.Printf("X-Signature: %s\n", gateway.Sign(settings.API.SecretKey, tsStr, target.EscapedPath(), *method))
	fmt.Printf("Signed path: %s\n", gateway.SigningPath(target.EscapedPath()))
}
