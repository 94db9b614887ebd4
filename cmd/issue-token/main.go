package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/adapters/grpc/auth"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		subject    = flag.String("subject", "", "user id to put in the token")
	)
	flag.Parse()

	if *subject == "" {
		log.Fatalf("-subject is required")
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth, clockwork.NewRealClock())
	if err != nil {
		log.Fatalf("failed to create token manager: %v", err)
	}

	token, err := tokens.Issue(*subject)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}
	fmt.Println(token)
}
