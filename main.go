package main

import (
	"github.com/nguyenchibao12/job-backend/config"
	"github.com/nguyenchibao12/job-backend/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
