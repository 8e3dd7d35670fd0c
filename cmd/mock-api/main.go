// Command mock-api runs the seeded fake backend on its own port so the
// console can be exercised without a deployed server. Sign in with the
// seeded admin or customer credentials printed at startup.
package main

import (
	"net/http"
	"os"

	"kampomido/internal/apitest"
	"kampomido/internal/platform/logger"
)

const defaultPort = "5001"

func main() {
	log := logger.New()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	srv := apitest.New(log)

	log.Info("starting fake kampo mido api",
		"addr", ":"+port,
		"admin_email", apitest.AdminEmail,
		"customer_email", apitest.CustomerEmail,
	)

	if err := http.ListenAndServe(":"+port, srv); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
