// Command hoopsctl runs maintenance jobs against the configured stores.
package main

import (
	"os"

	"alcyxob/hoops-trainer/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("hoopsctl failed")
		os.Exit(1)
	}
}
