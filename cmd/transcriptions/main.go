package main

import (
	"os"

	"github.com/deepscribes/transcription-platform/internal/app"
)

func main() {
	os.Exit(app.Run("transcriptions", run))
}
