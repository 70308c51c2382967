//go:build cgo

// Command libconnect4 builds the Connect-Four move predictor as a C shared
// library:
//
//	go build -buildmode=c-shared -o libconnect4.so ./cmd/libconnect4
//
// It exports
//
//	int32_t predict_move(const double *input, size_t len);
//
// The model is trained from $MLKIT_DATASET (default ./dataset.csv) on the
// first call with a valid input. $MLKIT_LOG_LEVEL enables logging to stderr.
package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/YuminosukeSato/mlkit/movepredict"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

var predictor = movepredict.New(config())

func config() movepredict.Config {
	if level := os.Getenv("MLKIT_LOG_LEVEL"); level != "" {
		if err := log.SetupLogger(level, "console"); err != nil {
			os.Stderr.WriteString("libconnect4: " + err.Error() + "\n")
		}
	}

	cfg := movepredict.DefaultConfig()
	if path := os.Getenv("MLKIT_DATASET"); path != "" {
		cfg.DatasetPath = path
	}
	return cfg
}

//export predict_move
func predict_move(input *C.double, n C.size_t) C.int32_t {
	if input == nil || int(n) != movepredict.InputDim {
		return C.int32_t(movepredict.FallbackColumn)
	}
	values := unsafe.Slice((*float64)(unsafe.Pointer(input)), movepredict.InputDim)
	return C.int32_t(predictor.PredictMove(values))
}

func main() {}
