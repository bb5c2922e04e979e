package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/twpayne/go-surfacearea"
)

// readSamples reads whitespace-separated elevation rows from r, skipping
// blank lines.
func readSamples(r io.Reader) ([][]float64, error) {
	var samples [][]float64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
			row[i] = value
		}
		samples = append(samples, row)
	}
	return samples, scanner.Err()
}

func run() error {
	resolution := flag.Float64("resolution", 1, "horizontal distance between adjacent samples")
	noData := flag.Float64("nodata", math.NaN(), "no-data sentinel to substitute with zero")
	concurrency := flag.Int("concurrency", runtime.NumCPU(), "number of row bands to compute in parallel")
	flag.Parse()

	var r io.Reader
	switch flag.NArg() {
	case 0:
		r = os.Stdin
	case 1:
		file, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	default:
		return errors.New("syntax: surfacearea-example [dem-file]")
	}

	samples, err := readSamples(r)
	if err != nil {
		return err
	}
	if !math.IsNaN(*noData) {
		for _, row := range samples {
			for i, sample := range row {
				if sample == *noData {
					row[i] = 0
				}
			}
		}
	}

	dem, err := surfacearea.NewDEM(samples)
	if err != nil {
		return err
	}

	estimator := surfacearea.NewEstimator(surfacearea.WithConcurrency(*concurrency))
	start := time.Now()
	area, err := estimator.EstimateArea(dem, *resolution)
	if err != nil {
		return err
	}
	fmt.Printf("surface area: %.3f (took %s)\n", area, time.Since(start))

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
