package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/keilerkonzept/hll"
	"github.com/keilerkonzept/hll/sliding"
)

var hashers = map[string]hll.Hasher{
	"xxhash":  hll.XXHash,
	"xxhash2": hll.XXHash2,
	"murmur3": hll.Murmur3,
	"sha1":    hll.SHA1,
}

func main() {
	fileName := flag.String("f", "", "file name")
	errorRate := flag.Float64("e", 0.01, "target relative error, lower value - more memory used but more accurate results")
	window := flag.Int64("w", 3600, "window length, in the unit of the input timestamps")
	queries := flag.String("q", "", "comma-separated query windows (default: the full window)")
	hashName := flag.String("hash", "xxhash", "hash function: xxhash, xxhash2, murmur3 or sha1")

	flag.Parse()

	hasher, ok := hashers[*hashName]
	if !ok {
		log.Fatalf("unknown hash function %q", *hashName)
	}

	queryWindows := []int64{*window}
	if *queries != "" {
		queryWindows = queryWindows[:0]
		for _, q := range strings.Split(*queries, ",") {
			w, err := strconv.ParseInt(strings.TrimSpace(q), 10, 64)
			if err != nil {
				log.Fatalf("query window %q: %v", q, err)
			}
			queryWindows = append(queryWindows, w)
		}
	}

	var reader io.Reader
	if *fileName == "" {
		reader = os.Stdin
	} else {
		var err error
		reader, err = os.Open(*fileName)
		if err != nil {
			log.Fatal(err)
		}
	}

	sketch, err := sliding.New(*errorRate, *window, sliding.WithHasher(hasher))
	if err != nil {
		log.Fatal(err)
	}

	var last int64
	var seen bool
	scanner := bufio.NewScanner(reader)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		timestamp, value, err := parseLine(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: line %d: %v\n", line, err)
			os.Exit(1)
		}
		sketch.AddString(timestamp, value)
		if !seen || timestamp > last {
			last, seen = timestamp, true
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	estimates, err := sketch.EstimateWindows(last, queryWindows...)
	if err != nil {
		log.Fatal(err)
	}
	for i, w := range queryWindows {
		fmt.Printf("%d : %.0f\n", w, estimates[i])
	}
}

// parseLine splits a "<timestamp> <value>" line.
func parseLine(text string) (int64, string, error) {
	ts, value, ok := strings.Cut(strings.TrimSpace(text), " ")
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return 0, "", errors.New("missing value after timestamp")
	}
	timestamp, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, "", err
	}
	return timestamp, value, nil
}
