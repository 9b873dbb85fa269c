// Command dataset-import loads a baseline anthropometric CSV into the
// sqlite dataset store. The first CSV column is the subject id; every other
// column is a named measurement.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/crowd-dynamics/crowdsynth/internal/anthro"
)

func main() {
	csvPath := flag.String("csv", "", "input CSV path (required)")
	dbPath := flag.String("db", "anthro.db", "output sqlite dataset path")
	migrationsDir := flag.String("migrations", "migrations", "migrations directory")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	store, err := anthro.Open(*dbPath)
	if err != nil {
		log.Fatalf("open dataset store: %v", err)
	}
	defer store.Close()

	if err := store.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("migrate dataset store: %v", err)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		log.Fatalf("read csv header: %v", err)
	}
	if len(header) < 2 {
		log.Fatalf("csv needs a subject id column plus at least one measurement column")
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("read csv line %d: %v", line, err)
		}

		subject, err := strconv.Atoi(record[0])
		if err != nil {
			log.Fatalf("line %d: subject id %q is not an integer", line, record[0])
		}

		row := make(anthro.Row, len(header)-1)
		for i := 1; i < len(record); i++ {
			// Blank cells are absent measurements, not zeros.
			if record[i] == "" {
				continue
			}
			value, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				log.Fatalf("line %d: column %q value %q is not numeric", line, header[i], record[i])
			}
			row[header[i]] = value
		}

		if err := store.InsertSubject(subject, row); err != nil {
			log.Fatalf("insert subject %d: %v", subject, err)
		}
		imported++
		if imported%500 == 0 {
			log.Printf("%d subjects imported", imported)
		}
	}

	total, err := store.SubjectCount()
	if err != nil {
		log.Fatalf("count subjects: %v", err)
	}
	log.Printf("✓ Imported %d subjects (%d total in %s)", imported, total, *dbPath)
}
