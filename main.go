package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aiesanjusto/resumen-bancario/internal/api"
	"github.com/aiesanjusto/resumen-bancario/internal/cache"
	"github.com/aiesanjusto/resumen-bancario/internal/classifier"
	"github.com/aiesanjusto/resumen-bancario/internal/config"
	"github.com/aiesanjusto/resumen-bancario/internal/extractor"
	"github.com/aiesanjusto/resumen-bancario/internal/logger"
	"github.com/aiesanjusto/resumen-bancario/internal/parser"
	"github.com/aiesanjusto/resumen-bancario/internal/report"
	"github.com/aiesanjusto/resumen-bancario/internal/writer"
)

const version = "1.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of converting files")
	portFlag := flag.String("port", "", "HTTP port for --serve (overrides PORT env)")
	rulesFlag := flag.String("rules", "", "YAML file with category rules (defaults to the built-in table)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	headerFlag := flag.Bool("header", true, "Include statement metadata header rows in CSV")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Resumen Bancario - conciliador de resúmenes de cuenta

Converts the text dump of a bank statement PDF into a reconciled,
categorized list of movements with running-balance verification.

Usage:
  resumen-bancario [flags] <input.pdf|input.txt> [input2 ...]
  resumen-bancario --serve [--port 8080]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a statement PDF
  resumen-bancario resumen-junio.pdf

  # Convert already-extracted text with custom category rules
  resumen-bancario --rules=categorias.yaml resumen.txt

  # Run the upload API
  resumen-bancario --serve --port 8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("resumen-bancario v%s\n", version)
		os.Exit(0)
	}

	config.Load()
	logger.Init(config.Cfg.LogLevel)

	rulesPath := *rulesFlag
	if rulesPath == "" {
		rulesPath = config.Cfg.RulesPath
	}
	cls, err := buildClassifier(rulesPath)
	if err != nil {
		fatalf("Error loading rules: %v\n", err)
	}

	if *serveFlag {
		port := *portFlag
		if port == "" {
			port = config.Cfg.Port
		}
		runServer(port, cls)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, cls, *outputFlag, *headerFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func buildClassifier(rulesPath string) (*classifier.Classifier, error) {
	if rulesPath == "" {
		return classifier.New(nil), nil
	}
	rules, err := classifier.LoadRules(rulesPath)
	if err != nil {
		return nil, err
	}
	return classifier.New(rules), nil
}

func runServer(port string, cls *classifier.Classifier) {
	app := fiber.New(fiber.Config{
		BodyLimit: int(config.Cfg.MaxUploadSizeBytes),
	})

	h := &api.Handler{
		Classifier: cls,
		Cache:      cache.NewStore(),
	}
	h.Register(app)

	logger.L.Info("server listening", "port", port)
	if err := app.Listen(":" + port); err != nil {
		logger.L.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func processFile(inputPath string, cls *classifier.Classifier, outputPath string, includeHeader bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	text, err := readInput(inputPath)
	if err != nil {
		return err
	}

	st, err := parser.Parse(text)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	cls.Apply(st)

	fmt.Printf("  Found %d movement(s)\n", len(st.Movements))
	fmt.Printf("  Opening balance: %.2f\n", st.OpeningBalance)
	fmt.Printf("  Closing balance: %.2f\n", st.ClosingBalance)

	summary := report.Build(st)
	if summary.Reconciled {
		fmt.Println("  Reconciliation: OK")
	} else {
		fmt.Printf("  Reconciliation: %d row discrepancies, closing delta %.2f\n",
			len(summary.Discrepancies), summary.ClosingDelta)
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	w := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := w.WriteToFile(outPath, st); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

// readInput returns the statement text for a path: PDFs go through the
// extractor, anything else is read as already-extracted text.
func readInput(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		text, err := extractor.ExtractTextCombined(path)
		if err != nil {
			return "", fmt.Errorf("PDF extraction failed: %w", err)
		}
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
