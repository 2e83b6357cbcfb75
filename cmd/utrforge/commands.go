package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/avantgene/utrforge/cdsregistry"
	"github.com/avantgene/utrforge/fold"
	"github.com/avantgene/utrforge/internal/designhash"
	"github.com/avantgene/utrforge/mirna"
	"github.com/avantgene/utrforge/oracle"
	"github.com/avantgene/utrforge/orchestrator"
	"github.com/avantgene/utrforge/sponge"
)

// defaultGeneRegistryURL is the illustrative gene-symbol lookup service
// cdsregistry.HTTPResolver queries when --gene is used without
// --cds-registry-url. cdsregistry is explicitly outside CORE (spec.md §1);
// operators pointing this at a real internal service override it.
const defaultGeneRegistryURL = "https://example-gene-database.org/genes"

// designCommand is the engine's single subcommand: resolve inputs, build a
// 3' UTR sponge, and drive the evolutionary search to a Pareto front.
func designCommand() *cli.Command {
	return &cli.Command{
		Name:  "design",
		Usage: "Evolve a 5' UTR design against a coding sequence and target cell type.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "gene", Usage: "Gene symbol to resolve a canonical CDS for via the CDS registry."},
			&cli.StringFlag{Name: "cds", Usage: "Literal coding sequence (RNA). Overrides --gene."},
			&cli.StringFlag{Name: "cds-registry-url", Value: defaultGeneRegistryURL, Usage: "Base URL of the gene-symbol lookup service."},
			&cli.StringFlag{Name: "target", Required: true, Usage: "Target cell type: the one tissue the design should be translated in."},
			&cli.IntFlag{Name: "utr5-min", Value: 20, Usage: "Minimum 5' UTR length, nt."},
			&cli.IntFlag{Name: "utr5-max", Value: 200, Usage: "Maximum 5' UTR length, nt."},
			&cli.IntFlag{Name: "utr5-init", Usage: "Initial 5' UTR length for the seed population. When unset, seeds use the midpoint of [utr5-min, utr5-max] and the other rows get uniformly drawn lengths."},
			&cli.IntFlag{Name: "pop-size", Value: 128, Usage: "Population size."},
			&cli.IntFlag{Name: "n-gen", Value: 50, Usage: "Number of generations."},
			&cli.Float64Flag{Name: "mutation-rate", Value: 0.05, Usage: "Per-base mutation probability."},
			&cli.IntFlag{Name: "max-length-delta", Value: 5, Usage: "Maximum per-mutation change in UTR5 length."},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "Random seed."},
			&cli.BoolFlag{Name: "seed-from-data", Value: true, Usage: "Seed the initial population from empirical high-TE sequences."},
			&cli.StringFlag{Name: "empirical-seeds-csv", Usage: "CSV of empirical UTR5/TE pairs for --seed-from-data."},
			&cli.IntFlag{Name: "gradient-seed-steps", Value: 200, Usage: "Adam gradient-ascent steps per seed restart. 0 disables gradient seeding."},
			&cli.StringFlag{Name: "out", Value: "history.csv", Usage: "Path to write the per-generation history CSV."},
			&cli.StringFlag{Name: "mirna-table", Usage: "MiRBase-style mature miRNA sequence table (TSV)."},
			&cli.StringFlag{Name: "expression-csv", Usage: "miRNA x cell-type mean expression matrix (CSV)."},
			&cli.StringFlag{Name: "expression-db", Value: ":memory:", Usage: "sqlite cache path for the parsed expression matrix."},
			&cli.IntFlag{Name: "num-sponge-sites", Value: 4, Usage: "Number of miRNA sponge sites to build into the 3' UTR."},
			&cli.Float64Flag{Name: "mirna-target-threshold", Value: 1.0, Usage: "Mean RPM below which a miRNA is considered silent in the target cell type."},
			&cli.Float64Flag{Name: "mirna-cover-threshold", Value: 1.0, Usage: "Mean RPM at or above which a miRNA is considered to cover a non-target cell type."},
		},
		Action: func(c *cli.Context) error {
			return designAction(c)
		},
	}
}

func designAction(c *cli.Context) error {
	cds, err := resolveCDS(c)
	if err != nil {
		return err
	}

	utr3, tissues, err := buildSponge(c)
	if err != nil {
		return err
	}

	cfg := orchestrator.Config{
		UTR5Min:            c.Int("utr5-min"),
		UTR5Max:            c.Int("utr5-max"),
		CDS:                cds,
		UTR3:               utr3,
		PopSize:            c.Int("pop-size"),
		NGen:               c.Int("n-gen"),
		MutationRate:       c.Float64("mutation-rate"),
		MaxLengthDelta:     c.Int("max-length-delta"),
		Seed:               c.Int64("seed"),
		TargetCellType:     c.String("target"),
		SeedFromData:       c.Bool("seed-from-data"),
		EmpiricalSeedsPath: c.String("empirical-seeds-csv"),
		GradientSeedSteps:  c.Int("gradient-seed-steps"),
	}
	if c.IsSet("utr5-init") {
		initial := c.Int("utr5-init")
		cfg.InitialLength = &initial
	}

	loadEnsemble := func() (*oracle.Ensemble, error) {
		return referenceEnsemble(tissues), nil
	}

	result, err := orchestrator.Run(cfg, loadEnsemble, fold.NussinovFolder{}, func(gen int, bestOverall float64) {
		log.Printf("generation %d: best overall = %.4f", gen, bestOverall)
	})
	if err != nil {
		return classifyExitError(err)
	}

	if err := writeHistoryCSV(c.String("out"), result.History); err != nil {
		return err
	}
	for _, seq := range result.FrontSequences {
		if id, err := designhash.ShortID(seq); err == nil {
			log.Printf("front design %s", id)
		}
	}

	front, err := json.MarshalIndent(map[string]interface{}{
		"sequences":  result.FrontSequences,
		"objectives": result.FrontObjectives,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("utrforge: marshalling front: %w", err)
	}
	fmt.Println(string(front))
	log.Printf("wrote %d history rows to %s; %d stale generations at termination", len(result.History), c.String("out"), result.StaleGenerations)
	return nil
}

// resolveCDS returns the literal --cds flag if given, otherwise resolves
// --gene through the CDS registry.
func resolveCDS(c *cli.Context) (string, error) {
	if cds := c.String("cds"); cds != "" {
		return cds, nil
	}
	gene := c.String("gene")
	if gene == "" {
		return "", cli.Exit("one of --cds or --gene is required", 1)
	}
	resolver := cdsregistry.NewHTTPResolver(c.String("cds-registry-url"))
	cds, err := resolver.CanonicalCDS(gene)
	if err != nil {
		return "", cli.Exit(fmt.Sprintf("resolving CDS for gene %q: %v", gene, err), 1)
	}
	return cds, nil
}

// buildSponge loads the expression matrix and mature-sequence table, runs
// the greedy set-cover selector, and builds the 3' UTR sponge cassette from
// the result. It returns the cell-type list (used as the oracle's tissue
// set) alongside the built UTR3.
func buildSponge(c *cli.Context) (utr3 string, tissues []string, err error) {
	expressionPath := c.String("expression-csv")
	if expressionPath == "" {
		return "", nil, cli.Exit("--expression-csv is required", 1)
	}
	matrix, err := mirna.LoadOrBuildExpressionMatrix(expressionPath, c.String("expression-db"))
	if err != nil {
		return "", nil, cli.Exit(fmt.Sprintf("loading expression matrix: %v", err), 1)
	}

	mirnaTablePath := c.String("mirna-table")
	if mirnaTablePath == "" {
		return "", nil, cli.Exit("--mirna-table is required", 1)
	}
	mirnaFile, err := os.Open(mirnaTablePath)
	if err != nil {
		return "", nil, cli.Exit(fmt.Sprintf("opening mirna table: %v", err), 1)
	}
	defer mirnaFile.Close()
	matureSeqs, err := mirna.LoadMatureSequences(mirnaFile)
	if err != nil {
		return "", nil, cli.Exit(fmt.Sprintf("parsing mirna table: %v", err), 1)
	}

	numSites := c.Int("num-sponge-sites")
	cover, err := mirna.GreedyCover(matrix, c.String("target"), c.Float64("mirna-target-threshold"), c.Float64("mirna-cover-threshold"), numSites)
	if err != nil {
		return "", nil, cli.Exit(fmt.Sprintf("set-cover: %v", err), 1)
	}
	if !cover.Success {
		log.Printf("warning: greedy set-cover left cell types uncovered: %v", cover.Uncovered)
	}

	selectedSeqs := make([]string, 0, len(cover.Selected))
	for _, id := range cover.Selected {
		seq, ok := matureSeqs[id]
		if !ok {
			log.Printf("warning: selected miRNA %q has no mature sequence in --mirna-table, skipping", id)
			continue
		}
		selectedSeqs = append(selectedSeqs, seq)
	}
	if len(selectedSeqs) == 0 {
		return "", nil, cli.Exit("no selected miRNA had a resolvable mature sequence", 1)
	}

	utr3, err = sponge.Build(selectedSeqs, numSites)
	if err != nil {
		return "", nil, cli.Exit(fmt.Sprintf("building sponge: %v", err), 1)
	}
	return utr3, matrix.CellTypes(), nil
}

// referenceEnsemble builds the illustrative reference-model ensemble: one
// deterministic GC/length-based model per cell type, biased so its own
// tissue scores highest. A deployment with a trained TE predictor swaps
// this loader out for one that loads real model weights; the orchestrator
// only ever depends on the oracle.Model interface.
func referenceEnsemble(tissues []string) *oracle.Ensemble {
	models := make([]oracle.Model, len(tissues))
	for i := range tissues {
		bias := make([]float64, len(tissues))
		bias[i] = 0.2
		models[i] = oracle.ReferenceModel{TissueBias: bias}
	}
	return oracle.NewEnsemble(models, tissues)
}

// classifyExitError maps an orchestrator error to the CLI exit code
// spec.md §6 specifies: 1 for invalid configuration or an unresolvable
// external resource. Anything else (an infrastructure failure unrelated to
// any single candidate) still exits non-zero but with a distinct code so
// operators can tell a bad flag apart from a broken batch run.
func classifyExitError(err error) error {
	switch err.(type) {
	case *orchestrator.InvalidConfigError, *orchestrator.ExternalResourceMissingError:
		return cli.Exit(err.Error(), 1)
	default:
		return cli.Exit(err.Error(), 2)
	}
}

// writeHistoryCSV writes the per-generation history in spec.md §6's wire
// format: generation, sequence, utr5_accessibility, manufacturability,
// stability, specificity, overall.
func writeHistoryCSV(path string, rows []orchestrator.HistoryRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("utrforge: creating output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("utrforge: creating %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"generation", "sequence", "utr5_accessibility", "manufacturability", "stability", "specificity", "overall"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("utrforge: writing history header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Generation),
			row.Sequence,
			strconv.FormatFloat(row.UTR5Accessibility, 'f', 6, 64),
			strconv.FormatFloat(row.Manufacturability, 'f', 6, 64),
			strconv.FormatFloat(row.Stability, 'f', 6, 64),
			strconv.FormatFloat(row.Specificity, 'f', 6, 64),
			strconv.FormatFloat(row.Overall, 'f', 6, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("utrforge: writing history row: %w", err)
		}
	}
	return nil
}
