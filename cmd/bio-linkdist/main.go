package main

// bio-linkdist estimates the physical gap between pairs of assembly contigs
// from linked-read barcode evidence.
//
// Inputs: the assembly FASTA (contig names and lengths) and a barcode tally
// TSV produced by the upstream alignment stage, one row per (barcode, contig
// end) with the supporting read-pair count.  Outputs: the intra-contig
// calibration samples and the per-pair distance estimates, both as TSV.
//
// Example:
//
//	bio-linkdist -fasta=assembly.fa -evidence=tally.tsv.gz \
//	    -samples-output=dist-samples.tsv -estimates-output=dist-estimates.tsv

import (
	"flag"
	"sync"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/scaffold/barcode"
	"github.com/grailbio/scaffold/linkdist"
)

// Collection of options set via cmdline flags.
type linkdistFlags struct {
	fastaPath           string
	evidencePath        string
	whitelistPath       string
	samplesOutputPath   string
	estimatesOutputPath string
}

func main() {
	opts := linkdist.DefaultOpts
	flags := linkdistFlags{}
	flag.StringVar(&flags.fastaPath, "fasta", "", "Assembly FASTA (optionally gzipped). Required.")
	flag.StringVar(&flags.evidencePath, "evidence", "", "Barcode tally TSV (optionally gzipped) with columns barcode, contig, end (H|T), read_pairs. Required.")
	flag.StringVar(&flags.whitelistPath, "whitelist", "", "Optional barcode whitelist, one barcode per line. Evidence barcodes within edit distance 1 of a unique whitelist entry are corrected before tallying.")
	flag.StringVar(&flags.samplesOutputPath, "samples-output", "./dist-samples.tsv", "TSV file to store the intra-contig calibration samples.")
	flag.StringVar(&flags.estimatesOutputPath, "estimates-output", "./dist-estimates.tsv", "TSV file to store the per-pair distance estimates.")
	flag.IntVar(&opts.MinMult, "min-mult", linkdist.DefaultOpts.MinMult, "Minimum barcode multiplicity; barcodes below this map to too few contig ends to trust.")
	flag.IntVar(&opts.MaxMult, "max-mult", linkdist.DefaultOpts.MaxMult, "Maximum barcode multiplicity; barcodes above this map to too many contig ends to be informative.")
	flag.IntVar(&opts.MinReads, "min-reads", linkdist.DefaultOpts.MinReads, "Minimum read pairs connecting a barcode to a contig end.")
	flag.IntVar(&opts.EndLength, "end-length", linkdist.DefaultOpts.EndLength, "Length in bases of the contig head/tail regions.")
	flag.Float64Var(&opts.DistBinSize, "dist-bin-size", linkdist.DefaultOpts.DistBinSize, "Half-width, in Jaccard score units, of the calibration window used per estimate.")
	flag.IntVar(&opts.Parallelism, "parallelism", 0, "Number of workers for the pair scan and estimation (0 = one per CPU).")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if flags.fastaPath == "" || flags.evidencePath == "" {
		log.Fatal("-fasta and -evidence are required")
	}

	contigs, err := linkdist.ReadContigs(ctx, flags.fastaPath)
	if err != nil {
		log.Fatalf("read contigs: %v", err)
	}
	log.Printf("read %d contigs from %s", contigs.Len(), flags.fastaPath)

	var correct func(string) string
	if flags.whitelistPath != "" {
		wl, err := barcode.ReadWhitelist(ctx, flags.whitelistPath)
		if err != nil {
			log.Fatalf("read whitelist: %v", err)
		}
		log.Printf("read %d whitelisted barcodes from %s", wl.Len(), flags.whitelistPath)
		correct = wl.Correct
	}

	ev, err := linkdist.ReadEvidence(ctx, flags.evidencePath, contigs, correct)
	if err != nil {
		log.Fatalf("read evidence: %v", err)
	}
	log.Printf("read evidence for %d barcodes from %s", len(ev.Counts), flags.evidencePath)

	// The two builders scan the same read-only evidence independently.
	var (
		samples                linkdist.DistSampleMap
		pairs                  linkdist.PairMap
		sampleStats, pairStats linkdist.Stats
		wg                     sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		samples = linkdist.BuildDistSamples(ev, contigs, &opts, &sampleStats)
	}()
	go func() {
		defer wg.Done()
		pairs = linkdist.BuildPairStats(ev, contigs, &opts, &pairStats)
	}()
	wg.Wait()
	log.Printf("built %d calibration samples, %d candidate pairs", len(samples), len(pairs))

	index := linkdist.BuildCalibrationIndex(samples, contigs)
	estStats := linkdist.Stats{}
	ests := linkdist.EstimateAll(pairs, index, &opts, &estStats)

	if err := linkdist.WriteDistSamples(ctx, flags.samplesOutputPath, samples, contigs); err != nil {
		log.Fatalf("write %s: %v", flags.samplesOutputPath, err)
	}
	if err := linkdist.WriteEstimates(ctx, flags.estimatesOutputPath, ests, contigs); err != nil {
		log.Fatalf("write %s: %v", flags.estimatesOutputPath, err)
	}

	stats := sampleStats.Merge(pairStats).Merge(estStats)
	log.Printf("Stats: %+v", stats)
	log.Printf("All done")
}
